package settings

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store, err := Open(":memory:")
		So(err, ShouldBeNil)
		Reset(func() { _ = store.Close() })

		Convey("Getting a new profile creates its defaults", func() {
			s, err := store.Get(ctx, "living-room")
			So(err, ShouldBeNil)
			So(s.ID, ShouldBeGreaterThan, 0)
			So(s.AutoPlayNext, ShouldBeTrue)
			So(s.PreferredSpeed, ShouldEqual, 0)

			again, err := store.Get(ctx, "living-room")
			So(err, ShouldBeNil)
			So(again.ID, ShouldEqual, s.ID)

			profiles, err := store.Profiles(ctx)
			So(err, ShouldBeNil)
			So(profiles, ShouldResemble, []string{"living-room"})
		})

		Convey("Upserting keeps the row and its creation time", func() {
			s, _ := store.Get(ctx, "desk")
			created := s.CreatedAt

			So(s.Set("auto_skip", "true"), ShouldBeNil)
			So(s.Set("preferred_speed", "10"), ShouldBeNil)
			So(s.Set("extra_data", `{"theme":"dark"}`), ShouldBeNil)
			So(store.Upsert(ctx, s), ShouldBeNil)

			stored, err := store.Get(ctx, "desk")
			So(err, ShouldBeNil)
			So(stored.ID, ShouldEqual, s.ID)
			So(stored.CreatedAt.Unix(), ShouldEqual, created.Unix())
			So(stored.AutoSkip, ShouldBeTrue)
			So(stored.PreferredSpeed, ShouldEqual, 10)
			So(stored.ExtraData, ShouldEqual, `{"theme":"dark"}`)
		})

		Convey("Deleting resets a profile to defaults", func() {
			s, _ := store.Get(ctx, "desk")
			s.Muted = true
			So(store.Upsert(ctx, s), ShouldBeNil)

			So(store.Delete(ctx, "desk"), ShouldBeNil)
			So(store.Delete(ctx, "desk"), ShouldBeNil)

			fresh, err := store.Get(ctx, "desk")
			So(err, ShouldBeNil)
			So(fresh.Muted, ShouldBeFalse)
		})

		Convey("An empty profile is rejected everywhere", func() {
			_, err := store.Get(ctx, "")
			So(err, ShouldEqual, ErrEmptyProfile)
			So(store.Upsert(ctx, &Settings{}), ShouldEqual, ErrEmptyProfile)
			So(store.Delete(ctx, ""), ShouldEqual, ErrEmptyProfile)
		})
	})
}

func TestSet(t *testing.T) {
	Convey("Given default settings", t, func() {
		s := Defaults("p")

		Convey("Values are parsed by field", func() {
			So(s.Set("volume", "55.5"), ShouldBeNil)
			So(s.Volume, ShouldEqual, 55.5)
			So(s.Set("MUTED", "1"), ShouldBeNil)
			So(s.Muted, ShouldBeTrue)
		})

		Convey("Bad values are rejected", func() {
			So(s.Set("volume", "loud"), ShouldNotBeNil)
			So(s.Set("volume", "500"), ShouldNotBeNil)
			So(s.Set("preferred_speed", "-2"), ShouldNotBeNil)
			So(s.Set("colour", "red"), ShouldNotBeNil)
		})

		Convey("Every listed field can be set", func() {
			for _, f := range Fields {
				value := "1"
				if f == "extra_data" {
					value = "{}"
				}
				So(s.Set(f, value), ShouldBeNil)
			}
		})
	})
}
