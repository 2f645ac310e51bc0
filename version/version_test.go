package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/anisan-cli/seaplay/filesystem"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSemver(t *testing.T) {
	Convey("Versions parse with or without a v prefix", t, func() {
		v, err := Parse("v1.2.3")
		So(err, ShouldBeNil)
		So(v, ShouldResemble, Semver{1, 2, 3})
		So(v.String(), ShouldEqual, "1.2.3")

		_, err = Parse("latest")
		So(err, ShouldNotBeNil)
	})

	Convey("Versions compare component by component", t, func() {
		So(Semver{1, 0, 0}.Compare(Semver{0, 9, 9}), ShouldEqual, 1)
		So(Semver{0, 3, 0}.Compare(Semver{0, 3, 1}), ShouldEqual, -1)
		So(Semver{0, 3, 0}.Compare(Semver{0, 3, 0}), ShouldEqual, 0)

		newer, err := Newer("0.4.0", "0.3.9")
		So(err, ShouldBeNil)
		So(newer, ShouldBeTrue)

		newer, err = Newer("0.3.0", "0.3.0")
		So(err, ShouldBeNil)
		So(newer, ShouldBeFalse)
	})
}

func TestChecker(t *testing.T) {
	Convey("Given a releases endpoint", t, func() {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte(`{"tag_name":"v0.9.1"}`))
		}))
		Reset(server.Close)

		dir, err := afero.TempDir(filesystem.API(), "", "version")
		So(err, ShouldBeNil)

		c := NewChecker(dir)
		c.URL = server.URL

		Convey("The latest release is fetched once and then cached", func() {
			latest, err := c.Latest(context.Background())
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "0.9.1")

			latest, err = c.Latest(context.Background())
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "0.9.1")
			So(hits.Load(), ShouldEqual, 1)
		})
	})

	Convey("A failing endpoint is an error", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		Reset(server.Close)

		dir, err := afero.TempDir(filesystem.API(), "", "version")
		So(err, ShouldBeNil)

		c := NewChecker(dir)
		c.URL = server.URL

		_, err = c.Latest(context.Background())
		So(err, ShouldNotBeNil)
	})
}
