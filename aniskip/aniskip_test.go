package aniskip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const found = `{
  "found": true,
  "results": [
    {"interval": {"start_time": 90.5, "end_time": 180.5}, "skip_type": "op", "episode_length": 1420},
    {"interval": {"start_time": 1300, "end_time": 1390}, "skip_type": "ed", "episode_length": 1420}
  ]
}`

const misaligned = `{
  "found": true,
  "results": [
    {"interval": {"start_time": 600, "end_time": 690}, "skip_type": "ed", "episode_length": 0}
  ]
}`

func serve(status int, body string) (*Client, *httptest.Server, *string) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.RequestURI()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))

	client := NewClient(server.URL + "/")
	client.HTTP = server.Client()
	return client, server, &path
}

func TestSkipTimes(t *testing.T) {
	ctx := context.Background()

	Convey("Given an episode with both intervals", t, func() {
		client, server, path := serve(http.StatusOK, found)
		Reset(server.Close)

		times, err := client.SkipTimes(ctx, 1535, 1, 0)

		Convey("It queries openings and endings", func() {
			So(err, ShouldBeNil)
			So(*path, ShouldEqual, "/skip-times/1535/1?types=op&types=ed")
		})

		Convey("Both intervals are returned", func() {
			So(times.HasIntro, ShouldBeTrue)
			So(times.Opening, ShouldResemble, Interval{Start: 90.5, End: 180.5})
			So(times.HasOutro, ShouldBeTrue)
			So(times.Ending.Contains(1300), ShouldBeTrue)
			So(times.Ending.Contains(1391), ShouldBeFalse)
		})
	})

	Convey("Given an ending far from the end of the episode", t, func() {
		client, server, _ := serve(http.StatusOK, misaligned)
		Reset(server.Close)

		Convey("It is dropped when the local length is known", func() {
			times, err := client.SkipTimes(ctx, 1, 1, 1440)
			So(err, ShouldBeNil)
			So(times, ShouldBeNil)
		})

		Convey("It is kept when no length is known", func() {
			times, err := client.SkipTimes(ctx, 1, 1, 0)
			So(err, ShouldBeNil)
			So(times.HasOutro, ShouldBeTrue)
			So(times.HasIntro, ShouldBeFalse)
		})
	})

	Convey("Given a service without data", t, func() {
		client, server, _ := serve(http.StatusNotFound, `{"found": false, "results": []}`)
		Reset(server.Close)

		Convey("It degrades to nil", func() {
			times, err := client.SkipTimes(ctx, 999999999, 1, 0)
			So(err, ShouldBeNil)
			So(times, ShouldBeNil)
		})
	})

	Convey("Given a garbled response", t, func() {
		client, server, _ := serve(http.StatusOK, `{"found": tru`)
		Reset(server.Close)

		Convey("It reports a parse error", func() {
			_, err := client.SkipTimes(ctx, 1, 1, 0)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given ids that cannot exist", t, func() {
		client := NewClient("")

		Convey("No request is made", func() {
			times, err := client.SkipTimes(ctx, 0, 0, 0)
			So(err, ShouldBeNil)
			So(times, ShouldBeNil)
			So(client.Endpoint, ShouldEqual, DefaultEndpoint)
		})
	})
}

func TestInterval(t *testing.T) {
	Convey("Interval bounds are inclusive", t, func() {
		i := Interval{Start: 10, End: 20}
		So(i.Contains(10), ShouldBeTrue)
		So(i.Contains(20), ShouldBeTrue)
		So(i.Contains(9.9), ShouldBeFalse)
		So(i.Valid(), ShouldBeTrue)
		So(Interval{Start: 5, End: 5}.Valid(), ShouldBeFalse)
	})
}
