package log

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFacade(t *testing.T) {
	Convey("Given the log facade", t, func() {
		Convey("When logging is disabled nothing is written", func() {
			enabled = false
			entry := WithFields(Fields{"attempt": 1})
			So(entry, ShouldEqual, discard)
		})

		Convey("When an output is installed", func() {
			var buf bytes.Buffer
			SetOutput(&buf)

			Infof("hello %s", "world")
			WithFields(Fields{"addr": "ws://x"}).Warn("reconnecting")

			Convey("Then messages and fields reach it", func() {
				So(buf.String(), ShouldContainSubstring, "hello world")
				So(buf.String(), ShouldContainSubstring, "addr=\"ws://x\"")
				So(buf.String(), ShouldContainSubstring, "reconnecting")
			})
		})
	})
}
