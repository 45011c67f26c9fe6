package generator

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTimestamp(t *testing.T) {
	Convey("Timestamp returns the current time", t, func() {
		before := time.Now()
		ts := New().Timestamp()
		So(ts, ShouldHappenOnOrBetween, before, time.Now())
	})
}
