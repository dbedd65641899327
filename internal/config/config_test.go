package config_test

import (
	"testing"
	"time"

	"github.com/okian/cowin/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.APIURL, convey.ShouldEqual, config.DefaultAPIURL)
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.SessionTTLSeconds, convey.ShouldEqual, 300)
			convey.So(cfg.MaxSessions, convey.ShouldEqual, 10_000)
			convey.So(cfg.LoadingRefreshSeconds, convey.ShouldEqual, 1)
			convey.So(cfg.SessionTTL(), convey.ShouldEqual, 5*time.Minute)
		})

		convey.Convey("And the defaults should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
