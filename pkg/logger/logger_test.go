package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithOptions(Options{Format: FormatJSON, Writer: &buf}), ShouldBeNil)
		So(SetLevelString("info"), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Get().Info(ctx, "fetch completed", String("url", "http://upstream"), Int("days", 7), Error(errors.New("boom")))

			Convey("Then the record carries message, fields and source", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "fetch completed")
				So(rec["url"], ShouldEqual, "http://upstream")
				So(rec["days"], ShouldEqual, 7.0)
				So(rec["error"], ShouldEqual, "boom")
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging below the configured level", func() {
			Get().Debug(ctx, "hidden")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When using a named logger", func() {
			Named("cowin").Warn(ctx, "slow upstream")

			Convey("Then the component is attached", func() {
				So(buf.String(), ShouldContainSubstring, `"component":"cowin"`)
			})
		})
	})
}

func TestSetFormat(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		var buf bytes.Buffer
		So(InitWithOptions(Options{Writer: &buf}), ShouldBeNil)

		Convey("When switching to json", func() {
			So(SetFormat("json"), ShouldBeNil)
			Get().Info(context.Background(), "hello")

			Convey("Then output is JSON on the same writer", func() {
				So(strings.HasPrefix(strings.TrimSpace(buf.String()), "{"), ShouldBeTrue)
			})
		})

		Convey("When passing an unknown format", func() {
			err := SetFormat("xml")

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		for _, lvl := range []string{"debug", "INFO", "warn", "warning", "error", ""} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
		So(SetLevelString("info"), ShouldBeNil)
	})
}
