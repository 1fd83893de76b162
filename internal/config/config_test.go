package config

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		t.Setenv("CALLAUDIT_CONFIG", "")

		Convey("When loading in mock mode", func() {
			t.Setenv("CALLAUDIT_MOCK", "true")
			cfg, err := Load(context.Background())

			Convey("Then defaults apply and no credentials are required", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.TranscriptionModel, ShouldEqual, "whisper-1")
				So(cfg.CompletionModel, ShouldEqual, "gpt-4o-mini")
				So(cfg.CallTimeoutMS, ShouldEqual, 60_000)
				So(cfg.MaxUploadMB, ShouldEqual, 25)
				So(cfg.Mock, ShouldBeTrue)
			})
		})

		Convey("When environment variables override defaults", func() {
			t.Setenv("CALLAUDIT_MOCK", "true")
			t.Setenv("CALLAUDIT_ADDR", ":9090")
			t.Setenv("CALLAUDIT_LOG_LEVEL", "debug")
			t.Setenv("CALLAUDIT_CALL_TIMEOUT_MS", "1500")
			cfg, err := Load(context.Background())

			Convey("Then the env layer wins", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9090")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.CallTimeoutMS, ShouldEqual, 1500)
			})
		})

		Convey("When live mode is missing both credentials", func() {
			t.Setenv("CALLAUDIT_MOCK", "false")
			_, err := Load(context.Background())

			Convey("Then loading fails before startup", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ErrMissingCredential), ShouldBeTrue)
			})
		})

		Convey("When live mode has only the transcription key", func() {
			t.Setenv("CALLAUDIT_MOCK", "false")
			t.Setenv("CALLAUDIT_TRANSCRIPTION_API_KEY", "sk-stt")
			_, err := Load(context.Background())

			Convey("Then the completion key is still required", func() {
				So(errors.Is(err, ErrMissingCredential), ShouldBeTrue)
			})
		})

		Convey("When live mode carries both credentials", func() {
			t.Setenv("CALLAUDIT_MOCK", "false")
			t.Setenv("CALLAUDIT_TRANSCRIPTION_API_KEY", "sk-stt")
			t.Setenv("CALLAUDIT_COMPLETION_API_KEY", "sk-llm")
			cfg, err := Load(context.Background())

			Convey("Then loading succeeds", func() {
				So(err, ShouldBeNil)
				So(cfg.TranscriptionAPIKey, ShouldEqual, "sk-stt")
				So(cfg.CompletionAPIKey, ShouldEqual, "sk-llm")
			})
		})

		Convey("When the config file path points nowhere", func() {
			t.Setenv("CALLAUDIT_CONFIG", "/does/not/exist.yaml")
			_, err := Load(context.Background())

			Convey("Then loading fails with a load error", func() {
				So(errors.Is(err, ErrLoadConfig), ShouldBeTrue)
			})
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given a config under validation", t, func() {
		base := New()
		base.Mock = true

		Convey("Then an empty addr is rejected", func() {
			cfg := *base
			cfg.Addr = ""
			So(errors.Is(cfg.validate(), ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("Then a non-positive timeout is rejected", func() {
			cfg := *base
			cfg.CallTimeoutMS = 0
			So(errors.Is(cfg.validate(), ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("Then a non-positive upload cap is rejected", func() {
			cfg := *base
			cfg.MaxUploadMB = -1
			So(errors.Is(cfg.validate(), ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("Then mock mode passes without credentials", func() {
			cfg := *base
			So(cfg.validate(), ShouldBeNil)
		})
	})
}
