package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/timmybird/fogis-reporter/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://localhost:9080")
				convey.So(cfg.FetchRetries, convey.ShouldEqual, 2)
				convey.So(cfg.Username, convey.ShouldEqual, "")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("FOGIS_BASE_URL", "https://fogis.example.org/api")
			_ = os.Setenv("FOGIS_USERNAME", "ref")
			_ = os.Setenv("FOGIS_PASSWORD", "pw")
			_ = os.Setenv("FOGIS_FETCH_RETRIES", "5")
			_ = os.Setenv("FOGIS_LOG_LEVEL", "debug")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "https://fogis.example.org/api")
				convey.So(cfg.Username, convey.ShouldEqual, "ref")
				convey.So(cfg.Password, convey.ShouldEqual, "pw")
				convey.So(cfg.FetchRetries, convey.ShouldEqual, 5)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.ValidateCredentials(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
base_url: "http://store.local"
request_timeout_ms: 2500
retry_delay_ms: 50
mock_addr: ":7070"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FOGIS_CONFIG", tmpFile)
			_ = os.Setenv("FOGIS_MOCK_ADDR", ":6060")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://store.local")
				convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.RetryDelayMS, convey.ShouldEqual, 50)
				convey.So(cfg.MockAddr, convey.ShouldEqual, ":6060")
				convey.So(cfg.FetchRetries, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FOGIS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("FOGIS_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty base url", func() {
			_ = os.Setenv("FOGIS_BASE_URL", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "base_url must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("FOGIS_FETCH_RETRIES", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with negative retries", func() {
			_ = os.Setenv("FOGIS_FETCH_RETRIES", "-1")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// createTempConfigFile creates a temporary YAML config file with the given content.
func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "fogis-config-*.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = tmpFile.Close() }()

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}

// clearConfigEnvVars clears all FOGIS environment variables.
func clearConfigEnvVars() {
	for _, v := range []string{
		"FOGIS_CONFIG", "FOGIS_LOG_LEVEL", "FOGIS_BASE_URL", "FOGIS_USERNAME", "FOGIS_PASSWORD",
		"FOGIS_REQUEST_TIMEOUT_MS", "FOGIS_FETCH_RETRIES", "FOGIS_RETRY_DELAY_MS",
		"FOGIS_MOCK_ADDR", "FOGIS_MOCK_USERNAME", "FOGIS_MOCK_PASSWORD",
	} {
		_ = os.Unsetenv(v)
	}
}
