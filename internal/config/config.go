package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

const (
	DEFAULT_APP_PORT     = "8080"
	DEFAULT_STUB_PORT    = "8081"
	DEFAULT_API_URL      = "http://localhost:8081"
	DEFAULT_HTTP_TIMEOUT = 10 * time.Second
	DEFAULT_LOG_LEVEL    = "info"
)

type Config struct {
	AppEnv        string
	AppPort       string
	StubPort      string
	LogLevel      string
	LogDir        string
	APIBaseURL    string
	SessionSecret string
	HTTPTimeout   time.Duration
	CORSOrigins   []string
}

// Load reads .env (if present) into the process environment and builds a
// Config from it.
func Load() (Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env variables: %w", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		AppEnv:        strings.ToLower(getenv("APP_ENV")),
		AppPort:       getenv("APP_PORT"),
		StubPort:      getenv("STUB_PORT"),
		LogLevel:      getenv("LOG_LEVEL"),
		LogDir:        getenv("LOG_DIR"),
		APIBaseURL:    strings.TrimRight(getenv("CARDDEMO_API_URL"), "/"),
		SessionSecret: getenv("SESSION_SECRET"),
		HTTPTimeout:   DEFAULT_HTTP_TIMEOUT,
		CORSOrigins:   []string{"*"},
	}

	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.AppPort == "" {
		cfg.AppPort = DEFAULT_APP_PORT
	}
	if cfg.StubPort == "" {
		cfg.StubPort = DEFAULT_STUB_PORT
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DEFAULT_LOG_LEVEL
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DEFAULT_API_URL
	}

	if timeoutStr := getenv("HTTP_TIMEOUT_SECONDS"); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("invalid HTTP_TIMEOUT_SECONDS: %q", timeoutStr)
		}
		cfg.HTTPTimeout = time.Duration(seconds) * time.Second
	}

	if origins := getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = nil
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	if cfg.SessionSecret == "" {
		if cfg.AppEnv == "production" {
			return Config{}, fmt.Errorf("SESSION_SECRET is required in production")
		}
		cfg.SessionSecret = "carddemo-development-secret"
	}

	return cfg, nil
}
