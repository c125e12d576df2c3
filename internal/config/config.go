package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Mode decides whether submission is real or disabled. It is threaded
// explicitly through every operation that cares, never stored globally.
type Mode string

const (
	ModeRun  Mode = "run"
	ModeTest Mode = "test"
)

func (m Mode) Test() bool {
	return m == ModeTest
}

type Config struct {
	HTTPPort  int
	ScriptDir string
	LogLevel  string

	PollInterval time.Duration
	Verbosity    int
	Mode         Mode
}

func Load() *Config {
	mode := ModeRun
	if getEnvBool("TRACKER_TEST_MODE", false) {
		mode = ModeTest
	}
	return &Config{
		HTTPPort:     getEnvInt("HTTP_PORT", 8000),
		ScriptDir:    getEnv("SCRIPT_DIR", "./scripts"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		PollInterval: time.Duration(getEnvInt("POLL_INTERVAL_SECONDS", 1)) * time.Second,
		Verbosity:    getEnvInt("VERBOSITY", 1),
		Mode:         mode,
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return fallback
}
