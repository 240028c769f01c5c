package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	ListenAddr      string
	AllowOrigins    string
	ReadBufferSize  int
	WriteBufferSize int
	LogLevel        log.Level
	SessionTTL      time.Duration
	ReapInterval    time.Duration
}

func Default() Config {
	return Config{
		ListenAddr:      ":3000",
		AllowOrigins:    "http://localhost:5173",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		LogLevel:        log.LevelInfo,
		SessionTTL:      30 * time.Minute,
		ReapInterval:    time.Minute,
	}
}

// Load reads CHECKERS_* variables from the environment on top of Default.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("CHECKERS_LISTEN_ADDR"); ok && v != "" {
		cfg.ListenAddr = v
	}
	if v, ok := lookup("CHECKERS_ALLOW_ORIGINS"); ok && v != "" {
		cfg.AllowOrigins = v
	}

	var err error
	if cfg.ReadBufferSize, err = intVar(lookup, "CHECKERS_WS_READ_BUFFER", cfg.ReadBufferSize); err != nil {
		return Config{}, err
	}
	if cfg.WriteBufferSize, err = intVar(lookup, "CHECKERS_WS_WRITE_BUFFER", cfg.WriteBufferSize); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = durationVar(lookup, "CHECKERS_SESSION_TTL", cfg.SessionTTL); err != nil {
		return Config{}, err
	}
	if cfg.ReapInterval, err = durationVar(lookup, "CHECKERS_REAP_INTERVAL", cfg.ReapInterval); err != nil {
		return Config{}, err
	}
	if v, ok := lookup("CHECKERS_LOG_LEVEL"); ok && v != "" {
		if cfg.LogLevel, err = ParseLevel(v); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func intVar(lookup func(string) (string, bool), key string, def int) (int, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: expected a positive integer, got %q", key, v)
	}
	return n, nil
}

func durationVar(lookup func(string) (string, bool), key string, def time.Duration) (time.Duration, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s: expected a duration, got %q", key, v)
	}
	return d, nil
}
