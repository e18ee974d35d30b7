// Package config reads server settings from flags, falling back to
// CHESS_* environment variables and then to defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr          string
	AllowOrigins  string
	DataDir       string
	LogLevel      string
	AccessLog     bool
	MatchInterval time.Duration
}

func Default() Config {
	return Config{
		Addr:          ":3000",
		AllowOrigins:  "http://localhost:5173",
		DataDir:       "",
		LogLevel:      "info",
		AccessLog:     true,
		MatchInterval: time.Second,
	}
}

// Load parses args (without the program name) on top of the environment.
func Load(args []string) (Config, error) {
	cfg := Default()
	cfg.Addr = envOr("CHESS_ADDR", cfg.Addr)
	cfg.AllowOrigins = envOr("CHESS_ORIGINS", cfg.AllowOrigins)
	cfg.DataDir = envOr("CHESS_DATA_DIR", cfg.DataDir)
	cfg.LogLevel = envOr("CHESS_LOG_LEVEL", cfg.LogLevel)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.AllowOrigins, "origins", cfg.AllowOrigins, "comma-separated CORS origins")
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "badger data directory; empty keeps games in memory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	fs.BoolVar(&cfg.AccessLog, "access-log", cfg.AccessLog, "log every HTTP request")
	fs.DurationVar(&cfg.MatchInterval, "match-interval", cfg.MatchInterval, "how often the matchmaking queue is drained")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	if cfg.MatchInterval <= 0 {
		return Config{}, fmt.Errorf("match interval must be positive, got %v", cfg.MatchInterval)
	}
	return cfg, nil
}

func (c Config) Level() (log.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
