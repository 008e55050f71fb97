package cmd

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variables read by LoadConfig.
const (
	EnvLedgerFile = "RTN_LEDGER_FILE"
	EnvAddr       = "RTN_ADDR"
	EnvGinMode    = "RTN_GIN_MODE"
	EnvLogLevel   = "RTN_LOG_LEVEL"
	EnvLogFormat  = "RTN_LOG_FORMAT"
)

// Config holds the defaults of the application.
type Config struct {
	LedgerFile string
	Addr       string
	GinMode    string
	LogLevel   string
	LogFormat  string
}

// LoadConfig reads the configuration from the environment, after loading the
// optional .env file of the current directory. Variables already set in the
// environment take precedence over the .env file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return Config{
		LedgerFile: getEnv(EnvLedgerFile, "ledger.jsonl"),
		Addr:       getEnv(EnvAddr, ":8080"),
		GinMode:    getEnv(EnvGinMode, "release"),
		LogLevel:   getEnv(EnvLogLevel, "info"),
		LogFormat:  getEnv(EnvLogFormat, "console"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

// NewLogger creates the application logger writing to w.
func NewLogger(cfg Config, w io.Writer) zerolog.Logger {
	if cfg.LogFormat != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(parseLogLevel(cfg.LogLevel)).With().Timestamp().Logger()
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
