// Package config resolves runtime settings from flags, the environment and
// an optional .env file, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vhscom/calc/internal/session"
)

const DefaultPort = 3318

type Config struct {
	Port         int
	APIURL       string
	APIToken     string
	ErrorHold    time.Duration
	StrictSyntax bool
	LogLevel     slog.Level
	LogFile      string

	// Args are the positional arguments left after flag parsing.
	Args []string
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Parse parses flags from args and falls back to CALC_* environment
// variables for anything not given on the command line.
func Parse(name string, args []string, output io.Writer) (Config, error) {
	var cfg Config
	var (
		errorHold string
		strict    string
		logLevel  string
	)

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		flags.SetOutput(output)
	}
	flags.IntVar(&cfg.Port, "p", 0, "Server port")
	flags.StringVar(&cfg.APIURL, "api-url", "", "Remote evaluator base URL")
	flags.StringVar(&cfg.APIToken, "api-token", "", "Bearer token (prefer env)")
	flags.StringVar(&errorHold, "error-hold", "", "How long \"Error\" stays on the display")
	flags.StringVar(&strict, "strict", "", "Report malformed expressions as errors (true/false)")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&cfg.LogFile, "log-file", "", "Write logs to this file")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Args = flags.Args()

	if cfg.Port == 0 {
		if portStr := os.Getenv("CALC_PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid CALC_PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.APIURL == "" {
		cfg.APIURL = os.Getenv("CALC_API_URL")
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.APIToken == "" {
		cfg.APIToken = os.Getenv("CALC_API_TOKEN")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = os.Getenv("CALC_LOG_FILE")
	}

	if errorHold == "" {
		errorHold = os.Getenv("CALC_ERROR_HOLD")
	}
	cfg.ErrorHold = session.DefaultErrorHold
	if errorHold != "" {
		d, err := time.ParseDuration(errorHold)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid error hold %q", errorHold)
		}
		cfg.ErrorHold = d
	}

	if strict == "" {
		strict = os.Getenv("CALC_STRICT_SYNTAX")
	}
	if strict != "" {
		v, err := strconv.ParseBool(strict)
		if err != nil {
			return Config{}, fmt.Errorf("invalid strict syntax flag %q", strict)
		}
		cfg.StrictSyntax = v
	}

	if logLevel == "" {
		logLevel = os.Getenv("CALC_LOG_LEVEL")
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", logLevel)
		}
	}

	return cfg, nil
}

// SessionOptions returns the session settings carried by cfg.
func (c Config) SessionOptions(logger *slog.Logger) session.Options {
	return session.Options{
		ErrorHold:    c.ErrorHold,
		StrictSyntax: c.StrictSyntax,
		Logger:       logger,
	}
}
