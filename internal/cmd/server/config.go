// Package server parses configuration and runs the activities service.
package server

import (
	"flag"

	"github.com/mergington/activities/internal/platform/config"
)

const defaultHTTPAddr = "localhost:8080"

// Config holds the server command configuration.
type Config struct {
	HTTPAddr string
	// DBPath selects the SQLite-backed registry; empty keeps the roster
	// in process memory.
	DBPath string
	// StaticDir overrides the embedded front-end with files on disk.
	StaticDir string
}

// envConfig mirrors Config with environment variable bindings. Flags
// override environment values.
type envConfig struct {
	HTTPAddr  string `env:"MERGINGTON_HTTP_ADDR"`
	DBPath    string `env:"MERGINGTON_DB"`
	StaticDir string `env:"MERGINGTON_STATIC_DIR"`
}

// ParseConfig parses environment variables and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var fromEnv envConfig
	if err := config.ParseEnv(&fromEnv); err != nil {
		return Config{}, err
	}

	cfg := Config{
		HTTPAddr:  defaultHTTPAddr,
		DBPath:    fromEnv.DBPath,
		StaticDir: fromEnv.StaticDir,
	}
	if fromEnv.HTTPAddr != "" {
		cfg.HTTPAddr = fromEnv.HTTPAddr
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite registry path (empty keeps the roster in process memory)")
	fs.StringVar(&cfg.StaticDir, "static-dir", cfg.StaticDir, "serve the front-end from this directory instead of the embedded assets")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
