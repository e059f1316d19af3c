// config.go — CLI flag definitions, environment fallback, and validation
// for the server's runtime configuration. Adapted from the teacher's
// cmd/dev-console/config.go registerFlags() pattern: flag.String/Int/Bool
// with env-var-aware defaults, generalized from the teacher's dev-console
// flag set down to the four flags spec.md §6 names (--host, --port, --path,
// --token) plus --log-level.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ashfox/ashfox-mcp/internal/logx"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 8787
	DefaultPath = "/mcp"
)

// Config is the server's fully-resolved runtime configuration.
type Config struct {
	Host     string
	Port     int
	Path     string
	Token    string
	LogLevel logx.Level
}

// envOrDefault returns the environment variable's value if set, else def.
func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Parse registers and parses the CLI flags, falling back to
// ASHFOX_HOST/ASHFOX_PORT/ASHFOX_PATH/ASHFOX_LOG_LEVEL, then to the
// package defaults (spec.md §6).
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("ashfox-mcp", flag.ContinueOnError)
	host := fs.String("host", envOrDefault("ASHFOX_HOST", DefaultHost), "host to listen on")
	port := fs.Int("port", envIntOrDefault("ASHFOX_PORT", DefaultPort), "port to listen on")
	path := fs.String("path", envOrDefault("ASHFOX_PATH", DefaultPath), "base path for the MCP endpoint")
	token := fs.String("token", os.Getenv("ASHFOX_TOKEN"), "optional bearer token required on every request")
	logLevel := fs.String("log-level", envOrDefault("ASHFOX_LOG_LEVEL", "info"), "log level: debug|info|warn|error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Host:     *host,
		Port:     *port,
		Path:     normalizePath(*path),
		Token:    *token,
		LogLevel: logx.ParseLevel(*logLevel),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalizePath ensures a leading slash and strips any trailing slash
// unless the path is root (spec.md §4.1: "normalized to leading slash, no
// trailing slash unless root").
func normalizePath(p string) string {
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// Validate rejects configurations the server cannot start with (exit code
// 1, per spec.md §6).
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if c.Host == "" {
		return fmt.Errorf("host must not be empty")
	}
	if c.Path == "" {
		return fmt.Errorf("path must not be empty")
	}
	return nil
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
