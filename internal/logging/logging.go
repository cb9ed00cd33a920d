// ABOUTME: Structured logger construction for the habits CLI and MCP server.
// ABOUTME: Wraps charmbracelet/log with level parsing and a fixed prefix.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvLevel overrides the configured log level.
const EnvLevel = "HABITS_LOG_LEVEL"

// DefaultLevel keeps routine output, persistence failures included, off stderr.
const DefaultLevel = log.WarnLevel

// New returns a logger writing to w at the named level. An empty or unknown
// level falls back to DefaultLevel; HABITS_LOG_LEVEL wins over level.
func New(w io.Writer, level string) *log.Logger {
	if env := os.Getenv(EnvLevel); env != "" {
		level = env
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "habits",
		Level:           ParseLevel(level),
		ReportTimestamp: true,
	})
}

// ParseLevel parses a level name, returning DefaultLevel when it is not valid.
func ParseLevel(level string) log.Level {
	if strings.TrimSpace(level) == "" {
		return DefaultLevel
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return DefaultLevel
	}
	return lvl
}
