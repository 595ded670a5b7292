// Package logging builds leveled console loggers with charmbracelet/log.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultPrefix is prepended to every log line.
const DefaultPrefix = "tasklist"

// Options holds configuration for console logging.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultOptions returns default options for console logging.
func DefaultOptions() Options {
	return Options{
		Level:           log.WarnLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          DefaultPrefix,
	}
}

// Settings is the string form of Options as it appears in config.
type Settings struct {
	Level      string
	Format     string
	Timestamps bool
	Caller     bool
}

// OptionsFrom converts config strings into Options.
func OptionsFrom(s Settings) (Options, error) {
	opts := DefaultOptions()

	if s.Level != "" {
		level, err := ParseLevel(s.Level)
		if err != nil {
			return opts, err
		}
		opts.Level = level
	}
	if s.Format != "" {
		formatter, err := ParseFormatter(s.Format)
		if err != nil {
			return opts, err
		}
		opts.Formatter = formatter
	}
	opts.ReportTimestamp = s.Timestamps
	opts.ReportCaller = s.Caller
	return opts, nil
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, DefaultOptions())
}

// ParseLevel maps debug, info, warn (or warning), error and fatal to a level.
func ParseLevel(s string) (log.Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		name = "warn"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
	}
	return level, nil
}

// ParseFormatter maps text, json and logfmt to a formatter.
func ParseFormatter(s string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("invalid log format %q: must be one of text, json, logfmt", s)
	}
}
