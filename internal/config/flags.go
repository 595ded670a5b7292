package config

import (
	"flag"
)

// parseFlags defines and parses global CLI flags on fs.
// If sources is non-nil, explicitly set flags are attributed to SourceFlag.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasklist", flag.ContinueOnError)
	}

	// Paths
	fs.StringVar(&cfg.TaskFile, "file", cfg.TaskFile, "Path to task file")
	fs.StringVar(&cfg.DefaultFilter, "filter", cfg.DefaultFilter, "Default priority filter (All, 1-5)")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"file":           "task_file",
		"filter":         "default_filter",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if fieldName, ok := flagToSource[f.Name]; ok {
				sources[fieldName] = SourceFlag
			}
		})
	}

	return nil
}
