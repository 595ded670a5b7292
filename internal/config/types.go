package config

import (
	"github.com/nibzard/tasklist-go/internal/task"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
	// Warnings holds unknown keys found in config files.
	Warnings []string
}

// Default values.
const (
	DefaultTaskFile      = "tasks.txt"
	DefaultFilter        = "All"
	DefaultLogLevel      = "error"
	DefaultLogFormat     = "text"
	DefaultLogTimestamps = false
	DefaultLogCaller     = false
)

// Config holds the full configuration for tasklist.
type Config struct {
	// Task file path (relative paths resolve against ProjectRoot)
	TaskFile string `toml:"task_file"`

	// Filter applied to listings when none is given ("All" or "1".."5")
	DefaultFilter string `toml:"default_filter"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`

	filter task.Filter
}

// Filter returns the parsed default filter.
func (c *Config) Filter() task.Filter {
	return c.filter
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"task_file",
		"default_filter",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.DefaultFilter = DefaultFilter
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = DefaultLogTimestamps
	cfg.LogCaller = DefaultLogCaller
}
