package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by environment variables (TASKLIST_*) or CLI flags

# Task file (relative to the working directory, supports ~ expansion)
task_file = "tasks.txt"

# Filter used by "ls" and the TUI when none is given: "All" or 1-5
default_filter = "All"

# Logging: level is debug, info, warn or error; format is text, json or logfmt
log_level = "error"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
