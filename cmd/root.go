// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/session"
	"github.com/nibzard/tasklist-go/internal/storage"
	"github.com/nibzard/tasklist-go/internal/task"
	"github.com/nibzard/tasklist-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// shortIDLen is how many ID characters "ls" prints.
const shortIDLen = 8

// cli carries what every subcommand needs.
type cli struct {
	cws    *config.ConfigWithSources
	cfg    *config.Config
	logger *log.Logger
	stdout io.Writer
	stderr io.Writer
}

// Run executes the tasklist CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	opts, err := logging.OptionsFrom(logging.Settings{
		Level:      cws.Config.LogLevel,
		Format:     cws.Config.LogFormat,
		Timestamps: cws.Config.LogTimestamps,
		Caller:     cws.Config.LogCaller,
	})
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	c := &cli{
		cws:    cws,
		cfg:    cws.Config,
		logger: logging.New(stderr, opts),
		stdout: stdout,
		stderr: stderr,
	}
	for _, w := range cws.Warnings {
		c.logger.Warn(w)
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "ls" as default
	subcommand := "ls"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "add":
		return c.addCommand(remainingArgs)
	case "ls", "list":
		return c.lsCommand(remainingArgs)
	case "done", "complete":
		return c.doneCommand(remainingArgs)
	case "rm", "delete":
		return c.rmCommand(remainingArgs)
	case "tui":
		return c.tuiCommand(ctx, remainingArgs)
	case "export":
		return c.exportCommand(remainingArgs)
	case "import":
		return c.importCommand(remainingArgs)
	case "config":
		return c.configCommand(remainingArgs)
	case "completion":
		return completionCommand(stdout, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand(stdout)
	case "help", "--help", "-h":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openSession loads the configured task file.
func (c *cli) openSession(logger *log.Logger) (*session.Session, error) {
	sess := session.New(task.NewStore(), storage.NewFile(c.cfg.TaskFile), logger)
	if err := sess.LoadFromDisk(); err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	return sess, nil
}

func (c *cli) save(sess *session.Session) error {
	if err := sess.SaveToDisk(); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

// addCommand adds one task.
func (c *cli) addCommand(args []string) error {
	fs := c.newFlagSet("add")
	priority := fs.String("priority", "", "Priority from 1 (highest) to 5")
	fs.StringVar(priority, "p", "", "Priority (shorthand)")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")
	fs.StringVar(due, "d", "", "Due date (shorthand)")

	words, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}

	sess, err := c.openSession(c.logger)
	if err != nil {
		return err
	}
	t, err := sess.AddTask(strings.Join(words, " "), *priority, *due)
	if err != nil {
		return err
	}
	if err := c.save(sess); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Added [%s] %s\n", shortID(t), task.NewRow(t))
	return nil
}

// lsCommand prints the sorted, filtered view.
func (c *cli) lsCommand(args []string) error {
	fs := c.newFlagSet("ls")
	filterArg := fs.String("priority", "", "Show only this priority (All, 1-5)")
	fs.StringVar(filterArg, "p", "", "Priority filter (shorthand)")

	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(rest) > 1 {
		return fmt.Errorf("unexpected arguments: %v", rest[1:])
	}
	if len(rest) == 1 && *filterArg == "" {
		*filterArg = rest[0]
	}
	filter, err := c.filter(*filterArg)
	if err != nil {
		return err
	}

	sess, err := c.openSession(c.logger)
	if err != nil {
		return err
	}
	printRows(c.stdout, filter, sess.GetView(filter))
	return nil
}

// doneCommand marks the referenced task complete.
func (c *cli) doneCommand(args []string) error {
	return c.mutateByRef("done", args, func(sess *session.Session, f task.Filter, ref string) (string, error) {
		t, err := sess.CompleteByRef(f, ref)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Completed [%s] %s", shortID(t), task.NewRow(t)), nil
	})
}

// rmCommand deletes the referenced task.
func (c *cli) rmCommand(args []string) error {
	return c.mutateByRef("rm", args, func(sess *session.Session, f task.Filter, ref string) (string, error) {
		t, err := sess.DeleteByRef(f, ref)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted [%s] %s", shortID(t), task.NewRow(t)), nil
	})
}

func (c *cli) mutateByRef(name string, args []string, apply func(*session.Session, task.Filter, string) (string, error)) error {
	fs := c.newFlagSet(name)
	filterArg := fs.String("priority", "", "Priority view that row numbers refer to (All, 1-5)")
	fs.StringVar(filterArg, "p", "", "Priority view (shorthand)")

	refs, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(refs) != 1 {
		return fmt.Errorf("%s: expected one task reference (row number or ID prefix), got %d", name, len(refs))
	}
	filter, err := c.filter(*filterArg)
	if err != nil {
		return err
	}

	sess, err := c.openSession(c.logger)
	if err != nil {
		return err
	}
	msg, err := apply(sess, filter, refs[0])
	if err != nil {
		return err
	}
	if err := c.save(sess); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, msg)
	return nil
}

// tuiCommand launches the TUI.
func (c *cli) tuiCommand(ctx context.Context, args []string) error {
	fs := c.newFlagSet("tui")
	filterArg := fs.String("priority", "", "Initial priority filter (All, 1-5)")
	fs.StringVar(filterArg, "p", "", "Initial priority filter (shorthand)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	filter, err := c.filter(*filterArg)
	if err != nil {
		return err
	}

	// Log lines would corrupt the alternate screen.
	logger := logging.Discard()
	if c.logger.GetLevel() <= log.DebugLevel {
		logger = c.logger
	}
	sess, err := c.openSession(logger)
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, sess, ui.WithFilter(filter))
}

// exportCommand writes the task list as JSON.
func (c *cli) exportCommand(args []string) error {
	fs := c.newFlagSet("export")
	out := fs.String("out", "", "Write to file instead of stdout")
	fs.StringVar(out, "o", "", "Output file (shorthand)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	sess, err := c.openSession(c.logger)
	if err != nil {
		return err
	}
	tasks := sess.Store().Snapshot()
	if *out == "" {
		return storage.ExportJSON(c.stdout, tasks)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := storage.ExportJSON(f, tasks); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	fmt.Fprintf(c.stdout, "Exported %d tasks to %s\n", len(tasks), *out)
	return nil
}

// importCommand replaces the task list with a validated JSON export.
func (c *cli) importCommand(args []string) error {
	fs := c.newFlagSet("import")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("import: expected one JSON file, got %d", fs.NArg())
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	tasks, err := storage.ImportJSON(data)
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}

	sess := session.New(task.NewStore(), storage.NewFile(c.cfg.TaskFile), c.logger)
	sess.Replace(tasks)
	if err := c.save(sess); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Imported %d tasks into %s\n", len(tasks), c.cfg.TaskFile)
	return nil
}

// configCommand prints the effective configuration and where each value came from.
func (c *cli) configCommand(args []string) error {
	fs := c.newFlagSet("config")
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(c.stdout, config.ExampleConfig())
		return nil
	}

	cfg := c.cfg
	entries := []struct {
		key   string
		value any
	}{
		{"task_file", cfg.TaskFile},
		{"default_filter", cfg.Filter()},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", cfg.LogTimestamps},
		{"log_caller", cfg.LogCaller},
	}

	if len(c.cws.Files) == 0 {
		fmt.Fprintln(c.stdout, "Config files: none")
	} else {
		fmt.Fprintln(c.stdout, "Config files:")
		for _, f := range c.cws.Files {
			fmt.Fprintf(c.stdout, "  %s\n", f)
		}
		fmt.Fprintf(c.stdout, "Active config file: %s\n", c.cws.GetConfigFile())
	}
	fmt.Fprintln(c.stdout)
	for _, e := range entries {
		fmt.Fprintf(c.stdout, "%-15s = %-40v (%s)\n", e.key, e.value, c.cws.Sources[e.key])
	}
	return nil
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tasklist version %s\n", Version)
	return nil
}

func (c *cli) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("tasklist "+name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// filter parses a filter argument, falling back to the configured default.
func (c *cli) filter(raw string) (task.Filter, error) {
	if raw == "" {
		return c.cfg.Filter(), nil
	}
	return task.ParseFilter(raw)
}

// parseInterspersed parses flags that may appear before, between or after
// positional arguments, and returns the positional arguments in order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func printRows(w io.Writer, f task.Filter, rows []task.Row) {
	fmt.Fprintf(w, "Filter by priority: %s\n", f)
	if len(rows) == 0 {
		fmt.Fprintln(w, "  No tasks.")
		return
	}
	for i, row := range rows {
		fmt.Fprintf(w, "%3d. [%s] %s\n", i+1, row.ID.String()[:shortIDLen], row)
	}
}

func shortID(t task.Task) string {
	return t.ID.String()[:shortIDLen]
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasklist - A prioritized task list with due dates")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  ls [priority]                 List tasks (default command)")
	fmt.Fprintln(w, "  add <task> -p N -d YYYY-MM-DD Add a task")
	fmt.Fprintln(w, "  done <ref>                    Mark a task complete")
	fmt.Fprintln(w, "  rm <ref>                      Delete a task")
	fmt.Fprintln(w, "  tui                           Launch terminal UI")
	fmt.Fprintln(w, "  export [-o file]              Write tasks as JSON")
	fmt.Fprintln(w, "  import <file.json>            Replace tasks from a JSON export")
	fmt.Fprintln(w, "  config [-example]             Show effective configuration")
	fmt.Fprintln(w, "  completion <shell>            Print shell completion script")
	fmt.Fprintln(w, "  version                       Show version information")
	fmt.Fprintln(w, "  help                          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A <ref> is the row number shown by 'ls' (with the same -p filter)")
	fmt.Fprintf(w, "or at least %d characters of the task ID.\n", session.MinRefPrefix)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
