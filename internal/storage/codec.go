// Package storage reads and writes task lists.
//
// The task file holds one task per line:
//
//	<description>|<priority 1-5>|<YYYY-MM-DD>|<True|False>
//
// There is no header and no escaping, so descriptions may not contain '|' or
// line breaks. Encode refuses such tasks instead of writing a file that would
// not load back.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/tasklist-go/internal/task"
)

const (
	fieldSep   = "|"
	fieldCount = 4

	completedTrue  = "True"
	completedFalse = "False"
)

// ErrMalformedLine reports a line that is not four pipe-separated fields.
var ErrMalformedLine = errors.New("malformed line")

// LineError is a decode error with its 1-based line number.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// EncodeTask renders one task as a line without the trailing newline.
func EncodeTask(t task.Task) (string, error) {
	if err := task.ValidateDescription(t.Description); err != nil {
		return "", err
	}
	completed := completedFalse
	if t.Completed {
		completed = completedTrue
	}
	return strings.Join([]string{
		t.Description,
		fmt.Sprintf("%d", t.Priority),
		t.Due(),
		completed,
	}, fieldSep), nil
}

// Encode writes tasks in file order, one line each. Nothing is written if
// any task fails to encode.
func Encode(w io.Writer, tasks []task.Task) error {
	var b strings.Builder
	for i, t := range tasks {
		line, err := EncodeTask(t)
		if err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// DecodeTask parses a single trimmed, non-empty line.
func DecodeTask(line string) (task.Task, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) != fieldCount {
		return task.Task{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedLine, fieldCount, len(fields))
	}

	desc := fields[0]
	if err := task.ValidateDescription(desc); err != nil {
		return task.Task{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	priority, err := task.ParsePriority(fields[1])
	if err != nil {
		return task.Task{}, err
	}
	due, err := task.ParseDueDate(fields[2])
	if err != nil {
		return task.Task{}, err
	}

	var completed bool
	switch fields[3] {
	case completedTrue:
		completed = true
	case completedFalse:
		completed = false
	default:
		return task.Task{}, fmt.Errorf("%w: completed must be %s or %s, got %q",
			ErrMalformedLine, completedTrue, completedFalse, fields[3])
	}

	return task.Task{
		Description: desc,
		Priority:    priority,
		DueDate:     due,
		Completed:   completed,
	}, nil
}

// Decode reads every task from r. Blank lines are skipped. The first bad
// line aborts the whole decode.
func Decode(r io.Reader) ([]task.Task, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	tasks := make([]task.Task, 0)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t, err := DecodeTask(line)
		if err != nil {
			return nil, &LineError{Line: lineNo, Err: err}
		}
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	return tasks, nil
}
