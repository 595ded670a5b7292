package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the due date format used for input, display and persistence.
const DateLayout = "2006-01-02"

// Priority bounds. 1 is the most urgent.
const (
	MinPriority Priority = 1
	MaxPriority Priority = 5
)

// Validation and selection errors.
var (
	ErrEmptyDescription       = errors.New("task cannot be empty")
	ErrDelimiterInDescription = errors.New("task cannot contain '|' or line breaks")
	ErrInvalidPriority        = errors.New("priority must be an integer between 1 and 5")
	ErrInvalidDate            = errors.New("invalid date format, use YYYY-MM-DD")
	ErrNoSelection            = errors.New("no task selected")
	ErrIndexOutOfRange        = errors.New("task index out of range")
	ErrNotFound               = errors.New("task not found")
)

// idNamespace scopes derived task IDs.
var idNamespace = uuid.MustParse("6f3c2a1e-8d4b-4c7a-9e5f-2b1d0a9c8e7f")

// DeriveID returns the ID of the n-th task (counting from 0) with t's
// description, priority and due date. The completed flag is left out so a
// task keeps its ID when it is completed.
func DeriveID(t Task, n int) uuid.UUID {
	key := fmt.Sprintf("%s|%d|%s|%d", t.Description, t.Priority, t.Due(), n)
	return uuid.NewSHA1(idNamespace, []byte(key))
}

// Priority is a task priority in [MinPriority, MaxPriority].
type Priority int

// Valid reports whether p lies in [1,5].
func (p Priority) Valid() bool {
	return p >= MinPriority && p <= MaxPriority
}

// Task is a single entry in the task list.
type Task struct {
	ID          uuid.UUID
	Description string
	Priority    Priority
	DueDate     time.Time
	Completed   bool
}

// Due returns the due date formatted as YYYY-MM-DD.
func (t Task) Due() string {
	return t.DueDate.Format(DateLayout)
}

// ParsePriority parses user or file input into a Priority.
func ParsePriority(raw string) (Priority, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	p := Priority(n)
	if !p.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPriority, n)
	}
	return p, nil
}

// ParseDueDate parses a YYYY-MM-DD date. Out-of-range months and days
// (2024-13-01, 2024-02-30) are rejected.
func ParseDueDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return d, nil
}

// ValidateDescription checks a description that will be stored verbatim.
func ValidateDescription(desc string) error {
	if strings.TrimSpace(desc) == "" {
		return ErrEmptyDescription
	}
	if strings.ContainsAny(desc, "|\r\n") {
		return fmt.Errorf("%w: %q", ErrDelimiterInDescription, desc)
	}
	return nil
}

// New validates raw input and builds an incomplete task without an ID.
func New(description, priorityRaw, dueDateRaw string) (Task, error) {
	description = strings.TrimSpace(description)
	if err := ValidateDescription(description); err != nil {
		return Task{}, err
	}
	priority, err := ParsePriority(priorityRaw)
	if err != nil {
		return Task{}, err
	}
	due, err := ParseDueDate(dueDateRaw)
	if err != nil {
		return Task{}, err
	}
	return Task{
		Description: description,
		Priority:    priority,
		DueDate:     due,
	}, nil
}
