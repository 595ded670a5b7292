package task

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Status glyphs shown in front of each row.
const (
	GlyphDone    = "✓"
	GlyphPending = "✗"
)

// Filter restricts a view to one priority. The zero value shows all tasks.
type Filter struct {
	Priority Priority
}

// All is the filter that shows every task.
var All = Filter{}

// ParseFilter parses "All" (or empty) and "1".."5".
func ParseFilter(raw string) (Filter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return All, nil
	}
	p, err := ParsePriority(raw)
	if err != nil {
		return Filter{}, err
	}
	return Filter{Priority: p}, nil
}

// IsAll reports whether f shows every task.
func (f Filter) IsAll() bool {
	return f.Priority == 0
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Task) bool {
	return f.IsAll() || t.Priority == f.Priority
}

func (f Filter) String() string {
	if f.IsAll() {
		return "All"
	}
	return fmt.Sprintf("%d", f.Priority)
}

// Row is a rendered view entry.
type Row struct {
	ID          uuid.UUID
	Status      string
	Description string
	Priority    Priority
	Due         string
	Completed   bool
}

// NewRow renders a task for display.
func NewRow(t Task) Row {
	status := GlyphPending
	if t.Completed {
		status = GlyphDone
	}
	return Row{
		ID:          t.ID,
		Status:      status,
		Description: t.Description,
		Priority:    t.Priority,
		Due:         t.Due(),
		Completed:   t.Completed,
	}
}

func (r Row) String() string {
	return fmt.Sprintf("%s %s (Priority: %d, Due: %s)", r.Status, r.Description, r.Priority, r.Due)
}

// Less orders tasks by (completed, priority, due date).
func Less(a, b Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.DueDate.Before(b.DueDate)
}

// SortTasks returns a stably sorted, filtered copy of tasks.
func SortTasks(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i], out[j])
	})
	return out
}
