package task

import (
	"fmt"

	"github.com/google/uuid"
)

// NoSelection is the view index callers pass when nothing is selected.
const NoSelection = -1

// Store owns the in-memory task collection in insertion order.
// It is not safe for concurrent use.
type Store struct {
	tasks []Task
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Add validates raw input and appends an incomplete task.
// On error the collection is unchanged.
func (s *Store) Add(description, priorityRaw, dueDateRaw string) (Task, error) {
	t, err := New(description, priorityRaw, dueDateRaw)
	if err != nil {
		return Task{}, err
	}
	t.ID = s.nextID(t)
	s.tasks = append(s.tasks, t)
	return t, nil
}

// Get returns the task with the given ID.
func (s *Store) Get(id uuid.UUID) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Complete marks a task completed. Completing a completed task is a no-op.
func (s *Store) Complete(id uuid.UUID) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.tasks[i].Completed = true
	return nil
}

// Delete removes a task.
func (s *Store) Delete(id uuid.UUID) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// View returns the sorted, filtered tasks. It does not modify the store.
func (s *Store) View(f Filter) []Task {
	return SortTasks(s.tasks, f)
}

// Rows returns View rendered for display.
func (s *Store) Rows(f Filter) []Row {
	view := s.View(f)
	rows := make([]Row, len(view))
	for i, t := range view {
		rows[i] = NewRow(t)
	}
	return rows
}

// At resolves a position in View(f) to its task.
func (s *Store) At(f Filter, index int) (Task, error) {
	if index < 0 {
		return Task{}, ErrNoSelection
	}
	view := s.View(f)
	if index >= len(view) {
		return Task{}, fmt.Errorf("%w: %d (view has %d tasks)", ErrIndexOutOfRange, index, len(view))
	}
	return view[index], nil
}

// ReplaceAll swaps in a new collection. Tasks without an ID get the same
// derived ID that Add would have given them in this order, so IDs of a
// reloaded file match the ones printed before it was saved.
func (s *Store) ReplaceAll(tasks []Task) {
	s.tasks = make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == uuid.Nil {
			t.ID = s.nextID(t)
		}
		s.tasks = append(s.tasks, t)
	}
}

// Snapshot returns a copy of the collection in insertion order.
func (s *Store) Snapshot() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// nextID returns the first derived ID for t not already in the store.
func (s *Store) nextID(t Task) uuid.UUID {
	for n := 0; ; n++ {
		id := DeriveID(t, n)
		if s.index(id) < 0 {
			return id
		}
	}
}

func (s *Store) index(id uuid.UUID) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
