// Package session exposes the task list to presentation layers.
//
// A Session pairs a task.Store with the file it is persisted to. UIs call
// AddTask, ToggleComplete, DeleteTask and GetView in response to user
// actions, LoadFromDisk at startup and SaveToDisk at shutdown. Positional
// arguments always refer to the view the caller rendered with the same
// filter; they are resolved to stable task IDs before anything changes.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/storage"
	"github.com/nibzard/tasklist-go/internal/task"
)

// MinRefPrefix is the shortest task ID prefix accepted as a reference.
const MinRefPrefix = 4

// Reference errors.
var (
	ErrAmbiguousRef = errors.New("ambiguous task reference")
	ErrInvalidRef   = errors.New("invalid task reference")
)

// Session is the collaborator-facing task list.
type Session struct {
	store  *task.Store
	file   *storage.File
	logger *log.Logger
	dirty  bool
}

// New creates a session. A nil logger discards output.
func New(store *task.Store, file *storage.File, logger *log.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{store: store, file: file, logger: logger}
}

// Store returns the underlying store.
func (s *Session) Store() *task.Store {
	return s.store
}

// Path returns the task file path.
func (s *Session) Path() string {
	return s.file.Path
}

// Dirty reports whether there are changes not yet saved.
func (s *Session) Dirty() bool {
	return s.dirty
}

// AddTask validates raw input and adds a task.
func (s *Session) AddTask(description, priorityText, dueDateText string) (task.Task, error) {
	t, err := s.store.Add(description, priorityText, dueDateText)
	if err != nil {
		s.logger.Warn("task rejected", "error", err)
		return task.Task{}, err
	}
	s.dirty = true
	s.logger.Debug("task added", "id", t.ID, "priority", t.Priority, "due", t.Due())
	return t, nil
}

// ToggleComplete marks the task at viewIndex of the filtered view complete.
// Pass task.NoSelection when nothing is selected.
func (s *Session) ToggleComplete(filter task.Filter, viewIndex int) (task.Task, error) {
	t, err := s.store.At(filter, viewIndex)
	if err != nil {
		s.logger.Warn("complete rejected", "index", viewIndex, "filter", filter, "error", err)
		return task.Task{}, err
	}
	return s.complete(t.ID)
}

// DeleteTask removes the task at viewIndex of the filtered view.
func (s *Session) DeleteTask(filter task.Filter, viewIndex int) (task.Task, error) {
	t, err := s.store.At(filter, viewIndex)
	if err != nil {
		s.logger.Warn("delete rejected", "index", viewIndex, "filter", filter, "error", err)
		return task.Task{}, err
	}
	return s.delete(t.ID)
}

// CompleteByRef marks complete the task named by ref (see Resolve).
func (s *Session) CompleteByRef(filter task.Filter, ref string) (task.Task, error) {
	t, err := s.Resolve(filter, ref)
	if err != nil {
		return task.Task{}, err
	}
	return s.complete(t.ID)
}

// DeleteByRef removes the task named by ref (see Resolve).
func (s *Session) DeleteByRef(filter task.Filter, ref string) (task.Task, error) {
	t, err := s.Resolve(filter, ref)
	if err != nil {
		return task.Task{}, err
	}
	return s.delete(t.ID)
}

// Resolve turns a CLI reference into a task. A reference is either a
// 1-based row number in the filtered view or a task ID prefix of at least
// MinRefPrefix characters.
func (s *Session) Resolve(filter task.Filter, ref string) (task.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return task.Task{}, task.ErrNoSelection
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 {
			return task.Task{}, fmt.Errorf("%w: %d", task.ErrIndexOutOfRange, n)
		}
		t, err := s.store.At(filter, n-1)
		if errors.Is(err, task.ErrIndexOutOfRange) {
			return task.Task{}, fmt.Errorf("%w: row %d, view has %d tasks", task.ErrIndexOutOfRange, n, len(s.store.View(filter)))
		}
		return t, err
	}

	if len(ref) < MinRefPrefix {
		return task.Task{}, fmt.Errorf("%w: %q (use a row number or at least %d ID characters)", ErrInvalidRef, ref, MinRefPrefix)
	}
	prefix := strings.ToLower(ref)
	var found []task.Task
	for _, t := range s.store.Snapshot() {
		if strings.HasPrefix(t.ID.String(), prefix) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return task.Task{}, fmt.Errorf("%w: %s", task.ErrNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return task.Task{}, fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguousRef, ref, len(found))
	}
}

// GetView returns display rows for the filtered view.
func (s *Session) GetView(filter task.Filter) []task.Row {
	return s.store.Rows(filter)
}

// LoadFromDisk replaces the store with the task file contents. A missing
// file leaves an empty list. A malformed file changes nothing.
func (s *Session) LoadFromDisk() error {
	tasks, err := s.file.Load()
	if err != nil {
		s.logger.Warn("load failed", "path", s.file.Path, "error", err)
		return err
	}
	s.store.ReplaceAll(tasks)
	s.dirty = false
	s.logger.Debug("tasks loaded", "path", s.file.Path, "count", len(tasks))
	return nil
}

// SaveToDisk writes the whole store to the task file.
func (s *Session) SaveToDisk() error {
	tasks := s.store.Snapshot()
	if err := s.file.Save(tasks); err != nil {
		s.logger.Warn("save failed", "path", s.file.Path, "error", err)
		return err
	}
	s.dirty = false
	s.logger.Debug("tasks saved", "path", s.file.Path, "count", len(tasks))
	return nil
}

// Replace swaps in a new collection, as an import does.
func (s *Session) Replace(tasks []task.Task) {
	s.store.ReplaceAll(tasks)
	s.dirty = true
	s.logger.Info("tasks replaced", "count", len(tasks))
}

func (s *Session) complete(id uuid.UUID) (task.Task, error) {
	if err := s.store.Complete(id); err != nil {
		s.logger.Warn("complete rejected", "id", id, "error", err)
		return task.Task{}, err
	}
	s.dirty = true
	t, _ := s.store.Get(id)
	s.logger.Debug("task completed", "id", id)
	return t, nil
}

func (s *Session) delete(id uuid.UUID) (task.Task, error) {
	t, ok := s.store.Get(id)
	if !ok {
		err := fmt.Errorf("%w: %s", task.ErrNotFound, id)
		s.logger.Warn("delete rejected", "id", id, "error", err)
		return task.Task{}, err
	}
	if err := s.store.Delete(id); err != nil {
		return task.Task{}, err
	}
	s.dirty = true
	s.logger.Debug("task deleted", "id", id)
	return t, nil
}
