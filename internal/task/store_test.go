package task

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptions(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Description
	}
	return out
}

func mustAdd(t *testing.T, s *Store, desc, prio, due string) Task {
	t.Helper()
	tk, err := s.Add(desc, prio, due)
	require.NoError(t, err)
	return tk
}

func TestStoreAddSortsByPriority(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "Write report", "2", "2025-03-10")
	mustAdd(t, s, "Call bank", "1", "2025-03-01")

	rows := s.Rows(All)
	require.Len(t, rows, 2)
	assert.Equal(t, "✗ Call bank (Priority: 1, Due: 2025-03-01)", rows[0].String())
	assert.Equal(t, "✗ Write report (Priority: 2, Due: 2025-03-10)", rows[1].String())
}

func TestStoreAddRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		desc string
		prio string
		due  string
		err  error
	}{
		{"empty description", "", "1", "2025-01-01", ErrEmptyDescription},
		{"priority zero", "x", "0", "2025-01-01", ErrInvalidPriority},
		{"priority six", "x", "6", "2025-01-01", ErrInvalidPriority},
		{"priority text", "x", "urgent", "2025-01-01", ErrInvalidPriority},
		{"month 13", "x", "1", "2024-13-01", ErrInvalidDate},
		{"date text", "x", "1", "next week", ErrInvalidDate},
		{"pipe", "a|b", "1", "2025-01-01", ErrDelimiterInDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			mustAdd(t, s, "existing", "3", "2025-01-01")
			before := s.Snapshot()

			_, err := s.Add(tt.desc, tt.prio, tt.due)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, before, s.Snapshot())
		})
	}
}

func TestStoreViewOrder(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "p3 late", "3", "2025-05-01")
	mustAdd(t, s, "p1 late", "1", "2025-04-01")
	mustAdd(t, s, "p3 early", "3", "2025-01-01")
	mustAdd(t, s, "p1 early", "1", "2025-02-01")
	done := mustAdd(t, s, "p1 done", "1", "2024-01-01")
	require.NoError(t, s.Complete(done.ID))

	assert.Equal(t,
		[]string{"p1 early", "p1 late", "p3 early", "p3 late", "p1 done"},
		descriptions(s.View(All)))
}

func TestStoreViewStableTies(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "first", "2", "2025-03-01")
	mustAdd(t, s, "second", "2", "2025-03-01")
	mustAdd(t, s, "third", "2", "2025-03-01")

	assert.Equal(t, []string{"first", "second", "third"}, descriptions(s.View(All)))
}

func TestStoreViewIsTotalOrder(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	var tasks []Task
	for i := 0; i < 200; i++ {
		tasks = append(tasks, Task{
			ID:          uuid.New(),
			Description: fmt.Sprintf("t%d", i),
			Priority:    Priority(r.Intn(5) + 1),
			DueDate:     base.AddDate(0, 0, r.Intn(10)),
			Completed:   r.Intn(2) == 0,
		})
	}
	s := NewStore()
	s.ReplaceAll(tasks)

	position := make(map[uuid.UUID]int, len(tasks))
	for i, tk := range tasks {
		position[tk.ID] = i
	}

	view := s.View(All)
	require.Len(t, view, len(tasks))
	for i := 1; i < len(view); i++ {
		prev, cur := view[i-1], view[i]
		require.False(t, Less(cur, prev), "%s sorted before %s", prev.Description, cur.Description)
		if !Less(prev, cur) {
			assert.Less(t, position[prev.ID], position[cur.ID], "tie broken out of insertion order")
		}
	}
}

func TestStoreViewFilter(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "a", "1", "2025-01-01")
	mustAdd(t, s, "b", "2", "2025-01-01")
	mustAdd(t, s, "c", "2", "2024-01-01")

	assert.Equal(t, []string{"c", "b"}, descriptions(s.View(Filter{Priority: 2})))
	assert.Empty(t, s.View(Filter{Priority: 5}))
	assert.Len(t, s.View(All), 3)
}

func TestStoreViewDoesNotMutate(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "b", "2", "2025-01-01")
	mustAdd(t, s, "a", "1", "2025-01-01")
	before := s.Snapshot()

	_ = s.View(All)
	_ = s.View(Filter{Priority: 1})

	assert.Equal(t, before, s.Snapshot())
}

func TestStoreCompleteMovesToEnd(t *testing.T) {
	s := NewStore()
	target := mustAdd(t, s, "urgent", "1", "2025-01-01")
	mustAdd(t, s, "later", "5", "2026-01-01")
	mustAdd(t, s, "middle", "3", "2025-06-01")

	require.NoError(t, s.Complete(target.ID))

	view := s.View(All)
	assert.Equal(t, "urgent", view[len(view)-1].Description)
	assert.True(t, view[len(view)-1].Completed)

	// Completing twice keeps it completed.
	require.NoError(t, s.Complete(target.ID))
	got, ok := s.Get(target.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)
}

func TestStoreDelete(t *testing.T) {
	s := NewStore()
	a := mustAdd(t, s, "a", "1", "2025-01-01")
	mustAdd(t, s, "b", "2", "2025-01-01")

	require.NoError(t, s.Delete(a.ID))
	assert.Equal(t, 1, s.Len())
	assert.NotContains(t, descriptions(s.View(All)), "a")

	assert.ErrorIs(t, s.Delete(a.ID), ErrNotFound)
	assert.ErrorIs(t, s.Complete(a.ID), ErrNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestStoreAt(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "b", "2", "2025-01-01")
	mustAdd(t, s, "a", "1", "2025-01-01")
	mustAdd(t, s, "c", "2", "2024-01-01")

	got, err := s.At(All, 0)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Description)

	// Index 0 of the priority-2 view is "c", not the first stored task.
	got, err = s.At(Filter{Priority: 2}, 0)
	require.NoError(t, err)
	assert.Equal(t, "c", got.Description)

	_, err = s.At(All, NoSelection)
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = s.At(All, 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = s.At(Filter{Priority: 1}, 1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestStoreReplaceAllAndSnapshot(t *testing.T) {
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	keep := uuid.New()
	in := []Task{
		{ID: keep, Description: "kept id", Priority: 1, DueDate: due},
		{Description: "new id", Priority: 2, DueDate: due, Completed: true},
	}

	s := NewStore()
	mustAdd(t, s, "replaced", "3", "2025-01-01")
	s.ReplaceAll(in)

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, keep, snap[0].ID)
	assert.NotEqual(t, uuid.Nil, snap[1].ID)
	assert.Equal(t, uuid.Nil, in[1].ID, "input slice must not be modified")

	// Snapshot is a copy.
	snap[0].Description = "changed"
	got, _ := s.Get(keep)
	assert.Equal(t, "kept id", got.Description)
}

func TestStoreIDsSurviveReload(t *testing.T) {
	s := NewStore()
	a := mustAdd(t, s, "Buy milk", "1", "2025-01-01")
	b := mustAdd(t, s, "Buy milk", "1", "2025-01-01")
	c := mustAdd(t, s, "Write report", "2", "2025-03-10")
	require.NoError(t, s.Complete(c.ID))
	assert.NotEqual(t, a.ID, b.ID, "identical tasks need distinct IDs")

	// What a load sees: the same tasks, in file order, without IDs.
	var stripped []Task
	for _, tk := range s.Snapshot() {
		tk.ID = uuid.Nil
		stripped = append(stripped, tk)
	}
	reloaded := NewStore()
	reloaded.ReplaceAll(stripped)

	for _, want := range []Task{a, b, c} {
		got, ok := reloaded.Get(want.ID)
		require.True(t, ok, "task %q lost its ID on reload", want.Description)
		assert.Equal(t, want.Description, got.Description)
	}
	done, _ := reloaded.Get(c.ID)
	assert.True(t, done.Completed, "completing a task must not change its ID")
}

func TestStoreAddAfterDeleteKeepsIDsUnique(t *testing.T) {
	s := NewStore()
	a := mustAdd(t, s, "dup", "3", "2025-01-01")
	b := mustAdd(t, s, "dup", "3", "2025-01-01")
	require.NoError(t, s.Delete(a.ID))

	c := mustAdd(t, s, "dup", "3", "2025-01-01")
	assert.NotEqual(t, b.ID, c.ID)
	assert.Equal(t, 2, s.Len())
}
