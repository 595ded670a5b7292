package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		raw     string
		want    Priority
		wantErr bool
	}{
		{"1", 1, false},
		{"5", 5, false},
		{" 3 ", 3, false},
		{"0", 0, true},
		{"6", 0, true},
		{"-1", 0, true},
		{"high", 0, true},
		{"", 0, true},
		{"2.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePriority(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPriority)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"2025-03-10", false},
		{"2024-02-29", false},
		{"2024-13-01", true},
		{"2023-02-29", true},
		{"2024-02-30", true},
		{"tomorrow", true},
		{"2025/03/10", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDueDate(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, got.Format(DateLayout))
			assert.Zero(t, got.Hour())
		})
	}
}

func TestNewValidationOrder(t *testing.T) {
	_, err := New("", "9", "nope")
	assert.ErrorIs(t, err, ErrEmptyDescription)

	_, err = New("Write report", "9", "nope")
	assert.ErrorIs(t, err, ErrInvalidPriority)

	_, err = New("Write report", "2", "nope")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = New("a|b", "2", "2025-03-10")
	assert.ErrorIs(t, err, ErrDelimiterInDescription)

	_, err = New("   ", "2", "2025-03-10")
	assert.ErrorIs(t, err, ErrEmptyDescription)
}

func TestNewTrimsDescription(t *testing.T) {
	got, err := New("  Write report ", "2", "2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, "Write report", got.Description)
	assert.Equal(t, Priority(2), got.Priority)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got.DueDate)
	assert.False(t, got.Completed)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("All")
	require.NoError(t, err)
	assert.True(t, f.IsAll())

	f, err = ParseFilter("")
	require.NoError(t, err)
	assert.True(t, f.IsAll())

	f, err = ParseFilter("3")
	require.NoError(t, err)
	assert.Equal(t, Priority(3), f.Priority)
	assert.Equal(t, "3", f.String())

	_, err = ParseFilter("7")
	assert.True(t, errors.Is(err, ErrInvalidPriority))
}

func TestRowString(t *testing.T) {
	tk, err := New("Call bank", "1", "2025-03-01")
	require.NoError(t, err)

	assert.Equal(t, "✗ Call bank (Priority: 1, Due: 2025-03-01)", NewRow(tk).String())

	tk.Completed = true
	assert.Equal(t, "✓ Call bank (Priority: 1, Due: 2025-03-01)", NewRow(tk).String())
}
