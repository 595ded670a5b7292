package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nibzard/tasklist-go/internal/task"
)

// File is a task list persisted at Path.
type File struct {
	Path string
}

// NewFile returns a File for path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Load reads the task file. A missing file yields an empty list.
func (f *File) Load() ([]task.Task, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	tasks, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse task file %s: %w", f.Path, err)
	}
	return tasks, nil
}

// Save writes tasks through a temp file and renames it over Path, so a
// failed save leaves the previous file intact.
func (f *File) Save(tasks []task.Task) error {
	var buf bytes.Buffer
	if err := Encode(&buf, tasks); err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create task dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close task file: %w", err)
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}
