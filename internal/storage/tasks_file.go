package storage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"pomodoro/internal/core/todo"
)

const (
	tasksFileName = "tasks"
	maxTaskLine   = 1 << 20
)

// TaskFile stores pending tasks one per line.
type TaskFile struct {
	fs   afero.Fs
	path string
}

// NewTaskFile returns a task store for dir/tasks.
func NewTaskFile(fs afero.Fs, dir string) *TaskFile {
	return &TaskFile{fs: fs, path: filepath.Join(dir, tasksFileName)}
}

// Path returns the file location.
func (file *TaskFile) Path() string {
	return file.path
}

// Load reads every line of the file. A missing file is an empty list.
func (file *TaskFile) Load() ([]string, error) {
	handle, err := file.fs.Open(file.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open tasks file: %w", err)
	}
	defer handle.Close()

	var lines []string
	scanner := bufio.NewScanner(handle)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxTaskLine)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("read tasks file: %w", err)
	}
	return lines, nil
}

// Save rewrites the file with the pending tasks.
func (file *TaskFile) Save(tasks []todo.Task) error {
	if err := file.fs.MkdirAll(filepath.Dir(file.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	var buffer bytes.Buffer
	for _, task := range tasks {
		if task.Done {
			continue
		}
		buffer.WriteString(task.Text)
		buffer.WriteByte('\n')
	}

	if err := afero.WriteFile(file.fs, file.path, buffer.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	return nil
}
