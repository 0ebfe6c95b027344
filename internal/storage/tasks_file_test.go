package storage

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/todo"
)

func TestTaskFileMissingIsEmpty(t *testing.T) {
	lines, err := NewTaskFile(afero.NewMemMapFs(), "/data/Pomodoro").Load()
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestTaskFileDropsDoneItems(t *testing.T) {
	fs := afero.NewMemMapFs()
	file := NewTaskFile(fs, "/data/Pomodoro")

	require.NoError(t, file.Save([]todo.Task{
		{Text: "write report"},
		{Text: "water plants", Done: true},
		{Text: "call bank"},
	}))

	raw, err := afero.ReadFile(fs, "/data/Pomodoro/tasks")
	require.NoError(t, err)
	assert.Equal(t, "write report\ncall bank\n", string(raw))

	lines, err := file.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"write report", "call bank"}, lines)
}

func TestTaskFileBacksList(t *testing.T) {
	fs := afero.NewMemMapFs()
	file := NewTaskFile(fs, "/data")

	list := todo.Open(file, zerolog.Nop())
	list.Add("first")
	list.Add("second")
	require.NoError(t, list.SetDone(0, true))

	reopened := todo.Open(file, zerolog.Nop())
	assert.Equal(t, []todo.Task{{Text: "second"}}, reopened.Items())
}

func TestTaskFileReadsLongLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	file := NewTaskFile(fs, "/data")
	long := strings.Repeat("x", 70*1024)
	require.NoError(t, afero.WriteFile(fs, file.Path(), []byte("keep me\n"+long+"\nalso keep\n"), 0o644))

	list := todo.Open(file, zerolog.Nop())
	require.Len(t, list.Items(), 3)
	list.Add("new")

	lines, err := file.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"keep me", long, "also keep", "new"}, lines)
}
