package todo

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	loaded  []string
	loadErr error
	saveErr error
	saves   [][]Task
}

func (store *memoryStore) Load() ([]string, error) {
	return store.loaded, store.loadErr
}

func (store *memoryStore) Save(tasks []Task) error {
	store.saves = append(store.saves, append([]Task(nil), tasks...))
	return store.saveErr
}

func (store *memoryStore) last() []Task {
	if len(store.saves) == 0 {
		return nil
	}
	return store.saves[len(store.saves)-1]
}

func TestOpenLoadsPendingItems(t *testing.T) {
	store := &memoryStore{loaded: []string{"write report", "", "  ", "call bank"}}
	list := Open(store, zerolog.Nop())

	assert.Equal(t, []Task{{Text: "write report"}, {Text: "call bank"}}, list.Items())
	assert.Empty(t, store.saves)
}

func TestOpenToleratesLoadError(t *testing.T) {
	list := Open(&memoryStore{loadErr: errors.New("disk gone")}, zerolog.Nop())
	assert.Empty(t, list.Items())
}

func TestOpenKeepsLinesReadBeforeError(t *testing.T) {
	store := &memoryStore{loaded: []string{"write report"}, loadErr: errors.New("line too long")}
	list := Open(store, zerolog.Nop())
	require.Equal(t, []Task{{Text: "write report"}}, list.Items())

	list.Add("call bank")
	assert.Equal(t, []Task{{Text: "write report"}, {Text: "call bank"}}, store.last())
}

func TestAddSavesAndIgnoresBlank(t *testing.T) {
	store := &memoryStore{}
	list := Open(store, zerolog.Nop())

	assert.True(t, list.Add("  review PR "))
	assert.False(t, list.Add("   "))

	assert.Equal(t, []Task{{Text: "review PR"}}, list.Items())
	require.Len(t, store.saves, 1)
	assert.Equal(t, []Task{{Text: "review PR"}}, store.last())
}

func TestDoneItemsAreNotPersisted(t *testing.T) {
	store := &memoryStore{loaded: []string{"a", "b", "c"}}
	list := Open(store, zerolog.Nop())

	require.NoError(t, list.SetDone(1, true))
	assert.Equal(t, []Task{{Text: "a"}, {Text: "c"}}, store.last())
	assert.Len(t, list.Items(), 3)
	assert.Equal(t, []Task{{Text: "a"}, {Text: "c"}}, list.Pending())

	require.NoError(t, list.Toggle(1))
	assert.Equal(t, []Task{{Text: "a"}, {Text: "b"}, {Text: "c"}}, store.last())
}

func TestSetTextAndRemove(t *testing.T) {
	store := &memoryStore{loaded: []string{"a", "b", "c"}}
	list := Open(store, zerolog.Nop())

	require.NoError(t, list.SetText(0, "alpha"))
	require.NoError(t, list.SetText(1, " "))
	assert.Equal(t, []Task{{Text: "alpha"}, {Text: "c"}}, list.Items())

	require.NoError(t, list.Remove(1))
	assert.Equal(t, []Task{{Text: "alpha"}}, store.last())
}

func TestOutOfRange(t *testing.T) {
	store := &memoryStore{loaded: []string{"a"}}
	list := Open(store, zerolog.Nop())

	assert.ErrorIs(t, list.SetDone(3, true), ErrNoSuchTask)
	assert.ErrorIs(t, list.Toggle(-1), ErrNoSuchTask)
	assert.ErrorIs(t, list.SetText(1, "x"), ErrNoSuchTask)
	assert.ErrorIs(t, list.Remove(1), ErrNoSuchTask)
	assert.Empty(t, store.saves)
}

func TestSaveErrorKeepsList(t *testing.T) {
	store := &memoryStore{saveErr: errors.New("read-only")}
	list := Open(store, zerolog.Nop())

	assert.True(t, list.Add("still here"))
	assert.Equal(t, []Task{{Text: "still here"}}, list.Items())
}

func TestOnChange(t *testing.T) {
	list := Open(&memoryStore{}, zerolog.Nop())
	var seen [][]Task
	list.OnChange(func(tasks []Task) { seen = append(seen, tasks) })

	list.Add("one")
	list.Add("two")
	require.NoError(t, list.SetDone(0, true))

	require.Len(t, seen, 3)
	assert.Equal(t, []Task{{Text: "one", Done: true}, {Text: "two"}}, seen[2])
}
