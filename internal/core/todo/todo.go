// Package todo keeps the to-do list shown next to the timer.
package todo

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// ErrNoSuchTask indicates an index outside the list.
var ErrNoSuchTask = errors.New("no such task")

// Task is a single to-do item.
type Task struct {
	Text string
	Done bool
}

// Store persists the pending part of the list.
type Store interface {
	Load() ([]string, error)
	Save(tasks []Task) error
}

// List is an ordered to-do list. Every mutation is written through to the
// store; store failures are logged and never returned.
type List struct {
	mu        sync.Mutex
	tasks     []Task
	store     Store
	log       zerolog.Logger
	observers []func([]Task)
}

// Open loads the list from store. On a load failure the lines read before it
// are kept.
func Open(store Store, logger zerolog.Logger) *List {
	list := &List{
		store: store,
		log:   logger.With().Str("component", "todo").Logger(),
	}

	texts, err := store.Load()
	if err != nil {
		list.log.Warn().Err(err).Int("read", len(texts)).Msg("load tasks")
	}
	for _, text := range texts {
		if text = strings.TrimSpace(text); text != "" {
			list.tasks = append(list.tasks, Task{Text: text})
		}
	}
	list.log.Debug().Int("count", len(list.tasks)).Msg("tasks loaded")
	return list
}

// OnChange registers a callback run with a copy of the list after every
// mutation.
func (list *List) OnChange(callback func([]Task)) {
	list.mu.Lock()
	list.observers = append(list.observers, callback)
	list.mu.Unlock()
}

// Items returns a copy of all tasks.
func (list *List) Items() []Task {
	list.mu.Lock()
	defer list.mu.Unlock()
	return append([]Task(nil), list.tasks...)
}

// Pending returns the tasks not yet done.
func (list *List) Pending() []Task {
	list.mu.Lock()
	defer list.mu.Unlock()
	return pending(list.tasks)
}

// Add appends a task. Blank text is ignored and reports false.
func (list *List) Add(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	list.mutate(func(tasks []Task) ([]Task, error) {
		return append(tasks, Task{Text: text}), nil
	})
	return true
}

// SetDone marks the task at index done or not done.
func (list *List) SetDone(index int, done bool) error {
	return list.mutate(func(tasks []Task) ([]Task, error) {
		if index < 0 || index >= len(tasks) {
			return nil, fmt.Errorf("set done %d: %w", index, ErrNoSuchTask)
		}
		tasks[index].Done = done
		return tasks, nil
	})
}

// Toggle flips the done state of the task at index.
func (list *List) Toggle(index int) error {
	return list.mutate(func(tasks []Task) ([]Task, error) {
		if index < 0 || index >= len(tasks) {
			return nil, fmt.Errorf("toggle %d: %w", index, ErrNoSuchTask)
		}
		tasks[index].Done = !tasks[index].Done
		return tasks, nil
	})
}

// SetText replaces the text of the task at index. Blank text removes it.
func (list *List) SetText(index int, text string) error {
	text = strings.TrimSpace(text)
	return list.mutate(func(tasks []Task) ([]Task, error) {
		if index < 0 || index >= len(tasks) {
			return nil, fmt.Errorf("set text %d: %w", index, ErrNoSuchTask)
		}
		if text == "" {
			return append(tasks[:index], tasks[index+1:]...), nil
		}
		tasks[index].Text = text
		return tasks, nil
	})
}

// Remove deletes the task at index.
func (list *List) Remove(index int) error {
	return list.mutate(func(tasks []Task) ([]Task, error) {
		if index < 0 || index >= len(tasks) {
			return nil, fmt.Errorf("remove %d: %w", index, ErrNoSuchTask)
		}
		return append(tasks[:index], tasks[index+1:]...), nil
	})
}

func (list *List) mutate(change func([]Task) ([]Task, error)) error {
	list.mu.Lock()
	tasks, err := change(append([]Task(nil), list.tasks...))
	if err != nil {
		list.mu.Unlock()
		return err
	}
	list.tasks = tasks
	snapshot := append([]Task(nil), tasks...)
	observers := append([]func([]Task)(nil), list.observers...)
	if err := list.store.Save(pending(tasks)); err != nil {
		list.log.Error().Err(err).Msg("save tasks")
	}
	list.mu.Unlock()

	for _, observer := range observers {
		observer(snapshot)
	}
	return nil
}

func pending(tasks []Task) []Task {
	result := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if !task.Done {
			result = append(result, task)
		}
	}
	return result
}
