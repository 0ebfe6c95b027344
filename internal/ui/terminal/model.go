// Package terminal is the bubbletea front end.
package terminal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/core/todo"
)

const requestTimeout = 2 * time.Second

// Timer is the part of the timekeeper the terminal drives.
type Timer interface {
	Advance(ctx context.Context) (timekeeper.AdvanceResult, error)
	Snapshot(ctx context.Context) (timekeeper.TickResult, error)
}

type eventMsg timekeeper.Event

type eventsClosedMsg struct{}

type snapshotMsg struct {
	result timekeeper.TickResult
	err    error
}

type advancedMsg struct {
	result timekeeper.AdvanceResult
	err    error
}

// Model renders the timer and the task list.
type Model struct {
	timer  Timer
	tasks  *todo.List
	events <-chan timekeeper.Event
	keys   keyMap
	help   help.Model
	input  textinput.Model
	bar    progress.Model

	tick   timekeeper.TickResult
	total  time.Duration
	items  []todo.Task
	cursor int

	// adding is set while the input is open; editing names the task it
	// rewrites, -1 for a new task.
	adding  bool
	editing int
	err     error
	taskErr error
}

// New returns a model fed by events from the timekeeper.
func New(timer Timer, tasks *todo.List, events <-chan timekeeper.Event) Model {
	input := textinput.New()
	input.Placeholder = "What needs doing?"
	input.CharLimit = 200

	return Model{
		timer:   timer,
		tasks:   tasks,
		events:  events,
		keys:    defaultKeys(),
		help:    help.New(),
		input:   input,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		items:   tasks.Items(),
		editing: -1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.snapshot())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.applyEvent(timekeeper.Event(msg))
		return m, m.waitForEvent()

	case eventsClosedMsg:
		return m, tea.Quit

	case snapshotMsg:
		if msg.err == nil {
			m.tick = msg.result
		}
		return m, nil

	case advancedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.applyAdvance(msg.result)
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(msg.Width-8, 60))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m, m.advance()
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.editing = -1
		m.input.Reset()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Edit):
		if len(m.items) == 0 {
			return m, nil
		}
		m.adding = true
		m.editing = m.cursor
		m.input.SetValue(m.items[m.cursor].Text)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if len(m.items) > 0 {
			m.taskErr = m.tasks.Toggle(m.cursor)
			m.syncTasks()
		}
	case key.Matches(msg, m.keys.Remove):
		if len(m.items) > 0 {
			m.taskErr = m.tasks.Remove(m.cursor)
			m.syncTasks()
		}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.editing >= 0 {
			// Blank text removes the task.
			m.taskErr = m.tasks.SetText(m.editing, m.input.Value())
			m.syncTasks()
		} else if m.tasks.Add(m.input.Value()) {
			m.syncTasks()
			m.cursor = len(m.items) - 1
		}
		m.adding = false
		m.editing = -1
		m.input.Blur()
		return m, nil
	case tea.KeyEsc:
		m.adding = false
		m.editing = -1
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) applyEvent(event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventTick:
		m.tick = event.Tick
	case timekeeper.EventAdvanced:
		m.applyAdvance(event.Advance)
	case timekeeper.EventError:
		m.err = event.Err
	}
}

func (m *Model) applyAdvance(result timekeeper.AdvanceResult) {
	m.err = nil
	m.total = result.Duration
	m.tick = timekeeper.TickResult{
		Kind:      timekeeper.TickRemaining,
		Phase:     result.Phase,
		Round:     result.Round,
		Remaining: result.Duration,
	}
}

func (m *Model) syncTasks() {
	m.items = m.tasks.Items()
	if m.cursor >= len(m.items) {
		m.cursor = max(0, len(m.items)-1)
	}
}

func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

func (m Model) snapshot() tea.Cmd {
	timer := m.timer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := timer.Snapshot(ctx)
		return snapshotMsg{result: result, err: err}
	}
}

func (m Model) advance() tea.Cmd {
	timer := m.timer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := timer.Advance(ctx)
		return advancedMsg{result: result, err: err}
	}
}

// progressPercent is the elapsed share of the interval, full once expired.
func (m Model) progressPercent() float64 {
	if m.tick.Expired() {
		return 1
	}
	if m.total <= 0 {
		return 0
	}
	return 1 - float64(m.tick.Remaining)/float64(m.total)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Pomodoro"))
	b.WriteString("\n\n")

	clock := clockStyle
	if m.tick.Expired() {
		clock = overrunStyle
	}
	b.WriteString(clock.Render(timekeeper.FormatTick(m.tick)))
	b.WriteString("  ")
	b.WriteString(captionStyle.Render(m.caption()))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(m.progressPercent()))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Could not advance: " + m.err.Error()))
		b.WriteString("\n")
	}
	if m.taskErr != nil {
		b.WriteString(errorStyle.Render("Task not changed: " + m.taskErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(boxStyle.Render(m.taskView()))
	b.WriteString("\n")
	if m.adding {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) caption() string {
	text := m.tick.Phase.Label()
	if text == "" {
		text = timekeeper.PhasePause.Label()
	}
	if m.tick.Round > 0 {
		text += fmt.Sprintf(" · round %d", m.tick.Round)
	}
	if m.tick.Expired() {
		text += " · time is up, press n"
	}
	return text
}

func (m Model) taskView() string {
	if len(m.items) == 0 {
		return captionStyle.Render("No tasks. Press a to add one.")
	}
	lines := make([]string, 0, len(m.items))
	for i, task := range m.items {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		box := "[ ] "
		text := task.Text
		if task.Done {
			box = "[x] "
			text = doneStyle.Render(text)
		}
		lines = append(lines, marker+box+text)
	}
	return strings.Join(lines, "\n")
}
