// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasklist-go/internal/session"
	"github.com/nibzard/tasklist-go/internal/task"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	filter task.Filter
}

// WithFilter sets the priority filter shown at startup.
func WithFilter(f task.Filter) TUIOption {
	return func(c *tuiConfig) {
		c.filter = f
	}
}

// RunTUI runs the task list UI until the user quits. The session must
// already be loaded; it is saved when the user quits.
func RunTUI(ctx context.Context, sess *session.Session, opts ...TUIOption) error {
	c := &tuiConfig{filter: task.All}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := NewModel(sess, c.filter)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		// Interrupted from outside the program; keep what the user entered.
		if sess.Dirty() {
			if saveErr := sess.SaveToDisk(); saveErr != nil {
				return errors.Join(err, saveErr)
			}
		}
		return err
	}
	if m, ok := finalModel.(*Model); ok {
		return m.Err()
	}
	return nil
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeHelp
)

// Add form fields.
const (
	fieldDescription = iota
	fieldPriority
	fieldDueDate
	fieldCount
)

var fieldLabels = [fieldCount]string{"Task", "Priority (1-5)", "Due (YYYY-MM-DD)"}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	doneStyle    = lipgloss.NewStyle().Faint(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	footerStyle  = lipgloss.NewStyle().Faint(true)
	focusedLabel = lipgloss.NewStyle().Bold(true)
)

// Model is the bubbletea model for the task list.
type Model struct {
	sess    *session.Session
	filter  task.Filter
	rows    []task.Row
	cursor  int
	mode    mode
	inputs  [fieldCount]string
	focus   int
	warning string
	status  string

	saveErr error
}

// NewModel creates a model over a loaded session.
func NewModel(sess *session.Session, filter task.Filter) *Model {
	m := &Model{sess: sess, filter: filter}
	m.refresh()
	return m
}

// Filter returns the active priority filter.
func (m *Model) Filter() task.Filter {
	return m.filter
}

// Rows returns the rows currently displayed.
func (m *Model) Rows() []task.Row {
	return m.rows
}

// Cursor returns the selected row index, or task.NoSelection.
func (m *Model) Cursor() int {
	return m.selected()
}

// Warning returns the last validation or save message.
func (m *Model) Warning() string {
	return m.warning
}

// Err returns the save error the program exited with, if any.
func (m *Model) Err() error {
	return m.saveErr
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		return m, m.quit()
	}

	switch m.mode {
	case modeAdd:
		return m, m.updateForm(key)
	case modeHelp:
		m.mode = modeList
		return m, nil
	}

	switch key.String() {
	case "q":
		return m, m.quit()
	case "?", "h":
		m.mode = modeHelp
	case "a":
		m.mode = modeAdd
		m.focus = fieldDescription
		m.warning = ""
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(m.rows)-1, 0)
	case "c", " ", "enter":
		t, err := m.sess.ToggleComplete(m.filter, m.selected())
		m.report(err, "Completed: "+t.Description)
		m.refresh()
		m.selectID(t)
	case "d", "x", "delete":
		t, err := m.sess.DeleteTask(m.filter, m.selected())
		m.report(err, "Deleted: "+t.Description)
		m.refresh()
	case "0":
		m.setFilter(task.All)
	case "1", "2", "3", "4", "5":
		f, err := task.ParseFilter(key.String())
		if err == nil {
			m.setFilter(f)
		}
	}
	return m, nil
}

func (m *Model) updateForm(key tea.KeyMsg) tea.Cmd {
	switch key.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.warning = ""
	case tea.KeyTab, tea.KeyDown:
		m.focus = (m.focus + 1) % fieldCount
	case tea.KeyShiftTab, tea.KeyUp:
		m.focus = (m.focus + fieldCount - 1) % fieldCount
	case tea.KeyEnter:
		m.submit()
	case tea.KeyBackspace:
		in := []rune(m.inputs[m.focus])
		if len(in) > 0 {
			m.inputs[m.focus] = string(in[:len(in)-1])
		}
	case tea.KeyCtrlU:
		m.inputs[m.focus] = ""
	case tea.KeySpace:
		m.inputs[m.focus] += " "
	case tea.KeyRunes:
		m.inputs[m.focus] += string(key.Runes)
	}
	return nil
}

func (m *Model) submit() {
	t, err := m.sess.AddTask(m.inputs[fieldDescription], m.inputs[fieldPriority], m.inputs[fieldDueDate])
	if err != nil {
		m.warning = err.Error()
		return
	}
	m.inputs = [fieldCount]string{}
	m.focus = fieldDescription
	m.mode = modeList
	m.warning = ""
	m.status = "Added: " + t.Description
	m.refresh()
	m.selectID(t)
}

func (m *Model) quit() tea.Cmd {
	// A second quit after a failed save leaves without saving.
	if m.saveErr != nil {
		return tea.Quit
	}
	if err := m.sess.SaveToDisk(); err != nil {
		m.saveErr = err
		m.warning = fmt.Sprintf("save failed: %v (quit again to discard changes)", err)
		return nil
	}
	return tea.Quit
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.warning = err.Error()
		m.status = ""
		return
	}
	m.warning = ""
	m.status = ok
}

func (m *Model) setFilter(f task.Filter) {
	m.filter = f
	m.cursor = 0
	m.refresh()
}

func (m *Model) refresh() {
	m.rows = m.sess.GetView(m.filter)
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

func (m *Model) selectID(t task.Task) {
	for i, r := range m.rows {
		if r.ID == t.ID {
			m.cursor = i
			return
		}
	}
}

func (m *Model) selected() int {
	if len(m.rows) == 0 {
		return task.NoSelection
	}
	return m.cursor
}

func (m *Model) View() string {
	var b strings.Builder
	writeTitle(&b, m.filter)

	switch m.mode {
	case modeHelp:
		writeHelp(&b)
		b.WriteString(footerStyle.Render("Press any key to return") + "\n")
		return b.String()
	case modeAdd:
		m.writeForm(&b)
	default:
		m.writeList(&b)
	}

	if m.warning != "" {
		b.WriteString(warnStyle.Render("! "+m.warning) + "\n\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n\n")
	}
	writeFooter(&b, m.mode, m.sess.Path())
	return b.String()
}

func writeTitle(b *strings.Builder, f task.Filter) {
	title := "Task List"
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
	b.WriteString(fmt.Sprintf("Filter by priority: %s\n\n", f))
}

func (m *Model) writeList(b *strings.Builder) {
	if len(m.rows) == 0 {
		b.WriteString("  No tasks. Press a to add one.\n\n")
		return
	}
	for i, row := range m.rows {
		line := row.String()
		if row.Completed {
			line = doneStyle.Render(line)
		}
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + line + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
}

func (m *Model) writeForm(b *strings.Builder) {
	b.WriteString("Add Task\n\n")
	for i := 0; i < fieldCount; i++ {
		label := fieldLabels[i] + ":"
		cursor := ""
		if i == m.focus {
			label = focusedLabel.Render(label)
			cursor = "_"
		}
		b.WriteString(fmt.Sprintf("  %s %s%s\n", label, m.inputs[i], cursor))
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  a               Add a task\n")
	b.WriteString("  c, space, enter Mark selected task complete\n")
	b.WriteString("  d, x, delete    Delete selected task\n")
	b.WriteString("  j, k, arrows    Move selection\n")
	b.WriteString("  0               Show all priorities\n")
	b.WriteString("  1-5             Show one priority\n")
	b.WriteString("  ?, h            Toggle this help screen\n")
	b.WriteString("  q, ctrl+c       Save and quit\n\n")
	b.WriteString("Add form: tab moves between fields, enter adds, esc cancels.\n\n")
}

func writeFooter(b *strings.Builder, md mode, path string) {
	if md == modeAdd {
		b.WriteString(footerStyle.Render("tab next field | enter add | esc cancel") + "\n")
		return
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("? help | a add | c complete | d delete | q save and quit | %s", path)) + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
