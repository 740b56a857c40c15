// Package tui is a terminal form editor for one CV with a live preview
// next to the form.
package tui

import (
	"fmt"
	"strings"

	"cv-builder/internal/editor"
	"cv-builder/internal/model"
	"cv-builder/internal/render"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SaveFunc persists a snapshot when the user presses ctrl+s.
type SaveFunc func(model.Document) error

type savedMsg struct{ err error }

var (
	sectionLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	cursorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	paneStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const helpLine = "↑/↓ move • enter edit/add • esc cancel • ctrl+d remove • ctrl+r reset • ctrl+s save • ctrl+c quit"

// Model is the bubbletea model of the editor. All edits go through the
// session as named operations.
type Model struct {
	session *editor.Session
	save    SaveFunc

	rows    []row
	cursor  int
	input   textinput.Model
	editing bool

	unsaved bool
	status  string
	failed  bool

	width, height int
}

func New(s *editor.Session, save SaveFunc) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 500
	return Model{
		session: s,
		save:    save,
		rows:    buildRows(s.Snapshot()),
		input:   in,
		width:   120,
		height:  40,
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Document returns the current snapshot.
func (m Model) Document() model.Document { return m.session.Snapshot() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.setStatus("save failed: "+msg.err.Error(), true)
		} else {
			m.unsaved = false
			m.setStatus("saved", false)
		}
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		if r := m.rows[m.cursor]; r.edit != nil {
			m.apply(r.edit(m.input.Value()))
		}
		return m, nil
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "enter":
		r := m.rows[m.cursor]
		switch {
		case r.edit != nil:
			m.editing = true
			m.input.SetValue(r.value)
			m.input.CursorEnd()
			return m, m.input.Focus()
		case r.activate != nil:
			m.apply(*r.activate)
		}
	case "ctrl+d":
		if r := m.rows[m.cursor]; r.remove != nil {
			m.apply(*r.remove)
		}
	case "ctrl+r":
		m.apply(editor.Op{Kind: editor.OpResetData})
	case "ctrl+s":
		if m.save == nil {
			m.setStatus("no save target", true)
			return m, nil
		}
		doc, save := m.session.Snapshot(), m.save
		return m, func() tea.Msg { return savedMsg{err: save(doc)} }
	}
	return m, nil
}

func (m *Model) apply(op editor.Op) {
	if _, err := m.session.Apply(op); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.unsaved = true
	m.status = ""
	m.rows = buildRows(m.session.Snapshot())
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m *Model) setStatus(s string, failed bool) {
	m.status, m.failed = s, failed
}

func (m Model) View() string {
	formWidth := m.width/2 - 4
	previewWidth := m.width - formWidth - 8
	bodyHeight := m.height - 4
	if bodyHeight < 5 {
		bodyHeight = 5
	}

	form := paneStyle.Width(formWidth).Render(m.formView(formWidth, bodyHeight))
	preview := paneStyle.Width(previewWidth).Render(
		renderPreview(render.Build(m.session.Snapshot()), previewWidth))

	status := helpLine
	if m.unsaved {
		status = "● unsaved • " + status
	}
	bar := statusStyle.Render(status)
	if m.status != "" {
		st := statusStyle
		if m.failed {
			st = errorStyle
		}
		bar = st.Render(m.status) + "\n" + bar
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, form, preview) + "\n" + bar
}

// formView renders the rows around the cursor that fit in height lines.
func (m Model) formView(width, height int) string {
	start := 0
	if m.cursor >= height/2 {
		start = m.cursor - height/2
	}

	var lines []string
	prevSection := ""
	if start > 0 {
		prevSection = m.rows[start-1].section
	}
	for i := start; i < len(m.rows) && len(lines) < height; i++ {
		r := m.rows[i]
		if r.section != prevSection {
			lines = append(lines, sectionLabelStyle.Render(r.section))
			prevSection = r.section
		}

		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("▸ ")
		}
		value := r.value
		if i == m.cursor && m.editing {
			value = m.input.View()
		}
		line := fmt.Sprintf("%s%s %s", prefix, labelStyle.Render(r.label+":"), value)
		if r.activate != nil {
			line = prefix + labelStyle.Render(r.label)
		}
		lines = append(lines, lipgloss.NewStyle().MaxWidth(width).Render(line))
	}
	return strings.Join(lines, "\n")
}
