package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"coteach/internal/service"
)

type chatRole int

const (
	roleStudent chatRole = iota
	roleCoteacher
)

type chatLine struct {
	role chatRole
	text string
}

// ChatModel is the student view: a question box and the running transcript.
// All session state (history, session id) lives here, never in globals.
type ChatModel struct {
	svc       *service.Service
	sessionID string

	input   textinput.Model
	history []chatLine
	waiting bool
	err     error

	width  int
	height int
}

// NewChat builds the student chat model around the service.
func NewChat(svc *service.Service) *ChatModel {
	ti := textinput.New()
	ti.Placeholder = "I have a doubt about..."
	ti.Prompt = "> "
	ti.CharLimit = 500
	ti.Focus()

	return &ChatModel{
		svc:       svc,
		sessionID: uuid.NewString(),
		input:     ti,
	}
}

func (m *ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ChatModel) submitCmd(text string) tea.Cmd {
	svc := m.svc
	session := m.sessionID
	return func() tea.Msg {
		_, reply, err := svc.Submit(session, text)
		return submitDoneMsg{reply: reply, err: err}
	}
}

func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.history = append(m.history, chatLine{role: roleStudent, text: text})
			m.input.SetValue("")
			m.waiting = true
			m.err = nil
			return m, m.submitCmd(text)
		}

	case submitDoneMsg:
		m.waiting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.history = append(m.history, chatLine{role: roleCoteacher, text: msg.reply})
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ChatModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Student Learning Hub"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Ask your questions below. Your instructor uses this data to improve classes."))
	b.WriteString("\n\n")

	// Keep the transcript within the window, newest lines visible.
	visible := m.history
	if m.height > 0 {
		maxLines := m.height - 7
		if maxLines > 0 && len(visible) > maxLines {
			visible = visible[len(visible)-maxLines:]
		}
	}

	for _, line := range visible {
		switch line.role {
		case roleStudent:
			b.WriteString(studentStyle.Render("you: "))
		case roleCoteacher:
			b.WriteString(coteacherStyle.Render("co-teacher: "))
		}
		b.WriteString(line.text)
		b.WriteString("\n")
	}

	if m.waiting {
		b.WriteString(dimStyle.Render("saving..."))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter send  esc quit"))

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

// RunChat starts the student chat interface.
func RunChat(svc *service.Service) error {
	p := tea.NewProgram(NewChat(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
