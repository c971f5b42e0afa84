package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RegisterModel is the account creation form
type RegisterModel struct {
	deps       *deps
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	spin       spinner.Model
}

func NewRegister(d *deps) *RegisterModel {
	name := textinput.New()
	name.Placeholder = "your name"
	name.Prompt = "  name      "
	name.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	name.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "  email     "
	email.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)

	password := textinput.New()
	password.Placeholder = "password (6+ characters)"
	password.Prompt = "  password  "
	password.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorViolet)

	return &RegisterModel{
		deps:   d,
		inputs: []textinput.Model{name, email, password},
		spin:   sp,
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update reports done=true once the account exists and the session
// holds its identity
func (m *RegisterModel) Update(msg tea.Msg) (*RegisterModel, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			return m, nil, false
		}

		switch msg.String() {
		case "esc":
			return m, navigateTo(RouteLanding), false

		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil, false

		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, nil, false

		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return m, nil, false
			}
			return m.submit()
		}

	case AuthResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = errorMessage(msg.Err)
			return m, nil, false
		}
		return m, nil, true

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd, false
		}
		return m, nil, false
	}

	cmd := m.updateInputs(msg)
	return m, cmd, false
}

func (m *RegisterModel) submit() (*RegisterModel, tea.Cmd, bool) {
	name := strings.TrimSpace(m.inputs[0].Value())
	email := strings.TrimSpace(m.inputs[1].Value())
	password := m.inputs[2].Value()

	switch {
	case name == "" || email == "" || password == "":
		m.errMsg = "Please fill in all the fields"
		return m, nil, false
	case len(password) < 6:
		m.errMsg = "Password must be at least 6 characters"
		return m, nil, false
	}

	m.errMsg = ""
	m.submitting = true
	return m, tea.Batch(m.deps.registerCmd(name, email, password), m.spin.Tick), false
}

func (m *RegisterModel) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *RegisterModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m *RegisterModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Create your free account"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("10 generations per day, up to 2000 characters each"))
	b.WriteString("\n\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.submitting {
		b.WriteString(m.spin.View() + infoStyle.Render(" creating your account..."))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter submit · tab next field · esc back"))

	return b.String()
}
