package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoginModel is the sign-in form
type LoginModel struct {
	deps       *deps
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	spin       spinner.Model
}

func NewLogin(d *deps) *LoginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "  email     "
	email.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "  password  "
	password.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorViolet)

	return &LoginModel{
		deps:   d,
		inputs: []textinput.Model{email, password},
		spin:   sp,
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update reports done=true once the user is signed in; the root model
// then resumes whatever route asked for an identity.
func (m *LoginModel) Update(msg tea.Msg) (*LoginModel, tea.Cmd, bool) {
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

func (m *LoginModel) submit() (*LoginModel, tea.Cmd, bool) {
	email := strings.TrimSpace(m.inputs[0].Value())
	password := m.inputs[1].Value()

	if email == "" || password == "" {
		m.errMsg = "Please fill in your email and password"
		return m, nil, false
	}

	m.errMsg = ""
	m.submitting = true
	return m, tea.Batch(m.deps.loginCmd(email, password), m.spin.Tick), false
}

func (m *LoginModel) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *LoginModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m *LoginModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sign in"))
	b.WriteString("\n\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.submitting {
		b.WriteString(m.spin.View() + infoStyle.Render(" signing in..."))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter submit · tab next field · esc back"))

	return b.String()
}
