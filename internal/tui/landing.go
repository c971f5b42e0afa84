package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/voiceai/client/internal/logger"
)

const landingCopy = `
**Natural text to speech, right from your terminal.**

- Turn any text into lifelike audio with a dozen built-in voices
- Premium: clone your own voice from a short sample
- Your generations, saved and replayable from anywhere

Try it free: guests get one generation per day, no account needed.
`

// LandingModel is the marketing screen and the command hub
type LandingModel struct {
	deps     *deps
	input    string
	errMsg   string
	rendered string
	commands []landingCommand
}

type landingCommand struct {
	Name        string
	Description string
	Available   bool
}

func NewLanding(d *deps) *LandingModel {
	authed := d.session.Authenticated()

	commands := []landingCommand{
		{Name: "console", Description: "generate speech from text", Available: true},
		{Name: "login", Description: "sign in to your account", Available: !authed},
		{Name: "register", Description: "create a free account", Available: !authed},
		{Name: "history", Description: "your past generations", Available: authed},
		{Name: "voices", Description: "manage your cloned voices", Available: authed},
		{Name: "premium", Description: "upgrade for unlimited access", Available: authed},
		{Name: "logout", Description: "sign out", Available: authed},
		{Name: "quit", Description: "exit voiceai", Available: true},
	}

	return &LandingModel{
		deps:     d,
		commands: commands,
		rendered: renderMarkdown(landingCopy),
	}
}

func (m *LandingModel) Update(msg tea.Msg) (*LandingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, m.executeCommand()
		case "backspace":
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
		default:
			if len(msg.String()) == 1 {
				m.input += msg.String()
			}
		}

	case LogoutMsg:
		m.input = ""
		if msg.Err != nil {
			logger.ErrorErr(msg.Err, "logout")
		}
		// identity is dropped locally either way
		return NewLanding(m.deps), nil
	}

	return m, nil
}

func (m *LandingModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("give your words a voice"))
	b.WriteString("\n")
	b.WriteString(m.rendered)
	b.WriteString("\n")

	if id := m.deps.session.Identity(); id != nil {
		who := fmt.Sprintf("signed in as %s", id.Email)
		if id.IsPremium {
			who += " " + badgeStyle.Render("PREMIUM")
		}
		b.WriteString(infoStyle.Render(who))
		b.WriteString("\n\n")
	}

	b.WriteString(labelStyle.Render("commands:"))
	b.WriteString("\n\n")

	for _, cmd := range m.commands {
		if !cmd.Available {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s\n",
			labelStyle.Render(cmd.Name),
			infoStyle.Render("- "+cmd.Description),
		))
	}

	b.WriteString("\n")
	b.WriteString(valueStyle.Render("> ") + labelStyle.Render(m.input+"_"))
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("type a command and press enter. press ctrl+c to quit."))

	return b.String()
}

func (m *LandingModel) executeCommand() tea.Cmd {
	cmd := strings.TrimSpace(m.input)
	m.input = ""
	m.errMsg = ""

	switch cmd {
	case "quit":
		return tea.Quit

	case "console":
		return navigateTo(RouteConsole)

	case "login":
		return navigateTo(RouteLogin)

	case "register":
		return navigateTo(RouteRegister)

	case "history":
		return navigateTo(RouteHistory)

	case "voices":
		return navigateTo(RouteCloning)

	case "premium":
		return navigateTo(RoutePremium)

	case "logout":
		return m.deps.logoutCmd()

	default:
		if cmd != "" {
			m.errMsg = fmt.Sprintf("unknown command: %s", cmd)
		}
		return nil
	}
}

func navigateTo(r Route) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Route: r}
	}
}
