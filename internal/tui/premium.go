package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/voiceai/client/internal/logger"
)

const premiumCopy = `
# VoiceAI Premium

- **100,000 characters** per generation instead of 2,000
- **Unlimited** daily generations
- **Voice cloning**: your own voice from a short sample
- Priority synthesis queue

One subscription, cancel anytime.
`

// PremiumModel is the upgrade screen. The checkout itself happens in
// the browser; we open the hosted page and wait for the redirect to
// come back through the loopback listener.
type PremiumModel struct {
	deps     *deps
	rendered string
	waiting  bool
	busy     bool
	errMsg   string
	spin     spinner.Model
}

func NewPremium(d *deps) *PremiumModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &PremiumModel{
		deps:     d,
		rendered: renderMarkdown(premiumCopy),
		spin:     sp,
	}
}

func (m *PremiumModel) Init() tea.Cmd {
	return nil
}

func (m *PremiumModel) Update(msg tea.Msg) (*PremiumModel, tea.Cmd) {
	switch msg := msg.(type) {
	case checkoutMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = errorMessage(msg.err)
			return m, nil
		}

		if err := openBrowser(msg.url); err != nil {
			logger.ErrorErr(err, "browser open failed")
			m.errMsg = "Could not open your browser. Visit this URL to finish: " + msg.url
		}

		m.deps.listener.Start()
		m.waiting = true
		return m, m.deps.awaitPaymentCmd()

	case activateMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = errorMessage(msg.err)
			return m, nil
		}
		// pick up the premium flag, then back to work
		return m, m.deps.refreshCmd()

	case refreshDoneMsg:
		if msg.err != nil {
			m.errMsg = errorMessage(msg.err)
			return m, nil
		}
		return m, navigateTo(RouteConsole)

	case spinner.TickMsg:
		if m.busy || m.waiting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}

		switch msg.String() {
		case "u", "enter":
			if m.alreadyPremium() {
				m.errMsg = "You already have premium. Enjoy!"
				return m, nil
			}
			m.errMsg = ""
			m.busy = true
			return m, tea.Batch(m.deps.createCheckoutCmd(), m.spin.Tick)

		case "t":
			if m.deps.cfg.Environment == "production" {
				return m, nil
			}
			m.errMsg = ""
			m.busy = true
			return m, tea.Batch(m.deps.activatePremiumTestCmd(), m.spin.Tick)

		case "esc", "b":
			return m, navigateTo(RouteLanding)
		}
	}

	return m, nil
}

func (m *PremiumModel) alreadyPremium() bool {
	id := m.deps.session.Identity()
	return id != nil && id.IsPremium
}

func (m *PremiumModel) View() string {
	var b strings.Builder

	b.WriteString(m.rendered)
	b.WriteString("\n")

	if m.alreadyPremium() {
		b.WriteString(badgeStyle.Render("PREMIUM") + valueStyle.Render(" is active on your account"))
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString(m.spin.View() + infoStyle.Render(" preparing checkout..."))
		b.WriteString("\n")
	}

	if m.waiting {
		b.WriteString(m.spin.View() + infoStyle.Render(" waiting for you to finish checkout in the browser..."))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	help := "u upgrade · esc back"
	if m.deps.cfg.Environment != "production" {
		help = "u upgrade · t test activation · esc back"
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}
