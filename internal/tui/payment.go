package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const premiumWelcomeCopy = `
# Welcome to Premium!

Your account has been upgraded. You now have:

- **100,000 characters** per generation
- **Unlimited** daily generations
- **Voice cloning** unlocked

Head back to the console and give it a spin.
`

// payment verification states
type paymentPhase int

const (
	phaseInvalid paymentPhase = iota
	phaseVerifying
	phaseRefreshing
	phaseDone
	phaseFailed
)

// PaymentSuccessModel handles the return from a completed checkout.
// An empty session id means the redirect was malformed; nothing is
// verified in that case.
type PaymentSuccessModel struct {
	deps      *deps
	sessionID string
	phase     paymentPhase
	rendered  string
	spin      spinner.Model
}

func NewPaymentSuccess(d *deps, sessionID string) *PaymentSuccessModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	phase := phaseVerifying
	if sessionID == "" {
		phase = phaseInvalid
	}

	return &PaymentSuccessModel{
		deps:      d,
		sessionID: sessionID,
		phase:     phase,
		spin:      sp,
	}
}

func (m *PaymentSuccessModel) Init() tea.Cmd {
	if m.phase == phaseInvalid {
		return nil
	}
	return tea.Batch(m.deps.verifyPaymentCmd(m.sessionID), m.spin.Tick)
}

func (m *PaymentSuccessModel) Update(msg tea.Msg) (*PaymentSuccessModel, tea.Cmd) {
	switch msg := msg.(type) {
	case verifyMsg:
		if msg.err != nil {
			m.phase = phaseFailed
			return m, nil
		}
		// give the server a moment to settle the webhook before we
		// re-read the identity
		m.phase = phaseRefreshing
		return m, refreshAfterDelayCmd()

	case refreshDelayMsg:
		return m, m.deps.refreshCmd()

	case refreshDoneMsg:
		m.phase = phaseDone
		m.rendered = renderMarkdown(premiumWelcomeCopy)
		return m, nil

	case spinner.TickMsg:
		if m.phase == phaseVerifying || m.phase == phaseRefreshing {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "c":
			if m.phase == phaseDone || m.phase == phaseFailed || m.phase == phaseInvalid {
				return m, navigateTo(RouteConsole)
			}
		case "esc":
			return m, navigateTo(RouteLanding)
		}
	}

	return m, nil
}

func (m *PaymentSuccessModel) View() string {
	var b strings.Builder

	switch m.phase {
	case phaseInvalid:
		b.WriteString(titleStyle.Render("Payment"))
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Invalid payment session."))
		b.WriteString("\n")
		b.WriteString(valueStyle.Render("We could not identify your checkout session. If you completed a payment, it is safe; sign in again and your account will reflect it."))
		b.WriteString("\n")

	case phaseVerifying:
		b.WriteString(titleStyle.Render("Payment"))
		b.WriteString("\n")
		b.WriteString(m.spin.View() + infoStyle.Render(" verifying your payment..."))
		b.WriteString("\n")

	case phaseRefreshing:
		b.WriteString(titleStyle.Render("Payment"))
		b.WriteString("\n")
		b.WriteString(m.spin.View() + infoStyle.Render(" payment confirmed, updating your account..."))
		b.WriteString("\n")

	case phaseDone:
		b.WriteString(m.rendered)

	case phaseFailed:
		b.WriteString(titleStyle.Render("Payment"))
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Payment verification failed."))
		b.WriteString("\n")
		b.WriteString(valueStyle.Render("If you were charged, contact support and we will sort it out."))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter console · esc back"))

	return b.String()
}

// PaymentCancelModel is the return from an abandoned checkout. Static
// copy, no server interaction.
type PaymentCancelModel struct {
	deps *deps
}

func NewPaymentCancel(d *deps) *PaymentCancelModel {
	return &PaymentCancelModel{deps: d}
}

func (m *PaymentCancelModel) Update(msg tea.Msg) (*PaymentCancelModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "r":
			return m, navigateTo(RoutePremium)
		case "esc", "b", "enter":
			return m, navigateTo(RouteConsole)
		}
	}
	return m, nil
}

func (m *PaymentCancelModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Checkout cancelled"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render("No charge was made. Your account is unchanged."))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("r try again · enter console"))

	return b.String()
}
