package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/voiceai/client/internal/api"
	"codeberg.org/voiceai/client/internal/limits"
	"codeberg.org/voiceai/client/internal/player"
	"codeberg.org/voiceai/client/internal/voices"
)

const (
	speedMin  = 0.5
	speedMax  = 2.0
	speedStep = 0.1
)

// focus zones cycled with tab
const (
	focusText = iota
	focusControls
	focusPlayer
)

var exampleTexts = []string{
	"Hello world",
	"Welcome to VoiceAI. Turn any text into natural speech in seconds.",
	"The quick brown fox jumps over the lazy dog.",
	"Once upon a time, in a kingdom far away, there lived a storyteller who never spoke a word aloud.",
}

// ConsoleModel is the generation screen: text in, audio out
type ConsoleModel struct {
	deps *deps

	text      textarea.Model
	voiceList []voices.Entry
	voiceIdx  int
	advisory  string
	speed     float64
	exampleIx int

	lims      limits.Limits
	limsKnown bool

	focus       int
	dispatching bool
	errMsg      string

	// last dispatched request, kept for the history record
	lastText  string
	lastParam string

	result *GenerationResult
	player player.Model
	spin   spinner.Model
	width  int
}

func NewConsole(d *deps) *ConsoleModel {
	ta := textarea.New()
	ta.Placeholder = "Type the text you want to hear..."
	ta.SetWidth(70)
	ta.SetHeight(5)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &ConsoleModel{
		deps:   d,
		text:   ta,
		speed:  1.0,
		player: player.New(d.cfg.DataDir),
		spin:   sp,
	}
}

func (m *ConsoleModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.deps.loadVoicesCmd(), m.deps.resolveLimitsCmd())
}

func (m *ConsoleModel) Update(msg tea.Msg) (*ConsoleModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.text.SetWidth(min(70, msg.Width-4))
		m.player = m.player.SetWidth(min(60, msg.Width-10))
		return m, nil

	case SessionChangedMsg:
		// a different tier means different limits and voices
		return m, tea.Batch(m.deps.loadVoicesCmd(), m.deps.resolveLimitsCmd())

	case VoicesMsg:
		m.voiceList = msg.Entries
		m.advisory = msg.Advisory
		if m.voiceIdx >= len(m.voiceList) {
			m.voiceIdx = 0
		}
		return m, nil

	case LimitsMsg:
		m.lims = msg.Limits
		m.limsKnown = true
		return m, nil

	case generationDoneMsg:
		return m.finishGeneration(msg)

	case historySavedMsg:
		if msg.err == nil {
			return m, func() tea.Msg { return HistoryUpdatedMsg{} }
		}
		return m, nil

	case spinner.TickMsg:
		if m.dispatching {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// player-internal messages (ticks, probe results, downloads)
	var cmd tea.Cmd
	m.player, cmd = m.player.Update(msg)
	return m, cmd
}

func (m *ConsoleModel) handleKey(msg tea.KeyMsg) (*ConsoleModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.cycleFocus()
		return m, nil

	case "esc":
		return m, navigateTo(RouteLanding)

	case "ctrl+g":
		return m.generate()
	}

	switch m.focus {
	case focusText:
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		return m, cmd

	case focusControls:
		return m.handleControlKey(msg)

	case focusPlayer:
		var cmd tea.Cmd
		m.player, cmd = m.player.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *ConsoleModel) handleControlKey(msg tea.KeyMsg) (*ConsoleModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if len(m.voiceList) > 0 {
			m.voiceIdx = (m.voiceIdx + len(m.voiceList) - 1) % len(m.voiceList)
		}

	case "down", "j":
		if len(m.voiceList) > 0 {
			m.voiceIdx = (m.voiceIdx + 1) % len(m.voiceList)
		}

	case "left":
		m.speed = clampSpeed(m.speed - speedStep)

	case "right":
		m.speed = clampSpeed(m.speed + speedStep)

	case "e":
		m.text.SetValue(exampleTexts[m.exampleIx])
		m.exampleIx = (m.exampleIx + 1) % len(exampleTexts)

	case "enter":
		return m.generate()
	}

	return m, nil
}

func (m *ConsoleModel) cycleFocus() {
	zones := 2
	if m.result != nil {
		zones = 3
	}
	m.focus = (m.focus + 1) % zones

	if m.focus == focusText {
		m.text.Focus()
	} else {
		m.text.Blur()
	}
}

// generate validates locally first; nothing leaves the machine unless
// the text and the quota both pass
func (m *ConsoleModel) generate() (*ConsoleModel, tea.Cmd) {
	if m.dispatching {
		return m, nil
	}

	// the zero value would reject everything with a 0 character limit
	if !m.limsKnown {
		m.errMsg = "Still loading your limits, try again in a moment"
		return m, m.deps.resolveLimitsCmd()
	}

	id := m.deps.session.Identity()

	if msg := limits.CheckText(m.text.Value(), id, m.lims); msg != "" {
		m.errMsg = msg
		return m, nil
	}
	if msg := limits.CheckQuota(id, m.lims); msg != "" {
		m.errMsg = msg
		return m, nil
	}
	if len(m.voiceList) == 0 {
		m.errMsg = "No voices available yet"
		return m, nil
	}

	entry := m.voiceList[m.voiceIdx]
	m.errMsg = ""
	m.dispatching = true
	m.lastText = m.text.Value()
	m.lastParam = entry.Ref.Param()

	return m, tea.Batch(m.deps.generateCmd(entry, m.lastText, m.speed), m.spin.Tick)
}

func (m *ConsoleModel) finishGeneration(msg generationDoneMsg) (*ConsoleModel, tea.Cmd) {
	m.dispatching = false

	if msg.err != nil {
		m.errMsg = errorMessage(msg.err)
		return m, nil
	}

	m.result = msg.result

	authed := m.deps.session.Authenticated()
	var pcmd tea.Cmd
	m.player, pcmd = m.player.SetSource(msg.result.AudioURL, msg.result.Duration, authed)
	cmds := []tea.Cmd{pcmd}

	if authed {
		cmds = append(cmds,
			m.deps.saveHistoryCmd(api.HistoryRecord{
				Text:           m.lastText,
				Voice:          m.lastParam,
				Speed:          msg.result.Speed,
				AudioURL:       msg.result.AudioURL,
				AudioDuration:  msg.result.Duration,
				GenerationTime: msg.result.GenTime,
			}),
			m.deps.resolveLimitsCmd(),
		)
	} else {
		cmds = append(cmds, m.deps.recordGuestUseCmd())
	}

	return m, tea.Batch(cmds...)
}

func clampSpeed(s float64) float64 {
	if s < speedMin {
		return speedMin
	}
	if s > speedMax {
		return speedMax
	}
	return s
}

func (m *ConsoleModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Generation console"))
	b.WriteString("\n")
	b.WriteString(m.limitsLine())
	b.WriteString("\n\n")

	if m.advisory != "" {
		b.WriteString(warnStyle.Render(m.advisory))
		b.WriteString("\n\n")
	}

	b.WriteString(m.text.View())
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("%d characters", len([]rune(m.text.Value())))))
	b.WriteString("\n\n")

	b.WriteString(m.controlsView())
	b.WriteString("\n")

	if m.dispatching {
		b.WriteString(m.spin.View() + infoStyle.Render(" generating..."))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	if m.result != nil {
		b.WriteString("\n")
		b.WriteString(m.resultView())
		b.WriteString("\n")
		b.WriteString(m.player.View())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.helpLine()))

	return b.String()
}

func (m *ConsoleModel) limitsLine() string {
	if !m.limsKnown {
		return infoStyle.Render("loading your limits...")
	}

	tier := "GUEST"
	if id := m.deps.session.Identity(); id != nil {
		tier = "FREE"
		if id.IsPremium {
			tier = "PREMIUM"
		}
	}

	if m.lims.Unlimited() {
		return badgeStyle.Render(tier) + valueStyle.Render(
			fmt.Sprintf(" · up to %d characters · unlimited generations", m.lims.CharLimit))
	}

	remaining := 0
	if m.lims.DailyRemaining != nil {
		remaining = *m.lims.DailyRemaining
	}
	return badgeStyle.Render(tier) + valueStyle.Render(
		fmt.Sprintf(" · up to %d characters · %d of %d generations left today",
			m.lims.CharLimit, remaining, *m.lims.DailyLimit))
}

func (m *ConsoleModel) controlsView() string {
	voice := "loading voices..."
	if len(m.voiceList) > 0 {
		entry := m.voiceList[m.voiceIdx]
		voice = entry.Name
		if entry.Recommended {
			voice += " ★"
		}
		if entry.Ref.Kind == voices.KindCloned {
			voice += " (cloned)"
		}
	}

	line := fmt.Sprintf("voice: %s   speed: %s", voice, formatSpeed(m.speed))
	if m.focus == focusControls {
		return selectedStyle.Render("> " + line)
	}
	return itemStyle.Render(line)
}

func (m *ConsoleModel) resultView() string {
	var b strings.Builder

	b.WriteString(successStyle.Render("Generated"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(fmt.Sprintf("voice %s · speed %s · duration %s",
		m.result.Voice, formatSpeed(m.result.Speed), formatClipDuration(m.result.Duration))))
	if m.result.GenTime > 0 {
		b.WriteString(valueStyle.Render(fmt.Sprintf(" · generated in %.2fs", m.result.GenTime)))
	}
	if m.result.Segments > 1 {
		b.WriteString(valueStyle.Render(fmt.Sprintf(" · %d segments", m.result.Segments)))
	}

	return borderStyle.Render(b.String())
}

func (m *ConsoleModel) helpLine() string {
	switch m.focus {
	case focusControls:
		return "↑/↓ voice · ←/→ speed · e example · enter generate · tab focus · esc back"
	case focusPlayer:
		return "player keys active · tab focus · esc back"
	default:
		return "ctrl+g generate · tab focus · esc back"
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
