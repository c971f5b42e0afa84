package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codeberg.org/voiceai/client/internal/api"
)

const maxSampleBytes = 10 << 20

var audioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".ogg":  true,
	".flac": true,
	".webm": true,
}

// CloningModel manages the user's cloned voices: upload a sample,
// watch its status, delete it. Premium only.
type CloningModel struct {
	deps *deps

	inputs   []textinput.Model // name, description, sample path
	focus    int
	voiceSel int
	inList   bool

	voices    []api.ClonedVoice
	confirmID string
	loading   bool
	busy      bool
	errMsg    string
	notice    string
	spin      spinner.Model
}

func NewCloning(d *deps) *CloningModel {
	name := textinput.New()
	name.Placeholder = "voice name"
	name.Prompt = "  name         "
	name.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	name.Focus()

	desc := textinput.New()
	desc.Placeholder = "description (optional)"
	desc.Prompt = "  description  "
	desc.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)

	path := textinput.New()
	path.Placeholder = "/path/to/sample.wav"
	path.Prompt = "  sample file  "
	path.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &CloningModel{
		deps:    d,
		inputs:  []textinput.Model{name, desc, path},
		loading: true,
		spin:    sp,
	}
}

func (m *CloningModel) Init() tea.Cmd {
	if !m.premium() {
		return nil
	}
	return tea.Batch(textinput.Blink, m.deps.fetchClonedVoicesCmd())
}

func (m *CloningModel) premium() bool {
	id := m.deps.session.Identity()
	return id != nil && id.IsPremium
}

func (m *CloningModel) Update(msg tea.Msg) (*CloningModel, tea.Cmd) {
	switch msg := msg.(type) {
	case clonedVoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = errorMessage(msg.err)
			return m, nil
		}
		m.voices = msg.voices
		if m.voiceSel >= len(m.voices) {
			m.voiceSel = 0
		}
		return m, nil

	case uploadDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = errorMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.notice = "Sample uploaded. Your voice will be ready shortly."
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		return m, m.deps.fetchClonedVoicesCmd()

	case deleteDoneMsg:
		m.busy = false
		m.confirmID = ""
		if msg.err != nil {
			m.errMsg = errorMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.notice = "Voice deleted"
		return m, m.deps.fetchClonedVoicesCmd()

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *CloningModel) handleKey(msg tea.KeyMsg) (*CloningModel, tea.Cmd) {
	if !m.premium() {
		switch msg.String() {
		case "u":
			return m, navigateTo(RoutePremium)
		case "esc", "b":
			return m, navigateTo(RouteLanding)
		}
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	// a pending delete confirmation swallows everything but y/n
	if m.confirmID != "" {
		switch msg.String() {
		case "y":
			m.busy = true
			return m, tea.Batch(m.deps.deleteVoiceCmd(m.confirmID), m.spin.Tick)
		case "n", "esc":
			m.confirmID = ""
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, navigateTo(RouteLanding)

	case "tab":
		m.cycleFocus(1)
		return m, nil

	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil

	case "enter":
		if m.inList {
			return m, nil
		}
		if m.focus < len(m.inputs)-1 {
			m.cycleFocus(1)
			return m, nil
		}
		return m.upload()

	case "up", "k":
		if m.inList && m.voiceSel > 0 {
			m.voiceSel--
			return m, nil
		}

	case "down", "j":
		if m.inList && m.voiceSel < len(m.voices)-1 {
			m.voiceSel++
			return m, nil
		}

	case "x", "delete":
		if m.inList && m.voiceSel < len(m.voices) {
			m.confirmID = m.voices[m.voiceSel].ID
			return m, nil
		}
	}

	if m.inList {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// cycleFocus walks name, description, path, then the voice list
func (m *CloningModel) cycleFocus(dir int) {
	zones := len(m.inputs)
	if len(m.voices) > 0 {
		zones++
	}

	cur := m.focus
	if m.inList {
		cur = len(m.inputs)
	}
	cur = (cur + dir + zones) % zones

	if cur == len(m.inputs) {
		m.inList = true
		m.inputs[m.focus].Blur()
		return
	}

	m.inList = false
	m.focus = cur
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *CloningModel) upload() (*CloningModel, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[0].Value())
	desc := strings.TrimSpace(m.inputs[1].Value())
	path := strings.TrimSpace(m.inputs[2].Value())

	if err := validateSample(name, path); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.errMsg = ""
	m.notice = ""
	m.busy = true
	return m, tea.Batch(m.deps.uploadVoiceCmd(name, desc, path), m.spin.Tick)
}

// validateSample enforces the upload rules before any bytes move:
// a name, an audio extension, and at most 10 MB.
func validateSample(name, path string) error {
	if name == "" {
		return fmt.Errorf("Please name your voice")
	}
	if path == "" {
		return fmt.Errorf("Please provide an audio sample file")
	}

	if !audioExtensions[strings.ToLower(filepath.Ext(path))] {
		return fmt.Errorf("The sample must be an audio file (wav, mp3, m4a, ogg, flac, webm)")
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("Cannot read the sample file: %s", path)
	}
	if info.Size() > maxSampleBytes {
		return fmt.Errorf("The sample must be 10 MB or smaller")
	}

	return nil
}

func (m *CloningModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Voice cloning"))
	b.WriteString("\n")

	if id := m.deps.session.Identity(); id == nil {
		b.WriteString(valueStyle.Render("Voice cloning needs an account."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc back"))
		return b.String()
	}

	if !m.premium() {
		b.WriteString(valueStyle.Render("Voice cloning is a premium feature. Clone your own voice from a short sample and use it for any generation."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("u upgrade to premium · esc back"))
		return b.String()
	}

	b.WriteString(subtitleStyle.Render("Upload a clean 10-30 second sample of a single speaker"))
	b.WriteString("\n\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.listView())

	if m.busy {
		b.WriteString(m.spin.View() + infoStyle.Render(" working..."))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(successStyle.Render(m.notice))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	if m.confirmID != "" {
		b.WriteString(warnStyle.Render("Delete this voice? It cannot be recovered. (y/n)"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab next field · enter upload · x delete selected · esc back"))

	return b.String()
}

func (m *CloningModel) listView() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("your voices:"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(infoStyle.Render("  loading..."))
		b.WriteString("\n")

	case len(m.voices) == 0:
		b.WriteString(infoStyle.Render("  none yet"))
		b.WriteString("\n")

	default:
		for i, v := range m.voices {
			badge := warnStyle.Render("pending")
			if v.Status == "ready" {
				badge = successStyle.Render("ready")
			}
			line := fmt.Sprintf("%s [%s]", v.Name, badge)
			if v.Description != "" {
				line += " " + infoStyle.Render(v.Description)
			}
			if m.inList && i == m.voiceSel {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString(itemStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	return b.String()
}
