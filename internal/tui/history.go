package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/voiceai/client/internal/api"
	"codeberg.org/voiceai/client/internal/player"
	"codeberg.org/voiceai/client/internal/voices"
)

const historyPreviewLen = 150

// HistoryModel lists past generations and replays them
type HistoryModel struct {
	deps *deps

	entries  []api.HistoryEntry
	selected int
	loading  bool
	errMsg   string
	player   player.Model
	playing  int // index of the entry loaded into the player, -1 none
}

func NewHistory(d *deps) *HistoryModel {
	return &HistoryModel{
		deps:    d,
		loading: true,
		player:  player.New(d.cfg.DataDir),
		playing: -1,
	}
}

func (m *HistoryModel) Init() tea.Cmd {
	return m.deps.fetchHistoryCmd()
}

func (m *HistoryModel) Update(msg tea.Msg) (*HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = errorMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.entries = msg.entries
		if m.selected >= len(m.entries) {
			m.selected = 0
		}
		return m, nil

	case HistoryUpdatedMsg:
		// a generation just landed server-side
		return m, m.deps.fetchHistoryCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.player = m.player.SetWidth(min(60, msg.Width-10))
		return m, nil
	}

	var cmd tea.Cmd
	m.player, cmd = m.player.Update(msg)
	return m, cmd
}

func (m *HistoryModel) handleKey(msg tea.KeyMsg) (*HistoryModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, navigateTo(RouteLanding)

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down", "j":
		if m.selected < len(m.entries)-1 {
			m.selected++
		}
		return m, nil

	case "enter":
		return m.loadSelected()

	case "r":
		m.loading = true
		return m, m.deps.fetchHistoryCmd()
	}

	// everything else drives the player (space, seeks, volume, d)
	var cmd tea.Cmd
	m.player, cmd = m.player.Update(msg)
	return m, cmd
}

// loadSelected points the player at the selected entry. The audio
// origin depends on which service produced the clip: cloned voices
// live on the backend, built-in voices on the synthesis service.
func (m *HistoryModel) loadSelected() (*HistoryModel, tea.Cmd) {
	if m.selected >= len(m.entries) {
		return m, nil
	}

	entry := m.entries[m.selected]
	duration := 0.0
	if entry.AudioDuration != nil {
		duration = *entry.AudioDuration
	}

	m.playing = m.selected
	var cmd tea.Cmd
	m.player, cmd = m.player.SetSource(m.audioURL(entry), duration, true)
	return m, cmd
}

func (m *HistoryModel) audioURL(entry api.HistoryEntry) string {
	if voices.ParseRef(entry.Voice).Kind == voices.KindCloned {
		return joinURL(m.deps.cfg.BaseOrigin, entry.AudioURL)
	}
	return joinURL(m.deps.cfg.TTSURL, entry.AudioURL)
}

func (m *HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Your generations"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(infoStyle.Render("loading..."))
		b.WriteString("\n")

	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")

	case len(m.entries) == 0:
		b.WriteString(infoStyle.Render("Nothing here yet. Generate something from the console!"))
		b.WriteString("\n")

	default:
		for i, entry := range m.entries {
			b.WriteString(m.entryView(i, entry))
			b.WriteString("\n")
		}
	}

	if m.playing >= 0 {
		b.WriteString("\n")
		b.WriteString(m.player.View())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ select · enter play · r refresh · esc back"))

	return b.String()
}

func (m *HistoryModel) entryView(i int, entry api.HistoryEntry) string {
	duration := "?"
	if entry.AudioDuration != nil {
		duration = formatDuration(*entry.AudioDuration)
	}

	meta := fmt.Sprintf("%s · %s · %s", entry.Voice, formatSpeed(entry.Speed), duration)
	line := fmt.Sprintf("%s\n  %s", truncate(entry.Text, historyPreviewLen), infoStyle.Render(meta))

	if i == m.selected {
		return selectedStyle.Render("> " + line)
	}
	return itemStyle.Render(line)
}
