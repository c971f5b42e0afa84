// Package player is the audio playback surface: one clip at a time,
// play/pause/seek/volume/skip, and a download action for signed-in
// users. Playback itself runs in an external ffplay process; the model
// tracks position with ticks while a process is alive.
package player

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codeberg.org/voiceai/client/internal/logger"
)

const (
	tickInterval = 250 * time.Millisecond
	skipStep     = 10.0
	volumeStep   = 0.05
)

type Model struct {
	url      string
	duration float64
	position float64
	volume   float64
	playing  bool
	loading  bool
	errMsg   string

	// download is only offered when an identity is present
	canDownload  bool
	dataDir      string
	downloadNote string

	launcher Launcher
	probe    func(url string) error
	proc     Process

	bar   progress.Model
	width int
}

// sent when the clip's source has been checked
type loadedMsg struct {
	url string
	err error
}

// advances the playhead while a process is playing
type tickMsg struct {
	url string
}

// sent when a download attempt finishes
type downloadedMsg struct {
	path string
	err  error
}

func New(dataDir string) Model {
	return Model{
		volume:   1.0,
		dataDir:  dataDir,
		launcher: ffplayLauncher{},
		probe:    probeURL,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:    60,
	}
}

// a stalled host must not leave the player loading forever
var probeClient = &http.Client{Timeout: 10 * time.Second}

func probeURL(url string) error {
	resp, err := probeClient.Head(url)
	if err != nil {
		return err
	}
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("audio source answered %d", resp.StatusCode)
	}
	return nil
}

// SetSource points the player at a new clip and forces a reload. The
// duration comes from the generation metadata, the way a media element
// learns it from the stream.
func (m Model) SetSource(url string, duration float64, canDownload bool) (Model, tea.Cmd) {
	m.stop()
	m.url = url
	m.duration = duration
	m.position = 0
	m.playing = false
	m.loading = true
	m.errMsg = ""
	m.downloadNote = ""
	m.canDownload = canDownload

	probe := m.probe
	return m, func() tea.Msg {
		return loadedMsg{url: url, err: probe(url)}
	}
}

// reports whether a clip is loaded and playable
func (m Model) Ready() bool {
	return m.url != "" && !m.loading && m.errMsg == ""
}

func (m Model) Playing() bool { return m.playing }

func (m Model) Position() float64 { return m.position }

func (m Model) Volume() float64 { return m.volume }

func (m Model) Err() string { return m.errMsg }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.url != m.url {
			return m, nil // stale probe for a replaced source
		}
		m.loading = false
		if msg.err != nil {
			logger.ErrorErr(msg.err, "audio source unavailable", "url", m.url)
			m.errMsg = "Cannot play the audio file"
		}
		return m, nil

	case tickMsg:
		if msg.url != m.url || !m.playing {
			return m, nil
		}
		m.position += tickInterval.Seconds()
		if m.duration > 0 && m.position >= m.duration {
			// clip finished: back to the start, like a media element's
			// ended event
			m.stop()
			m.position = 0
			return m, nil
		}
		return m, m.tick()

	case downloadedMsg:
		if msg.err != nil {
			logger.ErrorErr(msg.err, "download failed")
			m.downloadNote = "Download failed"
		} else {
			m.downloadNote = "Saved to " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.Ready() {
		return m, nil
	}

	switch msg.String() {
	case " ":
		return m.toggle()

	case "left":
		m = m.seekTo(m.position - skipStep)
		return m.restartIfPlaying()

	case "right":
		m = m.seekTo(m.position + skipStep)
		return m.restartIfPlaying()

	case "home":
		m = m.seekTo(0)
		return m.restartIfPlaying()

	case "+", "=":
		m = m.setVolume(m.volume + volumeStep)
		return m.restartIfPlaying()

	case "-":
		m = m.setVolume(m.volume - volumeStep)
		return m.restartIfPlaying()

	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		// digit keys jump to tenths of the clip
		return m.Seek(float64(msg.String()[0]-'0') / 10)

	case "d":
		if !m.canDownload {
			return m, nil
		}
		dataDir, url := m.dataDir, m.url
		m.downloadNote = "Downloading..."
		return m, func() tea.Msg {
			path, err := downloadClip(dataDir, url)
			return downloadedMsg{path: path, err: err}
		}
	}

	return m, nil
}

// Seek moves the playhead to a fraction of the clip, as from a pointer
// press at that fraction of the progress bar's width.
func (m Model) Seek(frac float64) (Model, tea.Cmd) {
	if !m.Ready() {
		return m, nil
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	m = m.seekTo(frac * m.duration)
	return m.restartIfPlaying()
}

func (m Model) toggle() (Model, tea.Cmd) {
	if m.playing {
		m.stop()
		return m, nil
	}
	return m.start()
}

func (m Model) start() (Model, tea.Cmd) {
	proc, err := m.launcher.Launch(m.url, m.position, m.volume)
	if err != nil {
		logger.ErrorErr(err, "playback failed", "url", m.url)
		m.errMsg = "Cannot play the audio file"
		return m, nil
	}
	m.proc = proc
	m.playing = true
	return m, m.tick()
}

func (m *Model) stop() {
	if m.proc != nil {
		m.proc.Stop()
		m.proc = nil
	}
	m.playing = false
}

// restartIfPlaying applies a changed position or volume to a live
// process by relaunching it; a paused player just keeps the new state
func (m Model) restartIfPlaying() (Model, tea.Cmd) {
	if !m.playing {
		return m, nil
	}
	m.stop()
	return m.start()
}

func (m Model) seekTo(pos float64) Model {
	if pos < 0 {
		pos = 0
	}
	if m.duration > 0 && pos > m.duration {
		pos = m.duration
	}
	m.position = pos
	return m
}

func (m Model) setVolume(v float64) Model {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.volume = v
	return m
}

func (m Model) tick() tea.Cmd {
	url := m.url
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{url: url}
	})
}

func (m Model) SetWidth(w int) Model {
	m.width = w
	m.bar.Width = w
	return m
}

var (
	timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	noteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

func (m Model) View() string {
	if m.url == "" {
		return ""
	}

	if m.loading {
		return noteStyle.Render("Loading audio...")
	}

	if m.errMsg != "" {
		return errStyle.Render(m.errMsg)
	}

	var b strings.Builder

	state := "paused"
	if m.playing {
		state = "playing"
	}

	frac := 0.0
	if m.duration > 0 {
		frac = m.position / m.duration
	}

	b.WriteString(m.bar.ViewAs(frac))
	b.WriteString("\n")
	b.WriteString(timeStyle.Render(fmt.Sprintf("%s / %s  [%s]  vol %d%%",
		FormatTime(m.position), FormatTime(m.duration), state, int(m.volume*100))))
	b.WriteString("\n")

	help := "space play/pause · ←/→ ±10s · 0-9 jump · +/- volume"
	if m.canDownload {
		help += " · d download"
	}
	b.WriteString(noteStyle.Render(help))

	if m.downloadNote != "" {
		b.WriteString("\n")
		b.WriteString(noteStyle.Render(m.downloadNote))
	}

	return b.String()
}

// FormatTime renders seconds as m:ss.
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
