package player

import (
	"fmt"
	"os/exec"
	"syscall"
)

// Process is a handle on a running playback process.
type Process interface {
	Stop()
}

// Launcher starts audio playback of a URL at an offset. Split out so
// tests can fake process control.
type Launcher interface {
	Launch(url string, offset, volume float64) (Process, error)
}

// ffplayLauncher plays through an external ffplay process. ffplay
// streams straight from the URL, decodes the WAV and exits at the end
// of the clip.
type ffplayLauncher struct{}

func (ffplayLauncher) Launch(url string, offset, volume float64) (Process, error) {
	cmd := exec.Command("ffplay",
		"-nodisp",
		"-autoexit",
		"-loglevel", "quiet",
		"-volume", fmt.Sprintf("%d", int(volume*100)),
		"-ss", fmt.Sprintf("%.2f", offset),
		url,
	)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start audio playback: %w", err)
	}

	// reap the process when it exits on its own
	go cmd.Wait() //nolint:errcheck

	return &ffplayProcess{cmd: cmd}, nil
}

type ffplayProcess struct {
	cmd *exec.Cmd
}

func (p *ffplayProcess) Stop() {
	if p.cmd.Process == nil {
		return
	}
	_ = p.cmd.Process.Signal(syscall.SIGTERM)
}
