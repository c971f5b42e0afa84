package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"codeberg.org/voiceai/client/internal/api"
	"codeberg.org/voiceai/client/internal/callback"
	"codeberg.org/voiceai/client/internal/config"
	"codeberg.org/voiceai/client/internal/limits"
	"codeberg.org/voiceai/client/internal/logger"
	"codeberg.org/voiceai/client/internal/session"
	"codeberg.org/voiceai/client/internal/tui"
	"codeberg.org/voiceai/client/internal/voices"
)

func main() {
	if !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "voiceai is an interactive terminal app; run it from a terminal")
		os.Exit(1)
	}

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	backend := api.NewBackend(cfg.APIURL)
	synth := api.NewSynth(cfg.TTSURL)

	store := session.NewStore(backend)
	resolver := limits.NewResolver(backend, limits.NewFileCounterStore(cfg.DataDir))
	catalog := voices.NewCatalog(synth, backend)
	listener := callback.New(cfg.CallbackAddr)
	defer listener.Shutdown()

	logger.Info("starting voiceai", "api", cfg.APIURL, "tts", cfg.TTSURL, "env", cfg.Environment)

	app := tui.NewApp(cfg, backend, synth, store, resolver, catalog, listener)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running voiceai: %v\n", err)
		os.Exit(1)
	}
}
