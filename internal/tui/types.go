package tui

import (
	"time"

	"codeberg.org/voiceai/client/internal/api"
	"codeberg.org/voiceai/client/internal/callback"
	"codeberg.org/voiceai/client/internal/limits"
	"codeberg.org/voiceai/client/internal/session"
	"codeberg.org/voiceai/client/internal/voices"
)

// represents the screen currently shown
type Route int

const (
	RouteLanding Route = iota
	RouteLogin
	RouteRegister
	RouteConsole
	RouteHistory
	RouteCloning
	RoutePremium
	RoutePaymentSuccess
	RoutePaymentCancel
)

// sent to switch screens
type NavigateMsg struct {
	Route Route
}

// sent whenever the held identity changes (login, logout, refresh)
type SessionChangedMsg struct {
	Identity *session.Identity
}

// sent after a generation lands in the server-side history
type HistoryUpdatedMsg struct{}

// sent when the usage limits have been recomputed
type LimitsMsg struct {
	Limits limits.Limits
}

// sent when the voice catalog finished loading
type VoicesMsg struct {
	Entries  []voices.Entry
	Advisory string
}

// sent when a login or register attempt completes
type AuthResultMsg struct {
	Identity *session.Identity
	Err      error
}

// sent when a logout attempt completes
type LogoutMsg struct {
	Err error
}

// GenerationResult is one finished synthesis, kept for the summary
// panel and the player until the next generation replaces it.
type GenerationResult struct {
	AudioURL  string
	Duration  float64
	GenTime   float64
	Segments  int
	Voice     string
	Speed     float64
	Timestamp time.Time
}

// sent when a dispatched generation completes
type generationDoneMsg struct {
	result *GenerationResult
	err    error
}

// sent after the best-effort history save
type historySavedMsg struct {
	err error
}

// sent when the history fetch completes
type historyMsg struct {
	entries []api.HistoryEntry
	err     error
}

// sent when the cloned-voice list fetch completes
type clonedVoicesMsg struct {
	voices []api.ClonedVoice
	err    error
}

// sent when a voice sample upload completes
type uploadDoneMsg struct {
	err error
}

// sent when a cloned-voice deletion completes
type deleteDoneMsg struct {
	err error
}

// sent when checkout session creation completes
type checkoutMsg struct {
	url string
	err error
}

// sent when the loopback listener catches a checkout redirect
type paymentEventMsg struct {
	event callback.Event
}

// sent when payment verification completes
type verifyMsg struct {
	err error
}

// sent when test-mode premium activation completes
type activateMsg struct {
	err error
}

// sent when a session refresh completes
type refreshDoneMsg struct {
	identity *session.Identity
	err      error
}

// fires after the post-payment settling delay
type refreshDelayMsg struct{}
