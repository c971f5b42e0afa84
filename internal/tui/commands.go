package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/voiceai/client/internal/api"
	"codeberg.org/voiceai/client/internal/callback"
	"codeberg.org/voiceai/client/internal/config"
	"codeberg.org/voiceai/client/internal/limits"
	"codeberg.org/voiceai/client/internal/logger"
	"codeberg.org/voiceai/client/internal/session"
	"codeberg.org/voiceai/client/internal/voices"
)

// settling time between a verified payment and the identity refresh,
// so the webhook-driven premium flag has landed server-side
const refreshDelay = 1500 * time.Millisecond

// deps bundles everything the screens call out to. Screens keep a
// pointer to one shared instance owned by the App.
type deps struct {
	cfg      *config.Config
	backend  *api.Backend
	synth    *api.Synth
	session  *session.Store
	resolver *limits.Resolver
	catalog  *voices.Catalog
	listener *callback.Listener
}

func (d *deps) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		id, err := d.session.Login(context.Background(), email, password)
		return AuthResultMsg{Identity: id, Err: err}
	}
}

func (d *deps) registerCmd(name, email, password string) tea.Cmd {
	return func() tea.Msg {
		id, err := d.session.Register(context.Background(), name, email, password)
		return AuthResultMsg{Identity: id, Err: err}
	}
}

func (d *deps) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return LogoutMsg{Err: d.session.Logout(context.Background())}
	}
}

func (d *deps) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		id, err := d.session.Refresh(context.Background())
		return refreshDoneMsg{identity: id, err: err}
	}
}

func (d *deps) resolveLimitsCmd() tea.Cmd {
	return func() tea.Msg {
		return LimitsMsg{Limits: d.resolver.Resolve(context.Background(), d.session.Identity())}
	}
}

func (d *deps) loadVoicesCmd() tea.Cmd {
	premium := false
	if id := d.session.Identity(); id != nil {
		premium = id.IsPremium
	}
	return func() tea.Msg {
		entries, advisory := d.catalog.Load(context.Background(), premium)
		return VoicesMsg{Entries: entries, Advisory: advisory}
	}
}

// generateCmd dispatches one synthesis request. Cloned voices go
// through the backend's cloning endpoint with audio rooted at the
// backend origin; built-in voices go to the synthesis service.
func (d *deps) generateCmd(entry voices.Entry, text string, speed float64) tea.Cmd {
	return func() tea.Msg {
		if entry.Ref.Kind == voices.KindCloned {
			res, err := d.backend.GenerateCloned(context.Background(), entry.Ref.ID, text, "en")
			if err != nil {
				return generationDoneMsg{err: err}
			}
			return generationDoneMsg{result: &GenerationResult{
				AudioURL:  joinURL(d.cfg.BaseOrigin, res.AudioURL),
				Duration:  res.Duration,
				Voice:     res.VoiceName,
				Speed:     speed,
				Timestamp: time.Now(),
			}}
		}

		res, err := d.synth.Synthesize(context.Background(), text, entry.Ref.Param(), speed)
		if err != nil {
			return generationDoneMsg{err: err}
		}
		return generationDoneMsg{result: &GenerationResult{
			AudioURL:  joinURL(d.cfg.TTSURL, res.AudioURL),
			Duration:  res.AudioDuration,
			GenTime:   res.GenerationTime,
			Segments:  res.SegmentsCount,
			Voice:     entry.Ref.Param(),
			Speed:     speed,
			Timestamp: time.Now(),
		}}
	}
}

// saveHistoryCmd records a finished generation server-side, best
// effort. A failure is logged, never shown.
func (d *deps) saveHistoryCmd(rec api.HistoryRecord) tea.Cmd {
	return func() tea.Msg {
		err := d.backend.SaveGeneration(context.Background(), rec)
		if err != nil {
			logger.ErrorErr(err, "history save failed")
		}
		return historySavedMsg{err: err}
	}
}

// recordGuestUseCmd bumps the local counter and recomputes limits
func (d *deps) recordGuestUseCmd() tea.Cmd {
	return func() tea.Msg {
		if err := d.resolver.RecordGuestUse(); err != nil {
			logger.ErrorErr(err, "guest counter update failed")
		}
		return LimitsMsg{Limits: d.resolver.Resolve(context.Background(), nil)}
	}
}

func (d *deps) fetchHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := d.backend.FetchHistory(context.Background())
		return historyMsg{entries: entries, err: err}
	}
}

func (d *deps) fetchClonedVoicesCmd() tea.Cmd {
	return func() tea.Msg {
		list, err := d.backend.MyClonedVoices(context.Background())
		return clonedVoicesMsg{voices: list, err: err}
	}
}

func (d *deps) uploadVoiceCmd(name, description, audioPath string) tea.Cmd {
	return func() tea.Msg {
		return uploadDoneMsg{err: d.backend.UploadVoiceSample(context.Background(), name, description, audioPath)}
	}
}

func (d *deps) deleteVoiceCmd(voiceID string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{err: d.backend.DeleteClonedVoice(context.Background(), voiceID)}
	}
}

func (d *deps) createCheckoutCmd() tea.Cmd {
	return func() tea.Msg {
		url, err := d.backend.CreateCheckoutSession(context.Background())
		return checkoutMsg{url: url, err: err}
	}
}

func (d *deps) verifyPaymentCmd(sessionID string) tea.Cmd {
	return func() tea.Msg {
		return verifyMsg{err: d.backend.VerifyPayment(context.Background(), sessionID)}
	}
}

func (d *deps) activatePremiumTestCmd() tea.Cmd {
	return func() tea.Msg {
		return activateMsg{err: d.backend.ActivatePremiumTest(context.Background())}
	}
}

// awaitPaymentCmd blocks on the loopback listener until the browser
// comes back from checkout
func (d *deps) awaitPaymentCmd() tea.Cmd {
	return func() tea.Msg {
		return paymentEventMsg{event: <-d.listener.Events()}
	}
}

// awaitSessionCmd re-arms after every delivery so each identity change
// reaches the screens as a SessionChangedMsg
func awaitSessionCmd(ch <-chan *session.Identity) tea.Cmd {
	return func() tea.Msg {
		return SessionChangedMsg{Identity: <-ch}
	}
}

func refreshAfterDelayCmd() tea.Cmd {
	return tea.Tick(refreshDelay, func(time.Time) tea.Msg {
		return refreshDelayMsg{}
	})
}
