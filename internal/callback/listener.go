// Package callback runs a short-lived loopback HTTP listener that
// catches the hosted checkout redirect. Stripe sends the browser back
// to localhost after a checkout session completes or is abandoned; the
// listener turns that redirect into an Event the terminal client can
// react to.
package callback

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/voiceai/client/internal/logger"
)

// Kind distinguishes the two redirect outcomes.
type Kind int

const (
	KindSuccess Kind = iota
	KindCancel
)

// Event is one captured checkout redirect. SessionID is empty when the
// success URL arrived without a session_id query parameter; the caller
// decides how to treat that.
type Event struct {
	Kind      Kind
	SessionID string
}

// Listener serves the payment return pages on a loopback address and
// delivers each redirect as an Event.
type Listener struct {
	addr   string
	server *http.Server
	events chan Event
	once   sync.Once
}

func New(addr string) *Listener {
	l := &Listener{
		addr:   addr,
		events: make(chan Event, 4),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/payment/success", l.handleSuccess)
	router.GET("/payment/cancel", l.handleCancel)

	l.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	return l
}

// Events delivers one Event per redirect the listener receives.
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Start begins serving in a background goroutine. The listener stays up
// until Shutdown so a user who cancels checkout can retry from the same
// session. Repeated calls are no-ops.
func (l *Listener) Start() {
	l.once.Do(l.start)
}

func (l *Listener) start() {
	go func() {
		logger.Info("payment callback listener started", "addr", l.addr)
		if err := l.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ErrorErr(err, "payment callback listener failed", "addr", l.addr)
		}
	}()
}

// Shutdown stops the listener gracefully.
func (l *Listener) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := l.server.Shutdown(ctx); err != nil {
		logger.ErrorErr(err, "payment callback listener shutdown")
	}
}

func (l *Listener) handleSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	l.deliver(Event{Kind: KindSuccess, SessionID: sessionID})
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(successPage))
}

func (l *Listener) handleCancel(c *gin.Context) {
	l.deliver(Event{Kind: KindCancel})
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cancelPage))
}

// deliver never blocks the HTTP handler; if nobody is draining the
// channel the event is dropped and the user can verify manually.
func (l *Listener) deliver(ev Event) {
	select {
	case l.events <- ev:
	default:
		logger.Warn("payment callback dropped, no consumer", "kind", int(ev.Kind))
	}
}

const successPage = `<!DOCTYPE html>
<html>
<head><title>VoiceAI</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 4rem;">
<h1>Payment received</h1>
<p>You can close this tab and return to the terminal.</p>
</body>
</html>`

const cancelPage = `<!DOCTYPE html>
<html>
<head><title>VoiceAI</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 4rem;">
<h1>Payment cancelled</h1>
<p>No charge was made. You can close this tab and return to the terminal.</p>
</body>
</html>`
