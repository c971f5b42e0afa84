// Package limits computes the active character limit and remaining
// daily generations for the current identity: a local calendar-day
// counter for guests, the server-reported quota for signed-in users.
package limits

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"codeberg.org/voiceai/client/internal/api"
	"codeberg.org/voiceai/client/internal/logger"
	"codeberg.org/voiceai/client/internal/session"
)

// per-tier character ceilings and daily allowances; these match the
// backend's limits service and are never negotiated per request
const (
	CharLimitGuest   = 300
	CharLimitFree    = 2000
	CharLimitPremium = 100000

	DailyLimitGuest = 1
	DailyLimitFree  = 10
)

// Limits is the resolved quota for an identity. DailyLimit and
// DailyRemaining are nil for the unlimited premium tier.
type Limits struct {
	CharLimit      int
	DailyLimit     *int
	DailyUsed      int
	DailyRemaining *int
	IsPremium      bool
}

// reports whether the daily quota is the unlimited sentinel
func (l Limits) Unlimited() bool {
	return l.DailyLimit == nil
}

// reports whether a finite daily quota is used up
func (l Limits) Exhausted() bool {
	return l.DailyRemaining != nil && *l.DailyRemaining <= 0
}

// Fetcher is the slice of the backend the resolver depends on.
type Fetcher interface {
	FetchLimits(ctx context.Context) (*api.UserLimits, error)
}

// Resolver derives Limits from the identity tier, the guest counter
// and the server-reported quota. It keeps the last good server answer
// so a failed refresh degrades to stale limits instead of crashing.
type Resolver struct {
	fetcher Fetcher
	store   CounterStore
	now     func() time.Time

	mu      sync.Mutex
	current Limits
	haveSrv bool
}

func NewResolver(fetcher Fetcher, store CounterStore) *Resolver {
	return &Resolver{
		fetcher: fetcher,
		store:   store,
		now:     time.Now,
	}
}

// computes the active limits for the identity. Called on mount, after
// every successful generation and on identity change.
func (r *Resolver) Resolve(ctx context.Context, id *session.Identity) Limits {
	if id == nil {
		return r.resolveGuest()
	}
	return r.resolveUser(ctx, id)
}

func (r *Resolver) resolveGuest() Limits {
	counter, err := r.loadCounter()
	if err != nil {
		logger.ErrorErr(err, "guest counter unavailable, assuming fresh day")
	}

	limit := DailyLimitGuest
	remaining := limit - counter.Count
	if remaining < 0 {
		remaining = 0
	}

	l := Limits{
		CharLimit:      CharLimitGuest,
		DailyLimit:     intPtr(limit),
		DailyUsed:      counter.Count,
		DailyRemaining: intPtr(remaining),
	}

	r.mu.Lock()
	r.current = l
	r.haveSrv = false
	r.mu.Unlock()

	return l
}

func (r *Resolver) resolveUser(ctx context.Context, id *session.Identity) Limits {
	srv, err := r.fetcher.FetchLimits(ctx)
	if err != nil {
		// stale-but-safe: keep whatever we last knew
		logger.ErrorErr(err, "limits refresh failed, keeping previous limits")
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.haveSrv {
			return r.current
		}
		r.current = tierDefaults(id)
		return r.current
	}

	l := Limits{
		CharLimit:      srv.CharLimit,
		DailyLimit:     srv.DailyLimit,
		DailyUsed:      srv.DailyUsed,
		DailyRemaining: srv.DailyRemaining,
		IsPremium:      srv.IsPremium,
	}

	r.mu.Lock()
	r.current = l
	r.haveSrv = true
	r.mu.Unlock()

	return l
}

// increments and persists the guest counter after a successful
// anonymous generation
func (r *Resolver) RecordGuestUse() error {
	counter, err := r.loadCounter()
	if err != nil {
		return err
	}

	counter.Count++
	return r.store.Save(counter)
}

// loads the counter, resetting it the first time it is read on a date
// different from its stored date
func (r *Resolver) loadCounter() (Counter, error) {
	counter, err := r.store.Load()
	if err != nil {
		return Counter{}, err
	}

	today := r.now().Format("2006-01-02")
	if counter.Date != today {
		counter = Counter{Date: today}
		if err := r.store.Save(counter); err != nil {
			return counter, err
		}
	}

	return counter, nil
}

// CheckText validates the input length against the active limits. The
// returned message names the limit and, where an upgrade path exists,
// points at it. An empty message means the text passes.
func CheckText(text string, id *session.Identity, l Limits) string {
	if strings.TrimSpace(text) == "" {
		return "Enter some text to synthesize"
	}

	n := len([]rune(text))
	if n <= l.CharLimit {
		return ""
	}

	switch {
	case id == nil:
		return fmt.Sprintf("Text exceeds the %d character guest limit. Log in for %d characters, or go premium for %d.",
			CharLimitGuest, CharLimitFree, CharLimitPremium)
	case !l.IsPremium:
		return fmt.Sprintf("Text exceeds the %d character limit. Go premium for up to %d characters.",
			l.CharLimit, CharLimitPremium)
	default:
		return fmt.Sprintf("Text exceeds the %d character limit", l.CharLimit)
	}
}

// CheckQuota validates the remaining daily allowance. An empty message
// means a generation may be dispatched; the unlimited sentinel never
// blocks.
func CheckQuota(id *session.Identity, l Limits) string {
	if l.Unlimited() || !l.Exhausted() {
		return ""
	}

	if id == nil {
		return fmt.Sprintf("The free guest generation for today is used up. Log in for %d generations per day.", DailyLimitFree)
	}

	return fmt.Sprintf("Daily limit reached (%d generations per day). Come back tomorrow or go premium for unlimited access.", *l.DailyLimit)
}

func tierDefaults(id *session.Identity) Limits {
	if id.IsPremium {
		return Limits{CharLimit: CharLimitPremium, IsPremium: true}
	}

	limit := DailyLimitFree
	return Limits{
		CharLimit:      CharLimitFree,
		DailyLimit:     intPtr(limit),
		DailyRemaining: intPtr(limit),
	}
}

func intPtr(v int) *int {
	return &v
}
