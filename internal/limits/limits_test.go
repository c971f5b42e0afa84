package limits

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/voiceai/client/internal/api"
	"codeberg.org/voiceai/client/internal/session"
)

type fakeFetcher struct {
	limits *api.UserLimits
	err    error
	calls  int
}

func (f *fakeFetcher) FetchLimits(ctx context.Context) (*api.UserLimits, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.limits, nil
}

func fixedDay(day string) func() time.Time {
	t, _ := time.Parse("2006-01-02", day)
	return func() time.Time { return t }
}

func TestResolve_GuestFreshDay(t *testing.T) {
	store := &MemoryCounterStore{}
	r := NewResolver(&fakeFetcher{}, store)
	r.now = fixedDay("2026-08-31")

	l := r.Resolve(context.Background(), nil)

	assert.Equal(t, CharLimitGuest, l.CharLimit)
	require.NotNil(t, l.DailyLimit)
	assert.Equal(t, 1, *l.DailyLimit)
	assert.Equal(t, 0, l.DailyUsed)
	assert.Equal(t, 1, *l.DailyRemaining)
	assert.False(t, l.Exhausted())
}

func TestResolve_GuestCounterResetsOnNewDay(t *testing.T) {
	store := &MemoryCounterStore{counter: Counter{Date: "2026-08-30", Count: 1}}
	r := NewResolver(&fakeFetcher{}, store)
	r.now = fixedDay("2026-08-31")

	l := r.Resolve(context.Background(), nil)

	assert.Equal(t, 0, l.DailyUsed)
	assert.Equal(t, 1, *l.DailyRemaining)

	// the reset is persisted
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", saved.Date)
	assert.Equal(t, 0, saved.Count)
}

func TestResolve_GuestRemainingNeverNegative(t *testing.T) {
	// two tabs racing can over-count; remaining still floors at zero
	store := &MemoryCounterStore{counter: Counter{Date: "2026-08-31", Count: 3}}
	r := NewResolver(&fakeFetcher{}, store)
	r.now = fixedDay("2026-08-31")

	l := r.Resolve(context.Background(), nil)

	assert.Equal(t, 3, l.DailyUsed)
	assert.Equal(t, 0, *l.DailyRemaining)
	assert.True(t, l.Exhausted())
}

func TestResolve_GuestInvariant(t *testing.T) {
	for used := 0; used <= 1; used++ {
		store := &MemoryCounterStore{counter: Counter{Date: "2026-08-31", Count: used}}
		r := NewResolver(&fakeFetcher{}, store)
		r.now = fixedDay("2026-08-31")

		l := r.Resolve(context.Background(), nil)

		assert.Equal(t, *l.DailyLimit, l.DailyUsed+*l.DailyRemaining)
	}
}

func TestRecordGuestUse_IncrementsAndPersists(t *testing.T) {
	store := &MemoryCounterStore{}
	r := NewResolver(&fakeFetcher{}, store)
	r.now = fixedDay("2026-08-31")

	r.Resolve(context.Background(), nil)
	require.NoError(t, r.RecordGuestUse())

	l := r.Resolve(context.Background(), nil)
	assert.Equal(t, 1, l.DailyUsed)
	assert.Equal(t, 0, *l.DailyRemaining)
}

func TestResolve_AuthenticatedUsesServerQuota(t *testing.T) {
	ten := 10
	seven := 7
	fetcher := &fakeFetcher{limits: &api.UserLimits{
		CharLimit: 2000, DailyLimit: &ten, DailyUsed: 3, DailyRemaining: &seven,
	}}
	r := NewResolver(fetcher, &MemoryCounterStore{})

	l := r.Resolve(context.Background(), &session.Identity{ID: "u1"})

	assert.Equal(t, 2000, l.CharLimit)
	assert.Equal(t, 3, l.DailyUsed)
	assert.Equal(t, 7, *l.DailyRemaining)
	assert.Equal(t, 1, fetcher.calls)
}

func TestResolve_FetchFailureKeepsPreviousLimits(t *testing.T) {
	ten := 10
	two := 2
	fetcher := &fakeFetcher{limits: &api.UserLimits{
		CharLimit: 2000, DailyLimit: &ten, DailyUsed: 8, DailyRemaining: &two,
	}}
	r := NewResolver(fetcher, &MemoryCounterStore{})
	id := &session.Identity{ID: "u1"}

	first := r.Resolve(context.Background(), id)
	require.Equal(t, 8, first.DailyUsed)

	fetcher.err = errors.New("network down")
	second := r.Resolve(context.Background(), id)

	assert.Equal(t, first, second)
}

func TestResolve_FetchFailureWithoutHistoryFallsBackToTier(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("network down")}
	r := NewResolver(fetcher, &MemoryCounterStore{})

	l := r.Resolve(context.Background(), &session.Identity{ID: "u1", IsPremium: true})

	assert.Equal(t, CharLimitPremium, l.CharLimit)
	assert.True(t, l.Unlimited())
}

func TestResolve_PremiumUnlimitedSentinel(t *testing.T) {
	fetcher := &fakeFetcher{limits: &api.UserLimits{
		CharLimit: 100000, DailyUsed: 42, IsPremium: true,
	}}
	r := NewResolver(fetcher, &MemoryCounterStore{})

	l := r.Resolve(context.Background(), &session.Identity{ID: "u1", IsPremium: true})

	assert.True(t, l.Unlimited())
	assert.False(t, l.Exhausted())
	assert.Empty(t, CheckQuota(&session.Identity{ID: "u1"}, l))
}

func TestCheckText_EmptyAndOversized(t *testing.T) {
	guest := Limits{CharLimit: CharLimitGuest}

	assert.Equal(t, "Enter some text to synthesize", CheckText("   ", nil, guest))

	long := make([]rune, CharLimitGuest+1)
	for i := range long {
		long[i] = 'a'
	}

	msg := CheckText(string(long), nil, guest)
	assert.Contains(t, msg, "300")
	assert.Contains(t, msg, "Log in")

	free := Limits{CharLimit: CharLimitFree}
	msg = CheckText(string(long), &session.Identity{ID: "u1"}, free)
	assert.Empty(t, msg, "301 chars fits the free tier")
}

func TestCheckText_FreeTierUpsell(t *testing.T) {
	free := Limits{CharLimit: CharLimitFree}
	long := make([]byte, CharLimitFree+1)
	for i := range long {
		long[i] = 'a'
	}

	msg := CheckText(string(long), &session.Identity{ID: "u1"}, free)

	assert.Contains(t, msg, "2000")
	assert.Contains(t, msg, "premium")
}

func TestCheckQuota_Messages(t *testing.T) {
	zero := 0
	one := 1
	ten := 10

	guest := Limits{CharLimit: CharLimitGuest, DailyLimit: &one, DailyUsed: 1, DailyRemaining: &zero}
	assert.Contains(t, CheckQuota(nil, guest), "Log in")

	free := Limits{CharLimit: CharLimitFree, DailyLimit: &ten, DailyUsed: 10, DailyRemaining: &zero}
	msg := CheckQuota(&session.Identity{ID: "u1"}, free)
	assert.Contains(t, msg, "10 generations per day")
	assert.Contains(t, msg, "premium")
}
