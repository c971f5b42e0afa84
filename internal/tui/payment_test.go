package tui

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentSuccess_MissingSessionIDNeverVerifies(t *testing.T) {
	srv, hits := countingServer(t)
	d := newTestDeps(t, srv.URL, srv.URL)

	m := NewPaymentSuccess(d, "")

	assert.Nil(t, m.Init(), "no command means no verify call")
	assert.Equal(t, phaseInvalid, m.phase)
	assert.Contains(t, m.View(), "Invalid payment session")
	assert.Equal(t, int64(0), hits.Load())
}

func TestPaymentSuccess_VerifiesThenRefreshes(t *testing.T) {
	var verified atomic.Int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/stripe/verify-payment/cs_123":
			verified.Add(1)
			w.Write([]byte(`{"success":true}`))
		case "/api/auth/me":
			w.Write([]byte(`{"success":true,"user":{"id":"u1","name":"Ada","email":"ada@example.com","is_premium":true}}`))
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
		}
	}))
	defer backend.Close()

	d := newTestDeps(t, backend.URL, backend.URL)
	m := NewPaymentSuccess(d, "cs_123")
	require.Equal(t, phaseVerifying, m.phase)

	// run the verify command the same way the runtime would
	msg := d.verifyPaymentCmd("cs_123")().(verifyMsg)
	require.NoError(t, msg.err)

	m, cmd := m.Update(msg)
	assert.Equal(t, phaseRefreshing, m.phase)
	require.NotNil(t, cmd, "a delayed refresh is scheduled")
	assert.Equal(t, int64(1), verified.Load())

	m, cmd = m.Update(refreshDelayMsg{})
	require.NotNil(t, cmd)
	refreshed := cmd().(refreshDoneMsg)
	require.NoError(t, refreshed.err)

	m, _ = m.Update(refreshed)
	assert.Equal(t, phaseDone, m.phase)
	assert.Contains(t, m.View(), "Premium")

	id := d.session.Identity()
	require.NotNil(t, id)
	assert.True(t, id.IsPremium)
}

func TestPaymentSuccess_VerificationFailureIsGeneric(t *testing.T) {
	d := newTestDeps(t, "http://127.0.0.1:1", "http://127.0.0.1:1")
	m := NewPaymentSuccess(d, "cs_123")

	msg := d.verifyPaymentCmd("cs_123")().(verifyMsg)
	require.Error(t, msg.err)

	m, _ = m.Update(msg)
	assert.Equal(t, phaseFailed, m.phase)
	assert.Contains(t, m.View(), "Payment verification failed")
}

func TestPaymentCancel_IsStatic(t *testing.T) {
	srv, hits := countingServer(t)
	d := newTestDeps(t, srv.URL, srv.URL)
	hits.Store(0)

	m := NewPaymentCancel(d)
	view := m.View()

	assert.Contains(t, view, "No charge was made")
	assert.Equal(t, int64(0), hits.Load())
}
