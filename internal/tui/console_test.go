package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/voiceai/client/internal/api"
	"codeberg.org/voiceai/client/internal/callback"
	"codeberg.org/voiceai/client/internal/config"
	"codeberg.org/voiceai/client/internal/limits"
	"codeberg.org/voiceai/client/internal/session"
	"codeberg.org/voiceai/client/internal/voices"
)

func newTestDeps(t *testing.T, backendURL, ttsURL string) *deps {
	t.Helper()

	cfg := &config.Config{
		APIURL:       backendURL + "/api",
		BaseOrigin:   backendURL,
		TTSURL:       ttsURL,
		CallbackAddr: "localhost:0",
		DataDir:      t.TempDir(),
		Environment:  "development",
	}

	backend := api.NewBackend(cfg.APIURL)
	synth := api.NewSynth(cfg.TTSURL)
	store := session.NewStore(backend)

	return &deps{
		cfg:      cfg,
		backend:  backend,
		synth:    synth,
		session:  store,
		resolver: limits.NewResolver(backend, &limits.MemoryCounterStore{}),
		catalog:  voices.NewCatalog(synth, backend),
		listener: callback.New(cfg.CallbackAddr),
	}
}

// countingServer fails the test if any request reaches it
func countingServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func guestConsole(t *testing.T, d *deps) *ConsoleModel {
	t.Helper()

	m := NewConsole(d)
	m, _ = m.Update(VoicesMsg{Entries: voices.Fallback()})
	m, _ = m.Update(LimitsMsg{Limits: d.resolver.Resolve(t.Context(), nil)})
	return m
}

func TestGenerate_WaitsForLimitsBeforeDispatching(t *testing.T) {
	srv, hits := countingServer(t)
	d := newTestDeps(t, srv.URL, srv.URL)

	m := NewConsole(d)
	m, _ = m.Update(VoicesMsg{Entries: voices.Fallback()})

	m.text.SetValue("Hello world")
	m, _ = m.generate()

	assert.False(t, m.dispatching)
	assert.NotContains(t, m.errMsg, "0 character")
	assert.Contains(t, m.errMsg, "limits")
	assert.Equal(t, int64(0), hits.Load())
}

func TestGenerate_EmptyTextNeverTouchesTheNetwork(t *testing.T) {
	srv, hits := countingServer(t)
	d := newTestDeps(t, srv.URL, srv.URL)
	m := guestConsole(t, d)
	hits.Store(0) // resolver never hits the network for guests anyway

	m.text.SetValue("   ")
	m, cmd := m.generate()

	assert.Nil(t, cmd)
	assert.False(t, m.dispatching)
	assert.Equal(t, "Enter some text to synthesize", m.errMsg)
	assert.Equal(t, int64(0), hits.Load())
}

func TestGenerate_OversizedGuestTextBlocksWithUpsell(t *testing.T) {
	srv, hits := countingServer(t)
	d := newTestDeps(t, srv.URL, srv.URL)
	m := guestConsole(t, d)
	hits.Store(0)

	m.text.SetValue(strings.Repeat("a", limits.CharLimitGuest+1))
	m, cmd := m.generate()

	assert.Nil(t, cmd)
	assert.Contains(t, m.errMsg, "300 character guest limit")
	assert.Contains(t, m.errMsg, "premium")
	assert.Equal(t, int64(0), hits.Load())
}

func TestGenerate_ExhaustedGuestQuotaBlocks(t *testing.T) {
	srv, hits := countingServer(t)
	d := newTestDeps(t, srv.URL, srv.URL)

	// burn the single guest generation for today
	require.NoError(t, d.resolver.RecordGuestUse())

	m := NewConsole(d)
	m, _ = m.Update(VoicesMsg{Entries: voices.Fallback()})
	m, _ = m.Update(LimitsMsg{Limits: d.resolver.Resolve(t.Context(), nil)})
	hits.Store(0)

	m.text.SetValue("Hello world")
	m, cmd := m.generate()

	assert.Nil(t, cmd)
	assert.Contains(t, m.errMsg, "used up")
	assert.Contains(t, m.errMsg, "Log in")
	assert.Equal(t, int64(0), hits.Load())
}

func TestGenerate_RoundTrip(t *testing.T) {
	var gotBody map[string]any
	tts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/tts", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"audio_url":"/audio/x.wav","audio_duration":1.2,"generation_time":0.42,"segments_count":1}`))
	}))
	defer tts.Close()

	d := newTestDeps(t, "http://127.0.0.1:1", tts.URL)
	entry := voices.Fallback()[0] // af_heart

	msg, ok := d.generateCmd(entry, "Hello world", 1.0)().(generationDoneMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)

	assert.Equal(t, "Hello world", gotBody["text"])
	assert.Equal(t, "af_heart", gotBody["voice"])
	assert.InDelta(t, 1.0, gotBody["speed"].(float64), 1e-9)
	assert.Equal(t, "wav", gotBody["format"])

	require.NotNil(t, msg.result)
	assert.Equal(t, tts.URL+"/audio/x.wav", msg.result.AudioURL)
	assert.Equal(t, "af_heart", msg.result.Voice)

	m := guestConsole(t, d)
	m.dispatching = true
	m, _ = m.finishGeneration(msg)

	assert.False(t, m.dispatching)
	view := m.View()
	assert.Contains(t, view, "af_heart")
	assert.Contains(t, view, "1.0x")
	assert.Contains(t, view, "1.20s")
}

func TestGenerate_ClonedVoiceUsesBackendOrigin(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/voice-cloning/generate/v42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"audio_url":"/audio/clone.wav","voice_name":"My Voice","audio_duration":2.5}`))
	}))
	defer backend.Close()

	d := newTestDeps(t, backend.URL, "http://127.0.0.1:1")

	entry := voices.Entry{Ref: voices.Ref{Kind: voices.KindCloned, ID: "v42"}, Name: "My Voice"}
	msg, ok := d.generateCmd(entry, "Hi there", 1.0)().(generationDoneMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)

	assert.Equal(t, backend.URL+"/audio/clone.wav", msg.result.AudioURL)
	assert.Equal(t, "My Voice", msg.result.Voice)
}

func TestGenerate_FailureSurfacesRejectionDetail(t *testing.T) {
	tts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Texte trop long"}`))
	}))
	defer tts.Close()

	d := newTestDeps(t, "http://127.0.0.1:1", tts.URL)
	m := guestConsole(t, d)

	msg := d.generateCmd(voices.Fallback()[0], "Hello", 1.0)().(generationDoneMsg)
	m.dispatching = true
	m, _ = m.finishGeneration(msg)

	assert.Equal(t, "Texte trop long", m.errMsg)
	assert.Nil(t, m.result)
}

func TestGenerate_UnreachableSynthesisNamesTheService(t *testing.T) {
	d := newTestDeps(t, "http://127.0.0.1:1", "http://127.0.0.1:1")
	m := guestConsole(t, d)

	msg := d.generateCmd(voices.Fallback()[0], "Hello", 1.0)().(generationDoneMsg)
	m.dispatching = true
	m, _ = m.finishGeneration(msg)

	assert.Contains(t, m.errMsg, "synthesis service")
}

func TestSpeed_ClampedToRange(t *testing.T) {
	assert.InDelta(t, speedMin, clampSpeed(0.1), 1e-9)
	assert.InDelta(t, speedMax, clampSpeed(3.0), 1e-9)
	assert.InDelta(t, 1.3, clampSpeed(1.3), 1e-9)
}

func TestHistorySave_OnlyForSignedInUsers(t *testing.T) {
	srv, hits := countingServer(t)
	d := newTestDeps(t, srv.URL, srv.URL)
	m := guestConsole(t, d)
	hits.Store(0)

	res := &GenerationResult{AudioURL: srv.URL + "/audio/x.wav", Duration: 1.0, Speed: 1.0, Voice: "af_heart"}
	m.dispatching = true
	m, cmd := m.finishGeneration(generationDoneMsg{result: res})

	// the batch holds the player probe and the guest counter bump,
	// never a history POST for an anonymous session
	require.NotNil(t, cmd)
	assert.Equal(t, int64(0), hits.Load())
	assert.NotNil(t, m.result)
}
