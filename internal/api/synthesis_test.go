package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tts", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Hello world", req["text"])
		assert.Equal(t, "af_heart", req["voice"])
		assert.Equal(t, 1.0, req["speed"])
		assert.Equal(t, "wav", req["format"])

		w.Write([]byte(`{"success":true,"audio_url":"/audio/x.wav","audio_duration":1.2,"generation_time":0.3,"segments_count":1}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := NewSynth(srv.URL)
	result, err := c.Synthesize(context.Background(), "Hello world", "af_heart", 1.0)

	require.NoError(t, err)
	assert.Equal(t, "/audio/x.wav", result.AudioURL)
	assert.InDelta(t, 1.2, result.AudioDuration, 1e-9)
	assert.InDelta(t, 0.3, result.GenerationTime, 1e-9)
	assert.Equal(t, 1, result.SegmentsCount)
}

func TestSynthesize_RejectionDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"text too long"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := NewSynth(srv.URL)
	_, err := c.Synthesize(context.Background(), "x", "af_heart", 1.0)

	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, "text too long", rej.Detail)
}

func TestSynthesize_Unreachable_NamesService(t *testing.T) {
	c := NewSynth("http://127.0.0.1:1")
	_, err := c.Synthesize(context.Background(), "x", "af_heart", 1.0)

	unr, ok := AsUnreachable(err)
	require.True(t, ok)
	assert.Equal(t, ServiceSynthesis, unr.Service)
}

func TestVoices_Array(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/voices", r.URL.Path)
		w.Write([]byte(`[{"id":"af_heart","name":"Heart","language":"en-US","gender":"female","recommended":true}]`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := NewSynth(srv.URL)
	voices, err := c.Voices(context.Background())

	require.NoError(t, err)
	require.Len(t, voices, 1)
	assert.Equal(t, "af_heart", voices[0].ID)
	assert.True(t, voices[0].Recommended)
}

func TestVoices_NonArrayIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"voices":[]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := NewSynth(srv.URL)
	_, err := c.Voices(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a list")
}
