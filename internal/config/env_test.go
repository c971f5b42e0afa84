package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvironmentVariables_Defaults(t *testing.T) {
	t.Setenv("VOICEAI_API_URL", "")
	t.Setenv("VOICEAI_TTS_URL", "")
	t.Setenv("VOICEAI_CALLBACK_ADDR", "")
	t.Setenv("VOICEAI_DATA_DIR", "/tmp/voiceai-test")
	t.Setenv("ENVIRONMENT", "")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/api", cfg.APIURL)
	assert.Equal(t, "http://localhost:3000", cfg.BaseOrigin)
	assert.Equal(t, "http://localhost:8000", cfg.TTSURL)
	assert.Equal(t, "localhost:4242", cfg.CallbackAddr)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadEnvironmentVariables_TrimsTrailingSlash(t *testing.T) {
	t.Setenv("VOICEAI_API_URL", "https://voiceai.example.com/api/")
	t.Setenv("VOICEAI_TTS_URL", "https://tts.example.com/")
	t.Setenv("VOICEAI_DATA_DIR", "/tmp/voiceai-test")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "https://voiceai.example.com/api", cfg.APIURL)
	assert.Equal(t, "https://voiceai.example.com", cfg.BaseOrigin)
	assert.Equal(t, "https://tts.example.com", cfg.TTSURL)
}

func TestLoadEnvironmentVariables_NonAPIOrigin(t *testing.T) {
	// an API URL without the /api suffix is its own origin
	t.Setenv("VOICEAI_API_URL", "https://backend.example.com")
	t.Setenv("VOICEAI_DATA_DIR", "/tmp/voiceai-test")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "https://backend.example.com", cfg.BaseOrigin)
}
