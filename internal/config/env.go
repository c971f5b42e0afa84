package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// development defaults; production deployments set the variables
const (
	defaultAPIURL       = "http://localhost:3000/api"
	defaultTTSURL       = "http://localhost:8000"
	defaultCallbackAddr = "localhost:4242"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	apiURL := os.Getenv("VOICEAI_API_URL")
	ttsURL := os.Getenv("VOICEAI_TTS_URL")
	callbackAddr := os.Getenv("VOICEAI_CALLBACK_ADDR")
	dataDir := os.Getenv("VOICEAI_DATA_DIR")
	environment := os.Getenv("ENVIRONMENT")

	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	if ttsURL == "" {
		ttsURL = defaultTTSURL
	}

	if callbackAddr == "" {
		callbackAddr = defaultCallbackAddr
	}

	if environment == "" {
		environment = "development"
	}

	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("VOICEAI_DATA_DIR not set and home directory unavailable: %w", err)
		}
		dataDir = filepath.Join(home, ".voiceai")
	}

	apiURL = strings.TrimSuffix(apiURL, "/")
	ttsURL = strings.TrimSuffix(ttsURL, "/")

	return &Config{
		APIURL:       apiURL,
		BaseOrigin:   strings.TrimSuffix(apiURL, "/api"),
		TTSURL:       ttsURL,
		CallbackAddr: callbackAddr,
		DataDir:      dataDir,
		Environment:  environment,
	}, nil
}
