package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// synthesis runs on CPU for long texts; allow generous time
const synthesisRequestTimeout = 120 * time.Second

// Synth is the client for the synthesis service (built-in voices).
type Synth struct {
	baseURL    string
	httpClient *http.Client
}

func NewSynth(baseURL string) *Synth {
	return &Synth{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: synthesisRequestTimeout,
		},
	}
}

// Voice is one catalog entry reported by the synthesis service.
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Gender      string `json:"gender"`
	Recommended bool   `json:"recommended"`
}

type synthesizeRequest struct {
	Text   string  `json:"text"`
	Voice  string  `json:"voice"`
	Speed  float64 `json:"speed"`
	Format string  `json:"format"`
}

// Synthesis is a successful /tts response. The audio URL is relative to
// the synthesis service origin.
type Synthesis struct {
	Success        bool    `json:"success"`
	AudioURL       string  `json:"audio_url"`
	AudioDuration  float64 `json:"audio_duration"`
	GenerationTime float64 `json:"generation_time"`
	SegmentsCount  int     `json:"segments_count"`
}

// synthesizes text with a built-in voice; format is always wav
func (c *Synth) Synthesize(ctx context.Context, text, voice string, speed float64) (*Synthesis, error) {
	payload, err := json.Marshal(synthesizeRequest{Text: text, Voice: voice, Speed: speed, Format: "wav"})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tts", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnreachableError{Service: ServiceSynthesis, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, rejectionFromBody(resp.StatusCode, raw)
	}

	var result Synthesis
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !result.Success {
		return nil, &RejectionError{Status: resp.StatusCode, Detail: "generation failed"}
	}

	return &result, nil
}

// fetches the voice catalog. The service answers with a bare JSON
// array; any other shape is treated as a failure.
func (c *Synth) Voices(ctx context.Context) ([]Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/voices", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnreachableError{Service: ServiceSynthesis, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, rejectionFromBody(resp.StatusCode, raw)
	}

	var voices []Voice
	if err := json.Unmarshal(raw, &voices); err != nil {
		return nil, fmt.Errorf("voice catalog is not a list: %w", err)
	}

	return voices, nil
}
