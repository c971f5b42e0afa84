package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// ClonedVoice is a user-owned voice created from an uploaded sample.
type ClonedVoice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"` // pending or ready
}

type clonedVoicesResponse struct {
	Success bool          `json:"success"`
	Voices  []ClonedVoice `json:"voices"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ClonedGeneration is the synthesis result from a cloned voice. The
// audio URL is rooted at the backend's non-API origin.
type ClonedGeneration struct {
	Success   bool    `json:"success"`
	AudioURL  string  `json:"audio_url"`
	VoiceName string  `json:"voice_name"`
	Duration  float64 `json:"audio_duration"`
}

// lists the current user's cloned voices
func (c *Backend) MyClonedVoices(ctx context.Context) ([]ClonedVoice, error) {
	var resp clonedVoicesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/voice-cloning/my-voices", nil, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, fmt.Errorf("cloned voices request rejected")
	}

	return resp.Voices, nil
}

// uploads an audio sample to create a new cloned voice
func (c *Backend) UploadVoiceSample(ctx context.Context, name, description, audioPath string) error {
	f, err := os.Open(audioPath)
	if err != nil {
		return fmt.Errorf("failed to open audio sample: %w", err)
	}
	defer f.Close() //nolint:errcheck

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("name", name); err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.WriteField("description", description); err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}

	part, err := writer.CreateFormFile("audio_file", filepath.Base(audioPath))
	if err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read audio sample: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/voice-cloning/upload", body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp successResponse
	if err := c.send(req, &resp); err != nil {
		return err
	}

	if !resp.Success {
		return fmt.Errorf("upload rejected: %s", resp.Message)
	}

	return nil
}

// synthesizes text with a cloned voice
func (c *Backend) GenerateCloned(ctx context.Context, voiceID, text, language string) (*ClonedGeneration, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("text", text); err != nil {
		return nil, fmt.Errorf("failed to build generation form: %w", err)
	}
	if err := writer.WriteField("language", language); err != nil {
		return nil, fmt.Errorf("failed to build generation form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize generation form: %w", err)
	}

	url := fmt.Sprintf("%s/voice-cloning/generate/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp ClonedGeneration
	if err := c.send(req, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, fmt.Errorf("cloned generation rejected")
	}

	return &resp, nil
}

// deletes a cloned voice by id
func (c *Backend) DeleteClonedVoice(ctx context.Context, voiceID string) error {
	var resp successResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/voice-cloning/"+voiceID, nil, &resp); err != nil {
		return err
	}

	if !resp.Success {
		return fmt.Errorf("delete rejected: %s", resp.Message)
	}

	return nil
}
