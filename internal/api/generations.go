package api

import (
	"context"
	"fmt"
	"net/http"
)

// UserLimits is the server-reported quota for an authenticated user.
// DailyLimit and DailyRemaining are nil for the unlimited premium tier.
type UserLimits struct {
	CharLimit      int  `json:"char_limit"`
	DailyLimit     *int `json:"daily_limit"`
	DailyUsed      int  `json:"daily_used"`
	DailyRemaining *int `json:"daily_remaining"`
	IsPremium      bool `json:"is_premium"`
}

// HistoryEntry is one past generation, owned by the history service.
type HistoryEntry struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Voice         string   `json:"voice"`
	Speed         float64  `json:"speed"`
	AudioURL      string   `json:"audio_url"`
	AudioDuration *float64 `json:"audio_duration"`
	CreatedAt     string   `json:"created_at"`
}

// HistoryRecord is the payload for saving a generation to history.
type HistoryRecord struct {
	Text           string  `json:"text"`
	Voice          string  `json:"voice"`
	Speed          float64 `json:"speed"`
	AudioURL       string  `json:"audio_url"`
	AudioDuration  float64 `json:"audio_duration"`
	GenerationTime float64 `json:"generation_time"`
}

type limitsResponse struct {
	Success bool       `json:"success"`
	Limits  UserLimits `json:"limits"`
}

type historyResponse struct {
	Success     bool           `json:"success"`
	Generations []HistoryEntry `json:"generations"`
}

// fetches the current user's generation limits
func (c *Backend) FetchLimits(ctx context.Context) (*UserLimits, error) {
	var resp limitsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/generations/limits", nil, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, fmt.Errorf("limits request rejected")
	}

	return &resp.Limits, nil
}

// fetches the current user's generation history
func (c *Backend) FetchHistory(ctx context.Context) ([]HistoryEntry, error) {
	var resp historyResponse
	if err := c.doJSON(ctx, http.MethodGet, "/generations", nil, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, fmt.Errorf("history request rejected")
	}

	return resp.Generations, nil
}

// records a successful generation in the user's history
func (c *Backend) SaveGeneration(ctx context.Context, rec HistoryRecord) error {
	return c.doJSON(ctx, http.MethodPost, "/generations", rec, nil)
}
