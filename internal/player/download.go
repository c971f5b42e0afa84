package player

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// saves the clip at url under dataDir/downloads and returns the path
func downloadClip(dataDir, url string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("audio fetch failed with status %d", resp.StatusCode)
	}

	dir := filepath.Join(dataDir, "downloads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create downloads directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("voiceai-%s.wav", uuid.NewString()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create download file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(path) //nolint:errcheck
		return "", fmt.Errorf("failed to write download: %w", err)
	}

	return path, nil
}
