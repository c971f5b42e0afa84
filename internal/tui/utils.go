package tui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/glamour"

	"codeberg.org/voiceai/client/internal/api"
	"codeberg.org/voiceai/client/internal/logger"
)

// renderMarkdown turns screen copy into styled terminal output,
// falling back to the raw text if the renderer chokes
func renderMarkdown(md string) string {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		logger.ErrorErr(err, "markdown render failed")
		return md
	}
	return out
}

// errorMessage maps any error from a command to the line shown to the
// user. Server rejections surface their detail verbatim, unreachable
// services are named, and anything else keeps its own text.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}

	if rej, ok := api.AsRejection(err); ok {
		return rej.Detail
	}

	if un, ok := api.AsUnreachable(err); ok {
		return fmt.Sprintf("Cannot reach the %s. Is it running?", un.Service)
	}

	return err.Error()
}

// joinURL resolves a server-relative audio path against its origin.
// Absolute URLs pass through untouched.
func joinURL(origin, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(origin, "/") + "/" + strings.TrimPrefix(path, "/")
}

func formatSpeed(speed float64) string {
	return fmt.Sprintf("%.1fx", speed)
}

// formatClipDuration renders a clip length, e.g. "1.20s"
func formatClipDuration(seconds float64) string {
	return fmt.Sprintf("%.2fs", seconds)
}

// formatDuration renders a history duration, e.g. "42s" or "2m 5s"
func formatDuration(seconds float64) string {
	total := int(seconds + 0.5)
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

// truncate shortens a text preview to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// openBrowser opens a URL in the system browser, best effort
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
