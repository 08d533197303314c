// Package download wraps the external rtmpdump client. The extractor only
// produces connection parameters; rtmpdump performs the RTMP handshake and
// the actual media transfer.
package download

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"nowgrab/internal/httputil"
	"nowgrab/internal/media"
)

// Download retrieves one stream format to a local file using rtmpdump and
// returns the output path.
func Download(f *media.Format, title string, outputDir string) (string, error) {
	rtmpdumpPath, err := exec.LookPath("rtmpdump")
	if err != nil {
		return "", fmt.Errorf("rtmpdump not found in PATH: %w", err)
	}

	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	filename := httputil.SanitizeFilename(title) + "." + f.Ext
	outputPath, err := httputil.SafeDownloadPath(absDir, filename)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	// Explicit argument slice, no shell interpretation.
	args := []string{
		"--rtmp", f.URL,
		"--app", f.App,
		"--playpath", f.PlayPath,
		"--pageUrl", f.PageURL,
		"--swfVfy", f.PlayerURL,
		"--flv", outputPath,
	}

	cmd := exec.Command(rtmpdumpPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	fmt.Fprintf(os.Stderr, "Downloading to: %s\n", outputPath)

	if err := cmd.Run(); err != nil {
		// Clean up partial download on failure
		os.Remove(outputPath)
		return "", fmt.Errorf("rtmpdump failed: %w", err)
	}

	return outputPath, nil
}
