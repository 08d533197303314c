// Package history maintains the TSV download log.
// Uses atomic writes (temp+rename) to prevent data corruption.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"nowgrab/internal/config"
	"nowgrab/internal/media"
)

// TSV columns: id, display_id, title, bitrate, path, downloaded_at
const numColumns = 6

// Load reads the download log and returns all entries.
func Load() ([]media.DownloadEntry, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening download log: %w", err)
	}
	defer f.Close()

	var entries []media.DownloadEntry
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			continue // Skip malformed lines
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading download log: %w", err)
	}

	return entries, nil
}

// Save writes or updates an entry in the download log. Re-downloading the
// same video at the same bitrate replaces the old record.
func Save(entry media.DownloadEntry) error {
	path, err := config.HistoryPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating download log dir: %w", err)
	}

	entries, _ := Load()

	found := false
	for i, e := range entries {
		if e.ID == entry.ID && e.Bitrate == entry.Bitrate {
			entries[i] = entry
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, entry)
	}

	return writeAll(path, entries)
}

// Remove deletes all records of a video from the log.
func Remove(id string) error {
	entries, err := Load()
	if err != nil {
		return err
	}

	var filtered []media.DownloadEntry
	for _, e := range entries {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}

	path, err := config.HistoryPath()
	if err != nil {
		return err
	}
	return writeAll(path, filtered)
}

// writeAll replaces the log atomically: temp file + rename.
func writeAll(path string, entries []media.DownloadEntry) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "downloads-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writer := bufio.NewWriter(tmpFile)
	for _, e := range entries {
		if _, err := writer.WriteString(formatLine(e) + "\n"); err != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("writing download log: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flushing download log: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming download log: %w", err)
	}

	return nil
}

// FormatForDisplay creates display strings for log entries.
func FormatForDisplay(entries []media.DownloadEntry) []string {
	var items []string
	for _, e := range entries {
		display := e.Title
		if e.Bitrate > 0 {
			display += fmt.Sprintf(" [%dk]", e.Bitrate)
		}
		if e.Downloaded > 0 {
			display += " " + time.Unix(e.Downloaded, 0).UTC().Format("2006-01-02")
		}
		display += " " + e.Path
		items = append(items, display)
	}
	return items
}

// parseLine parses a TSV line into a DownloadEntry.
func parseLine(line string) (media.DownloadEntry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < numColumns {
		return media.DownloadEntry{}, fmt.Errorf("expected %d columns, got %d", numColumns, len(fields))
	}

	bitrate, _ := strconv.Atoi(fields[3])
	downloaded, _ := strconv.ParseInt(fields[5], 10, 64)

	return media.DownloadEntry{
		ID:         fields[0],
		DisplayID:  fields[1],
		Title:      fields[2],
		Bitrate:    bitrate,
		Path:       fields[4],
		Downloaded: downloaded,
	}, nil
}

// formatLine converts a DownloadEntry to a TSV line.
func formatLine(e media.DownloadEntry) string {
	return strings.Join([]string{
		e.ID,
		e.DisplayID,
		e.Title,
		strconv.Itoa(e.Bitrate),
		e.Path,
		strconv.FormatInt(e.Downloaded, 10),
	}, "\t")
}
