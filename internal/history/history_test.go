package history

import (
	"path/filepath"
	"strings"
	"testing"

	"nowgrab/internal/media"
)

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	entry := media.DownloadEntry{
		ID:         "203519",
		DisplayID:  "bauer-sucht-frau/die-neuen-bauern-und-eine-hochzeit",
		Title:      "Die neuen Bauern und eine Hochzeit",
		Bitrate:    1500,
		Path:       "/tmp/shows/episode.flv",
		Downloaded: 1432578300,
	}

	if err := Save(entry); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	entries, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	got := entries[0]
	if got.ID != entry.ID {
		t.Errorf("ID = %q, want %q", got.ID, entry.ID)
	}
	if got.DisplayID != entry.DisplayID {
		t.Errorf("DisplayID = %q, want %q", got.DisplayID, entry.DisplayID)
	}
	if got.Bitrate != entry.Bitrate {
		t.Errorf("Bitrate = %d, want %d", got.Bitrate, entry.Bitrate)
	}
	if got.Downloaded != entry.Downloaded {
		t.Errorf("Downloaded = %d, want %d", got.Downloaded, entry.Downloaded)
	}
}

func TestSaveUpdatesExisting(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	entry := media.DownloadEntry{ID: "203519", Title: "Test", Bitrate: 800, Path: "/tmp/a.flv"}
	if err := Save(entry); err != nil {
		t.Fatal(err)
	}

	// Same video, same bitrate, new location
	entry.Path = "/tmp/b.flv"
	if err := Save(entry); err != nil {
		t.Fatal(err)
	}

	entries, _ := Load()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after update, got %d", len(entries))
	}
	if entries[0].Path != "/tmp/b.flv" {
		t.Errorf("path = %q, want /tmp/b.flv", entries[0].Path)
	}

	// Same video at another bitrate is a separate record
	entry.Bitrate = 1500
	if err := Save(entry); err != nil {
		t.Fatal(err)
	}
	entries, _ = Load()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for two bitrates, got %d", len(entries))
	}
}

func TestRemove(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	Save(media.DownloadEntry{ID: "1", Title: "A", Bitrate: 800})
	Save(media.DownloadEntry{ID: "1", Title: "A", Bitrate: 1500})
	Save(media.DownloadEntry{ID: "2", Title: "B", Bitrate: 800})

	if err := Remove("1"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}

	entries, _ := Load()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after remove, got %d", len(entries))
	}
	if entries[0].ID != "2" {
		t.Errorf("remaining entry ID = %q, want 2", entries[0].ID)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", filepath.Join(t.TempDir(), "nothing-here"))

	entries, err := Load()
	if err != nil {
		t.Fatalf("Load() on missing file should not error: %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil entries, got %v", entries)
	}
}

func TestFormatForDisplay(t *testing.T) {
	entries := []media.DownloadEntry{
		{Title: "Angst!", Bitrate: 800, Path: "/tmp/angst.flv", Downloaded: 1432578300},
		{Title: "Folge 934", Path: "/tmp/folge.flv"},
	}

	items := FormatForDisplay(entries)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	if items[0] != "Angst! [800k] 2015-05-25 /tmp/angst.flv" {
		t.Errorf("display = %q", items[0])
	}
	if strings.Contains(items[1], "[") {
		t.Errorf("unknown bitrate should not render a bracket: %q", items[1])
	}
}

func TestFormatLine(t *testing.T) {
	entry := media.DownloadEntry{
		ID:         "203519",
		DisplayID:  "show/episode",
		Title:      "Test Movie",
		Bitrate:    800,
		Path:       "/tmp/test.flv",
		Downloaded: 1432578300,
	}

	line := formatLine(entry)
	expected := "203519\tshow/episode\tTest Movie\t800\t/tmp/test.flv\t1432578300"
	if line != expected {
		t.Errorf("formatLine = %q, want %q", line, expected)
	}

	// Round-trip
	parsed, err := parseLine(line)
	if err != nil {
		t.Fatalf("parseLine error: %v", err)
	}
	if parsed != entry {
		t.Errorf("round-trip failed: got %+v", parsed)
	}
}
