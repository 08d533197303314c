package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"nowgrab/internal/download"
	"nowgrab/internal/extractor"
	"nowgrab/internal/history"
	"nowgrab/internal/media"
	"nowgrab/internal/ui"
)

// extractRun is the default command: nowgrab <url>
func extractRun(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	ext, err := extractor.ForURL(rawURL)
	if err != nil {
		return err
	}
	debugf("using extractor: %s", ext.Name())

	info, err := ext.Extract(rawURL)
	if err != nil {
		if extractor.IsExpected(err) {
			return err
		}
		return fmt.Errorf("extraction failed: %w", err)
	}
	debugf("extracted %s (%s), %d formats", info.ID, info.DisplayID, len(info.Formats))

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	if flagDownload {
		return downloadFlow(info)
	}

	printInfo(info)
	return nil
}

// downloadFlow picks a rendition and hands it to rtmpdump.
func downloadFlow(info *media.Info) error {
	format, err := pickFormat(info.Formats)
	if err != nil {
		return err
	}
	debugf("selected rendition: %s", media.FormatLabel(*format))

	dir := flagOutput
	if dir == "" {
		var err error
		dir, err = cfg.ExpandDownloadDir()
		if err != nil {
			return fmt.Errorf("resolving download dir: %w", err)
		}
	}

	outputPath, err := download.Download(format, info.Title, dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Downloaded: %s\n", outputPath)

	if cfg.History {
		entry := media.DownloadEntry{
			ID:         info.ID,
			DisplayID:  info.DisplayID,
			Title:      info.Title,
			Path:       outputPath,
			Downloaded: time.Now().Unix(),
		}
		if format.Bitrate != nil {
			entry.Bitrate = *format.Bitrate
		}
		if err := history.Save(entry); err != nil {
			debugf("saving download log failed: %v", err)
		}
	}

	return nil
}

// pickFormat chooses a rendition per the quality setting, or interactively
// when --select is given. Formats arrive sorted worst-first.
func pickFormat(formats []media.Format) (*media.Format, error) {
	if len(formats) == 0 {
		return nil, fmt.Errorf("no downloadable formats")
	}

	if flagSelect {
		items := make([]string, len(formats))
		for i, f := range formats {
			items[i] = media.FormatLabel(f)
		}
		idx, err := ui.Select("Rendition", items)
		if err != nil {
			return nil, err
		}
		return &formats[idx], nil
	}

	switch strings.ToLower(cfg.Quality) {
	case "best":
		return media.BestFormat(formats), nil
	case "worst":
		return &formats[0], nil
	}

	want, err := strconv.Atoi(cfg.Quality)
	if err != nil {
		return nil, fmt.Errorf("unsupported quality %q", cfg.Quality)
	}
	for i := range formats {
		if formats[i].Bitrate != nil && *formats[i].Bitrate == want {
			return &formats[i], nil
		}
	}
	debugf("no rendition at %d kbit/s, falling back to best", want)
	return media.BestFormat(formats), nil
}

// printInfo writes a human-readable summary to stdout.
func printInfo(info *media.Info) {
	fmt.Printf("Title:       %s\n", info.Title)
	fmt.Printf("ID:          %s\n", info.ID)
	fmt.Printf("Display ID:  %s\n", info.DisplayID)
	if info.Timestamp != nil {
		fmt.Printf("Broadcast:   %s\n", time.Unix(*info.Timestamp, 0).UTC().Format("2006-01-02 15:04 MST"))
	}
	if info.Duration != nil {
		fmt.Printf("Duration:    %ds\n", *info.Duration)
	}
	if info.Thumbnail != "" {
		fmt.Printf("Thumbnail:   %s\n", info.Thumbnail)
	}
	if info.Description != "" {
		fmt.Printf("Description: %s\n", info.Description)
	}
	fmt.Printf("Formats:     %d\n", len(info.Formats))
	if best := media.BestFormat(info.Formats); best != nil {
		fmt.Printf("Best:        %s\n", media.FormatLabel(*best))
	}
}
