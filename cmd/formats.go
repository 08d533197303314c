package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nowgrab/internal/extractor"
)

var formatsCmd = &cobra.Command{
	Use:   "formats <url>",
	Short: "List the stream renditions of a video",
	Args:  cobra.ExactArgs(1),
	RunE:  formatsRun,
}

func formatsRun(cmd *cobra.Command, args []string) error {
	ext, err := extractor.ForURL(args[0])
	if err != nil {
		return err
	}

	info, err := ext.Extract(args[0])
	if err != nil {
		if extractor.IsExpected(err) {
			return err
		}
		return fmt.Errorf("extraction failed: %w", err)
	}

	if len(info.Formats) == 0 {
		fmt.Println("No downloadable formats.")
		return nil
	}

	fmt.Printf("%-10s %-10s %s\n", "BITRATE", "APP", "PLAY-PATH")
	for _, f := range info.Formats {
		bitrate := "?"
		if f.Bitrate != nil {
			bitrate = fmt.Sprintf("%dk", *f.Bitrate)
		}
		fmt.Printf("%-10s %-10s %s\n", bitrate, f.App, f.PlayPath)
	}
	return nil
}
