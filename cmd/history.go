package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nowgrab/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past downloads",
	Args:  cobra.NoArgs,
	RunE:  historyRun,
}

func historyRun(cmd *cobra.Command, args []string) error {
	entries, err := history.Load()
	if err != nil {
		return fmt.Errorf("loading download log: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No downloads recorded.")
		return nil
	}

	for _, line := range history.FormatForDisplay(entries) {
		fmt.Println(line)
	}
	return nil
}
