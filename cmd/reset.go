package cmd

import (
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all progress (asks twice)",
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	svc, cfg, err := openService(false)
	if err != nil {
		return err
	}
	_, err = newRoutine(svc, cfg).Reset()
	return interrupted(err, "Reset cancelled.")
}
