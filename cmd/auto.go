package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Run the morning routine if it is due",
	Long: "Runs the morning routine once per day, after the configured morning hour. " +
		"Meant for a shell profile or login hook.",
	RunE: runAuto,
}

func init() {
	rootCmd.AddCommand(autoCmd)
}

func runAuto(cmd *cobra.Command, args []string) error {
	svc, cfg, err := openService(false)
	if err != nil {
		return err
	}

	due, err := svc.ShouldRun(cfg.General.MorningHour)
	if err != nil {
		return err
	}
	if !due {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Morning routine not due (already ran today or before %02d:00)\n", cfg.General.MorningHour)
		}
		return nil
	}
	return runMorning(cmd, args)
}
