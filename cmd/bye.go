package cmd

import (
	"github.com/spf13/cobra"
)

var byeCmd = &cobra.Command{
	Use:   "bye",
	Short: "End of day check-in: confirm goals and shut down",
	RunE:  runBye,
}

func init() {
	rootCmd.AddCommand(byeCmd)
}

func runBye(_ *cobra.Command, _ []string) error {
	svc, cfg, err := openService(false)
	if err != nil {
		return err
	}
	err = newRoutine(svc, cfg).Evening()
	return interrupted(err, "Check-in interrupted. Goodnight!")
}
