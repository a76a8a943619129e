package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/resolution/internal/cli"
)

var flagCatchup bool

var readCmd = &cobra.Command{
	Use:   "read N",
	Short: "Record N chapters of Bible reading",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

func init() {
	readCmd.Flags().BoolVar(&flagCatchup, "catchup", false, "Award at the catch-up rate")
	rootCmd.AddCommand(readCmd)
}

func runRead(_ *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid chapter count %q", args[0])
	}

	svc, _, err := openService(false)
	if err != nil {
		return err
	}
	res, err := svc.RecordReading(n, flagCatchup)
	if err != nil {
		if cli.DomainError(err) {
			fmt.Println(cli.Fail(err.Error()))
			return nil
		}
		return err
	}

	if res.Recorded == 0 {
		fmt.Println(cli.Warn("The whole plan is already read; nothing recorded."))
		return nil
	}
	fmt.Println(cli.Success(fmt.Sprintf("Recorded %s: %s coins", cli.FormatChapters(res.Recorded), cli.FormatEarned(res.Earned))))
	fmt.Printf("  Progress: %s\n", cli.RenderProgressBar(res.TotalRead, svc.Policy().TotalChapters, 30))
	if res.Complete {
		fmt.Println(cli.Success("You finished the whole plan!"))
	}
	return nil
}
