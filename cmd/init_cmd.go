package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/resolution/internal/cli"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed the shop with default items",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	svc, _, err := openService(false)
	if err != nil {
		return err
	}
	added, err := svc.InitShop()
	if err != nil {
		return err
	}
	if added {
		fmt.Println(cli.Success("Added default shop items!"))
	} else {
		fmt.Println(cli.Warn("Shop already has items."))
	}
	return printShop(svc)
}
