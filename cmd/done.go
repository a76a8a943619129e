package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/resolution/internal/cli"
	"github.com/theirongolddev/resolution/internal/model"
)

var flagDifficulty string

var doneCmd = &cobra.Command{
	Use:   "done NUMBER",
	Short: "Mark a LeetCode problem completed",
	Long: "Marks the problem LeetCode lists as NUMBER completed and awards its " +
		"difficulty reward. Without a problem catalog, pass --difficulty.",
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	doneCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "easy, medium or hard (used when no catalog is loaded)")
	rootCmd.AddCommand(doneCmd)
}

func runDone(_ *cobra.Command, args []string) error {
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid problem number %q", args[0])
	}

	var d model.Difficulty
	if flagDifficulty != "" {
		if d, err = model.ParseDifficulty(flagDifficulty); err != nil {
			return err
		}
	}

	svc, _, err := openService(true)
	if err != nil {
		return err
	}

	p, err := svc.ResolveProblem(number, d)
	switch {
	case errors.Is(err, model.ErrNotFound) && svc.HasProblems():
		fmt.Println(cli.Fail(fmt.Sprintf("Problem %d is not in the catalog.", number)))
		return nil
	case errors.Is(err, model.ErrNotFound):
		fmt.Println(cli.Fail(fmt.Sprintf("No problem catalog loaded; pass --difficulty for problem %d.", number)))
		return nil
	case err != nil:
		return err
	}

	c, err := svc.CompleteProblem(p)
	if err != nil {
		return err
	}
	name := p.Title
	if name == "" {
		name = fmt.Sprintf("problem %d", number)
	}
	if c.Already {
		fmt.Println(cli.Warn(fmt.Sprintf("%s was already completed; no coins awarded.", name)))
		return nil
	}
	fmt.Println(cli.Success(fmt.Sprintf("Completed %s (%s): %s coins", name, p.Difficulty, cli.FormatEarned(c.Earned))))
	return nil
}
