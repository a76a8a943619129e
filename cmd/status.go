package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/resolution/internal/cli"
	"github.com/theirongolddev/resolution/internal/model"
	"github.com/theirongolddev/resolution/internal/tui/components"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show coins, reading progress, problem stats and today's goals",
	RunE:  runStatus,
}

const statusWidth = 57

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	svc, _, err := openService(true)
	if err != nil {
		return err
	}
	s, err := svc.Status()
	if err != nil {
		return err
	}
	reading := s.Reading

	pace := "on schedule"
	switch {
	case reading.BehindBy > 0:
		pace = "behind by " + cli.FormatChapters(reading.BehindBy)
	case reading.AheadBy > 0:
		pace = "ahead by " + cli.FormatChapters(reading.AheadBy)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("RESOLUTION STATUS"))
	fmt.Println()
	fmt.Println(components.MetricCardRow([]components.Metric{
		{Label: "Coins", Value: cli.FormatNumber(int64(s.Coins))},
		{Label: "Bible", Value: cli.FormatPercent(reading.PercentComplete), Note: pace},
		{Label: "Problems", Value: fmt.Sprintf("%d", s.Problems.TotalCompleted), Note: "completed"},
	}, statusWidth))
	fmt.Println()

	fmt.Println(cli.Header("  Bible Reading"))
	fmt.Printf("    %s\n", components.ReadingBar("Progress", reading, 9, 24))
	if s.Position.Complete {
		fmt.Println("    Plan complete!")
	} else {
		fmt.Printf("    Next:     %s %d\n", s.Position.Book, s.Position.Chapter)
	}
	if len(s.Today) > 0 {
		fmt.Printf("    Today:    %s\n", cli.FormatRanges(s.Today))
	}
	fmt.Println()

	rows := make([][]string, 0, len(model.Difficulties))
	for _, d := range model.Difficulties {
		ds := s.Problems.ByDifficulty[d]
		rows = append(rows, []string{d.String(), cli.FormatNumber(int64(ds.Completed)), cli.FormatNumber(int64(ds.Total))})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "LeetCode",
		Headers: []string{"Difficulty", "Done", "Available"},
		Rows:    rows,
	}))
	if !svc.HasProblems() {
		fmt.Println(cli.Muted("  No problem catalog loaded; set problems_file in the config."))
	}

	if len(s.Goals) > 0 {
		line := lipgloss.NewStyle().MaxWidth(components.CardInnerWidth(statusWidth))
		var b strings.Builder
		for i, g := range s.Goals {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(line.Render(fmt.Sprintf("%d. %s", i+1, g)))
		}
		fmt.Println()
		fmt.Println(components.ContentCard("Today's Goals", b.String(), statusWidth))
	}
	if !s.RanToday {
		fmt.Println()
		fmt.Println(cli.Muted("  Morning routine not run yet today. Run `resolution` to start."))
	}
	fmt.Println()
	return nil
}
