package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/resolution/internal/config"
	"github.com/theirongolddev/resolution/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	problemsFile := cfg.General.ProblemsFile
	hour := strconv.Itoa(cfg.General.MorningHour)
	openBrowser := cfg.General.OpenBrowser
	allowShutdown := cfg.General.AllowShutdown
	themeName := cfg.Appearance.Theme

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("LeetCode problem catalog").
				Description("Path to the problems JSON (stat_status_pairs). Leave empty to skip problems.").
				Value(&problemsFile).
				Validate(func(s string) error {
					if s = strings.TrimSpace(s); s == "" {
						return nil
					}
					if _, err := os.Stat(s); err != nil {
						return fmt.Errorf("cannot read %s", s)
					}
					return nil
				}),
			huh.NewInput().
				Title("Morning hour").
				Description("`resolution auto` waits until this hour (0-23).").
				Value(&hour).
				Validate(func(s string) error {
					h, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || h < 0 || h > 23 {
						return fmt.Errorf("enter an hour from 0 to 23")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Open problems in the browser?").Value(&openBrowser),
			huh.NewConfirm().Title("Offer to shut down after `resolution bye`?").Value(&allowShutdown),
			huh.NewSelect[string]().Title("Color theme").Options(themeOpts...).Value(&themeName),
		),
	).WithTheme(theme.Active.Form()).WithAccessible(os.Getenv("ACCESSIBLE") != "")

	fmt.Println()
	fmt.Println("  Welcome to resolution!")
	fmt.Println()
	if err := form.Run(); err != nil {
		return interrupted(err, "Setup cancelled.")
	}

	cfg.General.ProblemsFile = strings.TrimSpace(problemsFile)
	cfg.General.MorningHour, _ = strconv.Atoi(strings.TrimSpace(hour))
	cfg.General.OpenBrowser = openBrowser
	cfg.General.AllowShutdown = allowShutdown
	cfg.Appearance.Theme = themeName

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `resolution setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
