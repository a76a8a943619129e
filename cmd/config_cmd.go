package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/resolution/internal/config"
	"github.com/theirongolddev/resolution/internal/ledger"
	"github.com/theirongolddev/resolution/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func orUnset(s string) string {
	if s == "" {
		return "not set"
	}
	return s
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory:  %s\n", cfg.DataDir())
	fmt.Printf("    Morning hour:    %02d:00\n", cfg.General.MorningHour)
	fmt.Printf("    Problems file:   %s\n", orUnset(cfg.General.ProblemsFile))
	fmt.Printf("    Plan file:       %s\n", orUnset(cfg.General.PlanFile))
	fmt.Printf("    Open browser:    %v\n", cfg.General.OpenBrowser)
	fmt.Printf("    Allow shutdown:  %v\n", cfg.General.AllowShutdown)
	fmt.Println()

	fmt.Println("  [Pacing]")
	fmt.Printf("    Chapters a day:  %d-%d\n", cfg.Pacing.MinDaily, cfg.Pacing.MaxDaily)
	fmt.Println()

	rewards, err := ledger.DefaultRewards().WithOverrides(cfg.Rewards)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	fmt.Println("  [Rewards]")
	for _, kind := range ledger.EventKinds {
		marker := ""
		if _, ok := cfg.Rewards[string(kind)]; ok {
			marker = " (custom)"
		}
		fmt.Printf("    %-22s %d%s\n", kind, rewards[kind], marker)
	}
	fmt.Println()

	printCacheStatus(cfg)

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `resolution setup` to reconfigure.")
	return nil
}

// printCacheStatus reports what the problem cache holds without creating it.
func printCacheStatus(cfg config.Config) {
	fmt.Println("  [Problem cache]")
	fmt.Printf("    Cache file:      %s\n", cfg.CachePath())
	defer fmt.Println()

	if _, err := os.Stat(cfg.CachePath()); err != nil {
		fmt.Println("    Status:          not built yet")
		return
	}
	cache, err := store.Open(cfg.CachePath())
	if err != nil {
		fmt.Printf("    Status:          unreadable (%v)\n", err)
		return
	}
	defer cache.Close()

	n, err := cache.ProblemCount()
	if err != nil {
		fmt.Printf("    Status:          unreadable (%v)\n", err)
		return
	}
	fmt.Printf("    Cached problems: %d\n", n)
	if cfg.General.ProblemsFile == "" {
		return
	}
	fi, ok, err := cache.TrackedFile(cfg.General.ProblemsFile)
	switch {
	case err != nil:
		fmt.Printf("    Status:          unreadable (%v)\n", err)
	case !ok:
		fmt.Println("    Status:          stale, rebuilt on next run")
	case fi.ParseErrors > 0:
		fmt.Printf("    Skipped entries: %d\n", fi.ParseErrors)
	}
}
