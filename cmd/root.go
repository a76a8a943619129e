// Package cmd implements the resolution CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/resolution/internal/cli"
	"github.com/theirongolddev/resolution/internal/config"
	"github.com/theirongolddev/resolution/internal/ledger"
	"github.com/theirongolddev/resolution/internal/model"
	"github.com/theirongolddev/resolution/internal/pacing"
	"github.com/theirongolddev/resolution/internal/problems"
	"github.com/theirongolddev/resolution/internal/routine"
	"github.com/theirongolddev/resolution/internal/state"
	"github.com/theirongolddev/resolution/internal/store"
	"github.com/theirongolddev/resolution/internal/tui"
	"github.com/theirongolddev/resolution/internal/tui/theme"
)

var (
	flagDataDir string
	flagQuiet   bool
	flagNoCache bool
)

var rootCmd = &cobra.Command{
	Use:   "resolution",
	Short: "Daily habit tracker with gamified rewards",
	Long: "Run without arguments to start the morning routine: set today's goals, " +
		"log Bible reading, pick a LeetCode problem, and spend the coins you earn.",
	SilenceUsage: true,
	RunE:         runMorning,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	log.SetPrefix("[resolution] ")

	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding state.json, goals.json and shop_items.json")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse the problem catalog")
}

// loadConfig loads the config, applies flag overrides and activates the theme.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}

	theme.SetActive(cfg.Appearance.Theme)
	if cfg.Appearance.Theme == theme.Terminal.Name {
		lipgloss.SetColorProfile(termenv.ANSI)
	}
	return cfg, nil
}

// openService wires the store, pacing and rewards from config. The problem
// catalog is only loaded when withProblems is set.
func openService(withProblems bool) (*routine.Service, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}

	rewards, err := ledger.DefaultRewards().WithOverrides(cfg.Rewards)
	if err != nil {
		return nil, cfg, fmt.Errorf("config error: %w", err)
	}
	plan, err := pacing.LoadPlan(cfg.General.PlanFile)
	if err != nil {
		return nil, cfg, err
	}
	policy := pacing.DefaultPolicy()
	policy.MinDaily = cfg.Pacing.MinDaily
	policy.MaxDaily = cfg.Pacing.MaxDaily

	var catalog []model.Problem
	if withProblems {
		catalog = loadProblems(cfg)
	}

	st := state.Open(cfg.DataDir(), state.Options{Rewards: rewards, TotalChapters: plan.TotalChapters()})
	return routine.New(st, routine.Options{
		Policy:   policy,
		Plan:     plan,
		Problems: catalog,
	}), cfg, nil
}

// loadProblems reads the problem catalog, through the SQLite cache unless
// --no-cache is set. A missing or broken catalog is logged and the routine
// carries on without problems.
func loadProblems(cfg config.Config) []model.Problem {
	path := cfg.General.ProblemsFile
	if path == "" {
		return nil
	}

	load := func() (*problems.LoadResult, error) {
		return loadCatalog(path, cfg.CachePath())
	}

	var (
		res *problems.LoadResult
		err error
	)
	if !flagQuiet && isatty.IsTerminal(os.Stderr.Fd()) {
		res, err = tui.WithSpinner(os.Stderr, "Indexing problem catalog...", load)
	} else {
		res, err = load()
	}
	if err != nil {
		log.Printf("warning: problem catalog unavailable: %v", err)
		return nil
	}

	if !flagQuiet && !res.FromCache {
		fmt.Fprintf(os.Stderr, "  Indexed %s problems", cli.FormatNumber(int64(len(res.Problems))))
		if res.ParseErrors > 0 {
			fmt.Fprintf(os.Stderr, " (%d malformed entries skipped)", res.ParseErrors)
		}
		fmt.Fprintln(os.Stderr)
	}
	return res.Problems
}

func loadCatalog(path, cachePath string) (*problems.LoadResult, error) {
	if !flagNoCache {
		cache, err := store.Open(cachePath)
		if err != nil {
			log.Printf("cache unavailable, doing full parse: %v", err)
		} else {
			defer cache.Close()

			res, err := problems.LoadWithCache(path, cache)
			if err == nil {
				return res, nil
			}
			log.Printf("cache error, falling back to full parse: %v", err)
		}
	}
	return problems.Load(path)
}

// newRoutine builds the interactive flows for svc.
func newRoutine(svc *routine.Service, cfg config.Config) *tui.Routine {
	r := &tui.Routine{
		Service: svc,
		Prompt:  tui.FormPrompter{Accessible: os.Getenv("ACCESSIBLE") != ""},
		Out:     os.Stdout,
		Rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	if cfg.General.OpenBrowser {
		r.OpenURL = openBrowser
	}
	if cfg.General.AllowShutdown {
		r.Shutdown = shutdown
	}
	return r
}

func openBrowser(url string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", url)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		c = exec.Command("xdg-open", url)
	}
	if err := c.Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return c.Process.Release()
}

func shutdown() error {
	c := exec.Command("sudo", "shutdown", "now")
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// interrupted turns a user abort into a friendly exit.
func interrupted(err error, msg string) error {
	if errors.Is(err, tui.ErrInterrupted) || errors.Is(err, huh.ErrUserAborted) {
		fmt.Println()
		fmt.Println(cli.Warn(msg))
		return nil
	}
	return err
}

func runMorning(_ *cobra.Command, _ []string) error {
	svc, cfg, err := openService(true)
	if err != nil {
		return err
	}
	err = newRoutine(svc, cfg).Morning()
	return interrupted(err, "Morning routine interrupted. See you tomorrow!")
}
