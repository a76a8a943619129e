// Package tui runs the interactive morning, shop and evening flows.
package tui

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/resolution/internal/cli"
	"github.com/theirongolddev/resolution/internal/model"
	"github.com/theirongolddev/resolution/internal/routine"
	"github.com/theirongolddev/resolution/internal/tui/components"
	"github.com/theirongolddev/resolution/internal/tui/theme"
)

const cardWidth = 64

var routineSteps = []string{"Goals", "Bible", "LeetCode"}

// Routine drives the interactive flows over a routine.Service.
type Routine struct {
	Service *routine.Service
	Prompt  Prompter
	Out     io.Writer
	Rand    *rand.Rand

	// OpenURL launches a problem page; nil skips it.
	OpenURL func(url string) error
	// Shutdown powers the machine off after the evening check-in; nil
	// skips the offer.
	Shutdown func() error
}

func (r *Routine) printf(format string, a ...any) {
	fmt.Fprintf(r.Out, format, a...)
}

func (r *Routine) println(s string) {
	fmt.Fprintln(r.Out, s)
}

func (r *Routine) header(step int) {
	t := theme.Active
	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	sub := lipgloss.NewStyle().Foreground(t.TextMuted)

	r.println("")
	r.println("  " + logo.Render("◈ resolution") + sub.Render(" · Daily Habit Tracker"))
	if step >= 0 {
		r.println("  " + cli.RenderSteps(routineSteps, step))
	}
	r.println("")
}

// Morning runs goals, Bible reading and problem practice, then shows the
// rewards and offers the shop. Today is marked as run before the first
// prompt, so an interrupted routine does not restart on the next auto run.
func (r *Routine) Morning() error {
	if err := r.Service.MarkRan(); err != nil {
		return err
	}

	goals, err := r.stepGoals()
	if err != nil {
		return err
	}
	bibleCoins, err := r.stepBible()
	if err != nil {
		return err
	}
	codeCoins, err := r.stepProblems()
	if err != nil {
		return err
	}
	return r.summary(goals, bibleCoins, codeCoins)
}

func (r *Routine) stepGoals() ([]string, error) {
	r.header(0)
	r.println(components.AccentCard("Step 1: Daily Goals",
		"What are your goals for today?", theme.Active.Green, cardWidth))

	input, err := r.Prompt.Input("Goals", "Comma-separated list of things to accomplish today")
	if err != nil {
		return nil, err
	}
	goals, err := r.Service.SaveGoals(routine.ParseGoals(input))
	if err != nil {
		return nil, err
	}

	if len(goals) == 0 {
		r.println(cli.Warn("No goals entered. You can add them later!"))
		return goals, nil
	}
	r.println(cli.Success("Goals saved!"))
	r.printGoals(goals)
	return goals, nil
}

func (r *Routine) printGoals(goals []string) {
	for i, g := range goals {
		r.printf("  %d. %s\n", i+1, g)
	}
}

func (r *Routine) stepBible() (int, error) {
	r.header(1)

	st, err := r.Service.Status()
	if err != nil {
		return 0, err
	}
	reading := st.Reading

	var b strings.Builder
	if st.Position.Complete {
		b.WriteString("Plan complete! Every chapter has been read.\n")
	} else {
		fmt.Fprintf(&b, "Currently at: %s %d\n", st.Position.Book, st.Position.Chapter)
	}
	b.WriteString(components.ReadingBar("Progress", reading, 9, 24))
	b.WriteString("\n")
	switch {
	case reading.BehindBy > 0:
		b.WriteString(cli.Warn(fmt.Sprintf("Behind by %s", cli.FormatChapters(reading.BehindBy))))
		b.WriteString("\n")
	case reading.AheadBy > 0:
		b.WriteString(cli.Success(fmt.Sprintf("Ahead by %s", cli.FormatChapters(reading.AheadBy))))
		b.WriteString("\n")
	}
	if len(st.Today) > 0 {
		b.WriteString("\nToday's reading:\n")
		for _, rg := range st.Today {
			fmt.Fprintf(&b, "  • %s\n", rg)
		}
	}
	r.println(components.AccentCard("Step 2: Bible Reading",
		strings.TrimRight(b.String(), "\n"), theme.Active.Blue, cardWidth))

	if st.Position.Complete || reading.ChaptersToday == 0 {
		return 0, nil
	}

	total := 0
	read, err := r.Prompt.Confirm(fmt.Sprintf("Did you read today's %s?", cli.FormatChapters(reading.ChaptersToday)), true)
	if err != nil {
		return 0, err
	}
	if read {
		res, err := r.Service.ReadToday()
		if err != nil {
			return 0, err
		}
		total += res.Earned
		r.println(cli.Success(fmt.Sprintf("Great job! %s coins for %s!",
			cli.FormatEarned(res.Earned), cli.FormatChapters(res.Recorded))))
	} else {
		r.println(cli.Warn("No worries, try to catch up when you can!"))
	}

	if reading.BehindBy == 0 {
		return total, nil
	}
	r.println(cli.Warn(fmt.Sprintf("You're %s behind schedule.", cli.FormatChapters(reading.BehindBy))))
	extra, err := r.Prompt.Confirm("Did you read any extra chapters to catch up?", false)
	if err != nil || !extra {
		return total, err
	}
	n, err := r.Prompt.Number("How many extra chapters?", 1)
	if err != nil {
		return total, err
	}
	if n <= 0 {
		return total, nil
	}
	res, err := r.Service.RecordReading(n, true)
	if err != nil {
		return total, err
	}
	total += res.Earned
	r.println(cli.Success(fmt.Sprintf("Awesome! %s coins for %s of catch-up!",
		cli.FormatEarned(res.Earned), cli.FormatChapters(res.Recorded))))
	return total, nil
}

func difficultyLabel(d model.Difficulty) string {
	s := d.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

func (r *Routine) stepProblems() (int, error) {
	r.header(2)

	if !r.Service.HasProblems() {
		r.println(components.AccentCard("Step 3: LeetCode Practice",
			cli.Warn("No problem catalog loaded. Set problems_file in the config to get daily problems."),
			theme.Active.Magenta, cardWidth))
		return 0, nil
	}

	st, err := r.Service.Status()
	if err != nil {
		return 0, err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Total completed: %d\n", st.Problems.TotalCompleted)
	parts := make([]string, 0, len(model.Difficulties))
	for _, d := range model.Difficulties {
		ds := st.Problems.ByDifficulty[d]
		parts = append(parts, fmt.Sprintf("%s: %d/%d", difficultyLabel(d), ds.Completed, ds.Total))
	}
	b.WriteString(strings.Join(parts, " | "))
	r.println(components.AccentCard("Step 3: LeetCode Practice", b.String(), theme.Active.Magenta, cardWidth))

	choices := make([]Choice, 0, len(model.Difficulties))
	for _, d := range model.Difficulties {
		reward, err := r.Service.ProblemReward(d)
		if err != nil {
			return 0, err
		}
		choices = append(choices, Choice{
			Label: fmt.Sprintf("%s (%d coins)", difficultyLabel(d), reward),
			Value: int(d),
		})
	}
	choice, err := r.Prompt.Choose("What difficulty do you want today?", choices, int(model.Medium))
	if err != nil {
		return 0, err
	}
	d := model.Difficulty(choice)

	offered, err := r.Service.Offer(d, routine.OfferSize, r.Rand)
	if err != nil {
		return 0, err
	}
	if len(offered) == 0 {
		r.println(cli.Warn(fmt.Sprintf("No more %s problems available! You've done them all!", d)))
		return 0, nil
	}

	options := make([]Choice, len(offered))
	for i, p := range offered {
		options[i] = Choice{Label: fmt.Sprintf("%d. %s", p.FrontendID, p.Title), Value: i}
	}
	pick, err := r.Prompt.Choose(fmt.Sprintf("Here are %d %s problems. Which one?", len(offered), d), options, 0)
	if err != nil {
		return 0, err
	}
	selected := offered[pick]

	r.println(cli.Success("Opening: " + selected.Title))
	r.println(cli.Muted("  " + selected.URL()))
	if r.OpenURL != nil {
		if err := r.OpenURL(selected.URL()); err != nil {
			r.println(cli.Warn("Could not open a browser: " + err.Error()))
		}
	}

	c, err := r.Service.CompleteProblem(selected)
	if err != nil {
		return 0, err
	}
	r.println(cli.Success(fmt.Sprintf("%s coins earned!", cli.FormatEarned(c.Earned))))
	return c.Earned, nil
}

func (r *Routine) summary(goals []string, bibleCoins, codeCoins int) error {
	r.header(len(routineSteps))

	balance, err := r.Service.Balance()
	if err != nil {
		return err
	}
	body := fmt.Sprintf("Bible Reading:  %s coins\nLeetCode:       %s coins\n%s\nTotal Earned:   %s coins\n\nCurrent Balance: %s",
		cli.FormatEarned(bibleCoins),
		cli.FormatEarned(codeCoins),
		strings.Repeat("─", 25),
		cli.FormatEarned(bibleCoins+codeCoins),
		cli.Coins(balance),
	)
	r.println(components.AccentCard("Morning Routine Complete!", body, theme.Active.Yellow, cardWidth))

	if err := r.showShop(); err != nil {
		return err
	}

	affordable, err := r.Service.Affordable()
	if err != nil {
		return err
	}
	if len(affordable) > 0 {
		visit, err := r.Prompt.Confirm("You can afford some items! Visit the shop?", false)
		if err != nil {
			return err
		}
		if visit {
			if err := r.purchase(); err != nil {
				return err
			}
		}
	}

	r.println("")
	if len(goals) > 0 {
		r.println(cli.Header("Have a great day! Remember your goals:"))
		r.printGoals(goals)
	} else {
		r.println(cli.Header("Have a great day!"))
	}
	r.println("")
	r.println(cli.Muted("Run 'resolution bye' tonight to check off completed goals!"))
	return nil
}

// Evening asks which of today's goals were completed, awards them and
// offers to shut the machine down.
func (r *Routine) Evening() error {
	r.header(-1)
	r.println(components.AccentCard("", "End of Day Check-in", theme.Active.Blue, cardWidth))

	goals, err := r.Service.Goals()
	if err != nil {
		return err
	}

	if len(goals) == 0 {
		r.println(cli.Warn("No goals were set today."))
	} else {
		completed := 0
		for i, g := range goals {
			ok, err := r.Prompt.Confirm(fmt.Sprintf("%d. %s", i+1, g), true)
			if err != nil {
				return err
			}
			if ok {
				completed++
			}
		}
		earned, err := r.Service.EndOfDay(completed)
		if err != nil {
			return err
		}
		if completed > 0 {
			r.println(cli.Success(fmt.Sprintf("Great job! Completed %d/%d goals!", completed, len(goals))))
			r.println(cli.Coins(earned) + " earned!")
		} else {
			r.println(cli.Warn("No goals completed. Tomorrow is a new day!"))
		}
	}

	balance, err := r.Service.Balance()
	if err != nil {
		return err
	}
	r.println("")
	r.println("Total coins: " + cli.Coins(balance))

	if r.Shutdown == nil {
		r.println(cli.Muted("Goodnight!"))
		return nil
	}
	down, err := r.Prompt.Confirm("Shut down computer now?", true)
	if err != nil {
		return err
	}
	if !down {
		r.println(cli.Muted("Shutdown cancelled. Goodnight!"))
		return nil
	}
	r.println(cli.Muted("Shutting down... Goodnight!"))
	return r.Shutdown()
}

// Reset wipes all progress after two confirmations. It reports whether
// anything was reset.
func (r *Routine) Reset() (bool, error) {
	r.println(cli.Fail("WARNING: This will reset ALL progress!"))
	r.println("This includes:")
	for _, s := range []string{"All coins", "Bible reading progress", "LeetCode completion history", "Shop items and purchases"} {
		r.println("  - " + s)
	}
	r.println("")

	for _, q := range []string{"Are you absolutely sure?", "Really really sure?"} {
		ok, err := r.Prompt.Confirm(q, false)
		if err != nil {
			return false, err
		}
		if !ok {
			r.println(cli.Muted("Reset cancelled."))
			return false, nil
		}
	}
	if err := r.Service.Reset(); err != nil {
		return false, err
	}
	r.println(cli.Success("All progress has been reset."))
	return true, nil
}
