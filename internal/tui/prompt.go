package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/resolution/internal/tui/theme"
)

// ErrInterrupted is returned when the user aborts a prompt.
var ErrInterrupted = errors.New("interrupted")

// Choice is one option in a Choose prompt.
type Choice struct {
	Label string
	Value int
}

// Prompter asks the user questions. The routines only talk to the user
// through it.
type Prompter interface {
	Input(title, description string) (string, error)
	Confirm(title string, def bool) (bool, error)
	Number(title string, def int) (int, error)
	Choose(title string, choices []Choice, def int) (int, error)
}

// FormPrompter asks each question as a one-field huh form.
type FormPrompter struct {
	Accessible bool
}

func (p FormPrompter) run(field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithTheme(theme.Active.Form()).
		WithAccessible(p.Accessible).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrInterrupted
	}
	return err
}

// Input asks for free text.
func (p FormPrompter) Input(title, description string) (string, error) {
	var v string
	in := huh.NewInput().Title(title).Value(&v)
	if description != "" {
		in = in.Description(description)
	}
	if err := p.run(in); err != nil {
		return "", err
	}
	return v, nil
}

// Confirm asks a yes/no question.
func (p FormPrompter) Confirm(title string, def bool) (bool, error) {
	v := def
	err := p.run(huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&v))
	return v, err
}

// Number asks for a whole number.
func (p FormPrompter) Number(title string, def int) (int, error) {
	s := strconv.Itoa(def)
	err := p.run(huh.NewInput().
		Title(title).
		Value(&s).
		Validate(func(s string) error {
			if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
				return fmt.Errorf("enter a whole number")
			}
			return nil
		}))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(s))
}

// Choose asks the user to pick one of choices and returns its Value.
func (p FormPrompter) Choose(title string, choices []Choice, def int) (int, error) {
	opts := make([]huh.Option[int], len(choices))
	for i, c := range choices {
		opts[i] = huh.NewOption(c.Label, c.Value)
	}
	v := def
	err := p.run(huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&v))
	return v, err
}
