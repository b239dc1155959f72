package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/grynn/fplot/option"
)

// pick presents a single-select over the formatted contract lines and
// prints the chosen one, so the selection can feed a shell pipeline.
func pick(out io.Writer, contracts []*option.Contract) error {
	choices := make([]huh.Option[int], len(contracts))
	for i, c := range contracts {
		choices[i] = huh.NewOption(c.Display(), i)
	}

	var selected int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Pick a contract").
				Options(choices...).
				Value(&selected),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			return nil
		}
		return fmt.Errorf("form error: %w", err)
	}

	fmt.Fprintln(out, contracts[selected].Display())
	return nil
}
