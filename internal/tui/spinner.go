package tui

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner runs action behind a spinner on stderr. Cancelling the
// spinner (ctrl+c) returns ErrAborted.
func RunWithSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	err := spinner.New().
		Title(title).
		Accessible(os.Getenv("ACCESSIBLE") != "").
		Output(os.Stderr).
		Context(ctx).
		ActionWithErr(action).
		Run()
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return ErrAborted
	}
	return err
}
