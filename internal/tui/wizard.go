// Package tui holds the interactive terminal front ends of oaiprofile: the
// parameter wizard, spinners and the tour viewer.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"powderteam/oaiprofile/internal/portal"
)

// ErrAborted is returned when a user cancels an interactive flow.
var ErrAborted = errors.New("cancelled by user")

// ParameterForm walks the user through every parameter of the schema,
// starting from prefill (typically the values bound so far). Advanced
// parameters are only asked for when the user opts in. The returned map
// holds one trimmed value per parameter; bind it with portal.Answers so an
// empty value restores the default.
func ParameterForm(pc *portal.Context, prefill map[string]string) (map[string]string, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	params := pc.Parameters()
	targets := make(map[string]*string, len(params))
	for _, p := range params {
		v := prefill[p.Name]
		if v == "" && p.Type == portal.TypeEnum {
			v = p.Default
		}
		targets[p.Name] = &v
	}

	// --- Form 1: basic parameters ---

	var groups []*huh.Group
	var advanced []huh.Field
	for _, p := range params {
		if p.Advanced {
			advanced = append(advanced, parameterField(p, targets[p.Name]))
			continue
		}
		groups = append(groups, huh.NewGroup(parameterField(p, targets[p.Name])))
	}

	showAdvanced := false
	if len(advanced) > 0 {
		groups = append(groups, huh.NewGroup(
			huh.NewConfirm().
				Title("Configure advanced options?").
				Description("Commit hashes and the SDR compute image").
				Value(&showAdvanced),
		))
	}
	if err := runForm(accessible, groups...); err != nil {
		return nil, err
	}

	// --- Form 2: advanced parameters + confirm ---

	groups = groups[:0]
	if showAdvanced {
		groups = append(groups, huh.NewGroup(advanced...).Title("Advanced"))
	}

	values := func() map[string]string {
		out := make(map[string]string, len(targets))
		for name, v := range targets {
			out[name] = strings.TrimSpace(*v)
		}
		return out
	}

	confirm := false
	groups = append(groups, huh.NewGroup(
		huh.NewNote().
			Title("Summary").
			DescriptionFunc(func() string { return buildSummary(pc, values()) }, targets),
		huh.NewConfirm().
			Title("Render this request?").
			Value(&confirm),
	))
	if err := runForm(accessible, groups...); err != nil {
		return nil, err
	}
	if !confirm {
		return nil, ErrAborted
	}

	return values(), nil
}

func parameterField(p portal.Parameter, target *string) huh.Field {
	if p.Type == portal.TypeEnum {
		options := buildOptions(p)
		return huh.NewSelect[string]().
			Title(p.Description).
			Options(options...).
			Value(target).
			Height(selectHeight(len(options), 10))
	}
	return huh.NewInput().
		Title(p.Description).
		Description("Leave empty for the default").
		Value(target).
		Validate(inputValidator(p))
}

// inputValidator accepts an empty value (the default) and otherwise runs
// the parameter's own check.
func inputValidator(p portal.Parameter) func(string) error {
	return func(value string) error {
		value = strings.TrimSpace(value)
		if value == "" || p.Validate == nil {
			return nil
		}
		return p.Validate(value)
	}
}

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// --- Option builders ---

func buildOptions(p portal.Parameter) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(p.LegalValues))
	for _, lv := range p.LegalValues {
		options = append(options, huh.NewOption(optionLabel(lv), lv.Value))
	}
	return options
}

func optionLabel(lv portal.LegalValue) string {
	if lv.Label == "" || lv.Label == lv.Value {
		return lv.Value
	}
	return fmt.Sprintf("%s - %s", lv.Value, lv.Label)
}

func buildSummary(pc *portal.Context, values map[string]string) string {
	var b strings.Builder
	for _, p := range pc.Parameters() {
		v := values[p.Name]
		switch {
		case v == "":
			v = "default"
		case p.Type == portal.TypeEnum:
			v = optionLabel(portal.LegalValue{Value: v, Label: p.Label(v)})
		}
		fmt.Fprintf(&b, "%s: %s\n", p.Name, v)
	}
	return strings.TrimSpace(b.String())
}

func selectHeight(optionCount, max int) int {
	if optionCount < max {
		return optionCount
	}
	return max
}
