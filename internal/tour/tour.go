// Package tour holds the tour text attached to every request: a short
// description of the experiment and the operator instructions for bringing
// up the core network, the gNodeB and the UE.
package tour

import (
	_ "embed"
	"strings"

	"powderteam/oaiprofile/internal/rspec"
)

//go:embed description.md
var description string

//go:embed instructions.md
var instructions string

// Description returns the markdown tour description.
func Description() string { return strings.TrimSpace(description) }

// Instructions returns the markdown operator instructions.
func Instructions() string { return strings.TrimSpace(instructions) }

// New returns the tour for the request.
func New() rspec.Tour {
	return rspec.Tour{
		Description:      Description(),
		DescriptionType:  rspec.TextMarkdown,
		Instructions:     Instructions(),
		InstructionsType: rspec.TextMarkdown,
	}
}

// Markdown returns the description and instructions as one document.
func Markdown() string {
	return Description() + "\n\n## Instructions\n\n" + Instructions() + "\n"
}
