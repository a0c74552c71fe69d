package rspec

// TextType is the markup of tour text.
type TextType string

const (
	TextMarkdown TextType = "markdown"
	TextText     TextType = "text"
)

// Tour is the human-readable documentation attached to a request.
type Tour struct {
	Description      string
	DescriptionType  TextType
	Instructions     string
	InstructionsType TextType
}
