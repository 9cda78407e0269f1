package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Conceptual-Machines/sendawish-api/internal/models"
)

// DefaultMaxWords caps the length of a generated wish
const DefaultMaxWords = 35

// Builder builds the wish prompts sent to the LLM
type Builder struct {
	loader   *Loader
	tmpl     *template.Template
	hints    map[models.Occasion]string
	labels   models.Labels
	maxWords int
}

// wishData is what the wish template renders from
type wishData struct {
	Label     string
	Sender    string
	Recipient string
	Years     int
	MaxWords  int
	Hint      string
}

// NewPromptBuilder creates a new prompt builder from the embedded prompt files
func NewPromptBuilder(labels models.Labels, maxWords int) (*Builder, error) {
	loader := NewPromptLoader()

	src, err := loader.GetWishTemplate()
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New("wish").Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse wish template: %w", err)
	}

	hints, err := loader.GetOccasionHints()
	if err != nil {
		return nil, err
	}

	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	return &Builder{
		loader:   loader,
		tmpl:     tmpl,
		hints:    hints,
		labels:   labels,
		maxWords: maxWords,
	}, nil
}

// SystemPrompt returns the instructions sent alongside every wish request
func (b *Builder) SystemPrompt() (string, error) {
	return b.loader.GetSystemPrompt()
}

// BuildWishPrompt renders the user prompt for a selection
func (b *Builder) BuildWishPrompt(sel models.WishSelection) (string, error) {
	data := wishData{
		Label:     b.labels.Label(sel.Occasion),
		Sender:    sel.Sender,
		Recipient: sel.Recipient,
		MaxWords:  b.maxWords,
		Hint:      b.hints[sel.Occasion],
	}
	if sel.HasYears() {
		data.Years = sel.Years
	}

	var sb strings.Builder
	if err := b.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render wish prompt: %w", err)
	}
	return strings.TrimSpace(sb.String()), nil
}
