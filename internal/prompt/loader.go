package prompt

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/sendawish-api/internal/models"
	"github.com/Conceptual-Machines/sendawish-api/pkg/embedded"
	"gopkg.in/yaml.v3"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetSystemPrompt loads the main system prompt
func (l *Loader) GetSystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.SystemPromptTxt)), nil
}

// GetWishTemplate loads the wish prompt template source
func (l *Loader) GetWishTemplate() (string, error) {
	return strings.TrimSpace(string(embedded.WishPromptTmpl)), nil
}

// GetOccasionHints loads the per-occasion guidance lines
func (l *Loader) GetOccasionHints() (map[models.Occasion]string, error) {
	raw := map[string]string{}
	if err := yaml.Unmarshal(embedded.OccasionHintsYAML, &raw); err != nil {
		return nil, fmt.Errorf("parse occasion hints: %w", err)
	}

	hints := make(map[models.Occasion]string, len(raw))
	for key, hint := range raw {
		o := models.Occasion(key)
		if !o.Valid() {
			return nil, fmt.Errorf("occasion hints: unknown occasion %q", key)
		}
		hints[o] = strings.TrimSpace(hint)
	}
	return hints, nil
}
