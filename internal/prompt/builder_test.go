package prompt

import (
	"strings"
	"testing"

	"github.com/Conceptual-Machines/sendawish-api/internal/models"
)

func TestGetSystemPrompt(t *testing.T) {
	loader := NewPromptLoader()
	content, err := loader.GetSystemPrompt()

	if err != nil {
		t.Fatalf("GetSystemPrompt() returned error: %v", err)
	}

	if content == "" {
		t.Error("GetSystemPrompt() returned empty string")
	}

	if strings.HasPrefix(content, "\n") || strings.HasSuffix(content, "\n") {
		t.Error("GetSystemPrompt() was not trimmed")
	}
}

func TestGetOccasionHints(t *testing.T) {
	hints, err := NewPromptLoader().GetOccasionHints()
	if err != nil {
		t.Fatalf("GetOccasionHints() returned error: %v", err)
	}

	if !strings.Contains(hints[models.OccasionRetirement], "sleeping") {
		t.Errorf("retirement hint = %q, want a sleeping joke", hints[models.OccasionRetirement])
	}
	if hints[models.OccasionWeddingAnniversary] != hints[models.OccasionLoveAnniversary] {
		t.Error("both anniversaries should share the same hint")
	}
	if _, ok := hints[models.OccasionChristmas]; ok {
		t.Error("christmas should have no hint")
	}
}

func TestBuildWishPrompt(t *testing.T) {
	builder, err := NewPromptBuilder(nil, 0)
	if err != nil {
		t.Fatalf("NewPromptBuilder() returned error: %v", err)
	}

	prompt, err := builder.BuildWishPrompt(models.WishSelection{
		Sender:    "Sam",
		Recipient: "Dave",
		Occasion:  models.OccasionBirthday,
		Years:     40,
	})
	if err != nil {
		t.Fatalf("BuildWishPrompt() returned error: %v", err)
	}

	for _, want := range []string{
		"wish for a Birthday from Sam to Dave.",
		"It has been 40 years.",
		"under 35 words",
		"joke about aging",
		"RETURN ONLY THE TEXT.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildWishPromptWithoutYearsOrHint(t *testing.T) {
	builder, err := NewPromptBuilder(models.Labels{models.OccasionOther: "Random Tuesday"}, 20)
	if err != nil {
		t.Fatalf("NewPromptBuilder() returned error: %v", err)
	}

	prompt, err := builder.BuildWishPrompt(models.WishSelection{
		Sender:    "Sam",
		Recipient: "Dave",
		Occasion:  models.OccasionOther,
	})
	if err != nil {
		t.Fatalf("BuildWishPrompt() returned error: %v", err)
	}

	if strings.Contains(prompt, "It has been") {
		t.Errorf("prompt should not mention years:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Random Tuesday") {
		t.Errorf("prompt should use the label override:\n%s", prompt)
	}
	if !strings.Contains(prompt, "under 20 words") {
		t.Errorf("prompt should use the configured word cap:\n%s", prompt)
	}
	if strings.Count(prompt, "\n") != 2 {
		t.Errorf("expected three lines, got:\n%s", prompt)
	}
}

func TestSystemPrompt(t *testing.T) {
	builder, err := NewPromptBuilder(nil, 0)
	if err != nil {
		t.Fatalf("NewPromptBuilder() returned error: %v", err)
	}
	system, err := builder.SystemPrompt()
	if err != nil || system == "" {
		t.Fatalf("SystemPrompt() = %q, %v", system, err)
	}
}
