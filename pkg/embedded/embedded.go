package embedded

import (
	"embed"
)

// Embed all prompt data files
//
//go:embed data/prompts/system_prompt.txt
var SystemPromptTxt []byte

//go:embed data/prompts/wish_prompt.tmpl
var WishPromptTmpl []byte

//go:embed data/prompts/occasion_hints.yaml
var OccasionHintsYAML []byte

// Default settings, overlaid by SETTINGS_FILE
//
//go:embed data/settings.yaml
var SettingsYAML []byte

// Stylesheet and scripts served under /static
//
//go:embed static
var Static embed.FS
