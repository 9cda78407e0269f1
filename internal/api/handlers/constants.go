package handlers

const (
	// Query and path parameters of the JSON API
	paramAnimation = "animation"
	paramPalette   = "palette"
	paramSeed      = "seed"
	paramEffect    = "effect"

	// effectTheme selects the effect matching ?animation=
	effectTheme = "theme"

	paletteSeparator = ","
	maxPaletteColors = 16

	wavContentType    = "audio/wav"
	soundCacheControl = "public, max-age=86400"
)
