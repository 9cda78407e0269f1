package theme

import "github.com/Conceptual-Machines/sendawish-api/internal/models"

// AnimationType selects the background particle effect of a theme
type AnimationType string

const (
	AnimationConfetti AnimationType = "confetti"
	AnimationHearts   AnimationType = "hearts"
	AnimationSnow     AnimationType = "snow"
	AnimationSparkles AnimationType = "sparkles"
	AnimationBubbles  AnimationType = "bubbles"
)

// Animations lists every supported animation type
var Animations = []AnimationType{
	AnimationConfetti,
	AnimationHearts,
	AnimationSnow,
	AnimationSparkles,
	AnimationBubbles,
}

// ParseAnimation returns the animation type named by raw and whether it is known
func ParseAnimation(raw string) (AnimationType, bool) {
	a := AnimationType(raw)
	for _, known := range Animations {
		if a == known {
			return a, true
		}
	}
	return a, false
}

// Theme bundles the visual and audio parameters of an occasion
type Theme struct {
	TextColor      string        `json:"text_color"`
	Emojis         []string      `json:"emojis"`
	Background     string        `json:"background"`
	ButtonBg       string        `json:"button_bg"`
	Accent         string        `json:"accent"`
	Animation      AnimationType `json:"animation"`
	ParticleColors []string      `json:"particle_colors"`
}

// Palettes are package-level so that a theme always hands out the same
// slice; particle fields compare palettes by reference.
var (
	birthdayPalette   = []string{"#FF69B4", "#FFD700", "#00BFFF", "#32CD32", "#FF4500"}
	weddingPalette    = []string{"#FF0000", "#FF1493", "#FF69B4", "#DC143C"}
	lovePalette       = []string{"#E91E63", "#F44336", "#FF4081"}
	retirementPalette = []string{"#4FC3F7", "#B3E5FC", "#0288D1", "#FFFFFF"}
	christmasPalette  = []string{"#FFFFFF", "#D1F2EB", "#A3E4D7"}
	newYearPalette    = []string{"#FFD700", "#C0C0C0", "#9370DB", "#FF00FF"}
	diwaliPalette     = []string{"#FF8C00", "#FFD700", "#FF4500", "#FFA500"}
	pongalPalette     = []string{"#FFD700", "#FFA500", "#8B4513", "#228B22"}
	otherPalette      = []string{"#9400D3", "#FF00FF", "#00CED1", "#FF1493"}
)

// For returns the theme of an occasion. Unknown occasions get the OTHER theme.
func For(o models.Occasion) Theme {
	switch o {
	case models.OccasionBirthday:
		return Theme{
			TextColor:      "text-pink-600",
			Emojis:         []string{"🎂", "🎁", "🎈", "🎉", "🍰"},
			Background:     "from-pink-100 via-purple-100 to-indigo-100",
			ButtonBg:       "bg-gradient-to-r from-pink-500 to-rose-500",
			Accent:         "border-pink-200",
			Animation:      AnimationConfetti,
			ParticleColors: birthdayPalette,
		}
	case models.OccasionWeddingAnniversary:
		return Theme{
			TextColor:      "text-red-600",
			Emojis:         []string{"💍", "💒", "🍾", "❤️", "🕊️"},
			Background:     "from-rose-50 via-red-50 to-pink-50",
			ButtonBg:       "bg-gradient-to-r from-red-500 to-pink-600",
			Accent:         "border-red-200",
			Animation:      AnimationHearts,
			ParticleColors: weddingPalette,
		}
	case models.OccasionLoveAnniversary:
		return Theme{
			TextColor:      "text-rose-600",
			Emojis:         []string{"❤️", "😘", "🌹", "🧸", "💘"},
			Background:     "from-pink-100 via-red-100 to-rose-200",
			ButtonBg:       "bg-gradient-to-r from-rose-500 to-red-500",
			Accent:         "border-rose-200",
			Animation:      AnimationHearts,
			ParticleColors: lovePalette,
		}
	case models.OccasionRetirement:
		return Theme{
			TextColor:      "text-blue-600",
			Emojis:         []string{"🏖️", "😴", "✈️", "🍹", "⛳"},
			Background:     "from-blue-100 via-cyan-100 to-sky-200",
			ButtonBg:       "bg-gradient-to-r from-blue-500 to-cyan-500",
			Accent:         "border-blue-200",
			Animation:      AnimationBubbles,
			ParticleColors: retirementPalette,
		}
	case models.OccasionChristmas:
		return Theme{
			TextColor:      "text-green-700",
			Emojis:         []string{"🎄", "🎅", "❄️", "🦌", "🍪"},
			Background:     "from-green-100 via-red-50 to-emerald-100",
			ButtonBg:       "bg-gradient-to-r from-green-600 to-emerald-600",
			Accent:         "border-green-200",
			Animation:      AnimationSnow,
			ParticleColors: christmasPalette,
		}
	case models.OccasionNewYear:
		return Theme{
			TextColor:      "text-purple-700",
			Emojis:         []string{"🎆", "🥂", "✨", "🕛", "🎉"},
			Background:     "from-indigo-100 via-purple-100 to-fuchsia-100",
			ButtonBg:       "bg-gradient-to-r from-purple-600 to-indigo-600",
			Accent:         "border-purple-200",
			Animation:      AnimationSparkles,
			ParticleColors: newYearPalette,
		}
	case models.OccasionDiwali:
		return Theme{
			TextColor:      "text-amber-700",
			Emojis:         []string{"🪔", "✨", "🎆", "🍬", "🕉️"},
			Background:     "from-orange-100 via-amber-100 to-yellow-100",
			ButtonBg:       "bg-gradient-to-r from-orange-500 to-amber-500",
			Accent:         "border-orange-200",
			Animation:      AnimationSparkles,
			ParticleColors: diwaliPalette,
		}
	case models.OccasionPongal:
		return Theme{
			TextColor:      "text-yellow-700",
			Emojis:         []string{"🌾", "🍯", "☀️", "🐄", "🥘"},
			Background:     "from-yellow-100 via-orange-50 to-amber-100",
			ButtonBg:       "bg-gradient-to-r from-yellow-500 to-orange-500",
			Accent:         "border-yellow-200",
			Animation:      AnimationConfetti,
			ParticleColors: pongalPalette,
		}
	}
	return Theme{
		TextColor:      "text-violet-600",
		Emojis:         []string{"✨", "🔥", "💃", "🚀", "🦄"},
		Background:     "from-violet-100 via-fuchsia-100 to-pink-100",
		ButtonBg:       "bg-gradient-to-r from-violet-500 to-fuchsia-500",
		Accent:         "border-violet-200",
		Animation:      AnimationConfetti,
		ParticleColors: otherPalette,
	}
}

// HomeEmojis float behind the form page
var HomeEmojis = []string{"✨", "🚀", "🔥", "🤪", "🎉", "💩", "🦄"}
