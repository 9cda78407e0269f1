package models

import (
	"strconv"
	"strings"
)

// Occasion is the closed set of greeting-card events a wish can be made for
type Occasion string

const (
	OccasionBirthday           Occasion = "BIRTHDAY"
	OccasionWeddingAnniversary Occasion = "WEDDING_ANNIVERSARY"
	OccasionLoveAnniversary    Occasion = "LOVE_ANNIVERSARY"
	OccasionRetirement         Occasion = "RETIREMENT"
	OccasionChristmas          Occasion = "CHRISTMAS"
	OccasionNewYear            Occasion = "NEW_YEAR"
	OccasionDiwali             Occasion = "DIWALI"
	OccasionPongal             Occasion = "PONGAL"
	OccasionOther              Occasion = "OTHER"
)

// Occasions lists every occasion in form display order
var Occasions = []Occasion{
	OccasionBirthday,
	OccasionWeddingAnniversary,
	OccasionLoveAnniversary,
	OccasionRetirement,
	OccasionChristmas,
	OccasionNewYear,
	OccasionDiwali,
	OccasionPongal,
	OccasionOther,
}

// ParseOccasion maps a raw query value to an occasion.
// Unknown or empty values fall back to OccasionOther.
func ParseOccasion(raw string) Occasion {
	o := Occasion(raw)
	if o.Valid() {
		return o
	}
	return OccasionOther
}

// Valid reports whether o is one of the known occasions
func (o Occasion) Valid() bool {
	switch o {
	case OccasionBirthday, OccasionWeddingAnniversary, OccasionLoveAnniversary,
		OccasionRetirement, OccasionChristmas, OccasionNewYear,
		OccasionDiwali, OccasionPongal, OccasionOther:
		return true
	}
	return false
}

// Label returns the human-readable name of the occasion
func (o Occasion) Label() string {
	switch o {
	case OccasionBirthday:
		return "Birthday"
	case OccasionWeddingAnniversary:
		return "Wedding Anniversary"
	case OccasionLoveAnniversary:
		return "Love Anniversary"
	case OccasionRetirement:
		return "Retirement"
	case OccasionChristmas:
		return "Christmas"
	case OccasionNewYear:
		return "New Year"
	case OccasionDiwali:
		return "Diwali"
	case OccasionPongal:
		return "Pongal"
	case OccasionOther:
		return "Just Because"
	}
	return "Just Because"
}

// Emoji returns the emoji shown next to the label in the form
func (o Occasion) Emoji() string {
	switch o {
	case OccasionBirthday:
		return "🎂"
	case OccasionWeddingAnniversary:
		return "💍"
	case OccasionLoveAnniversary:
		return "❤️"
	case OccasionRetirement:
		return "🏖️"
	case OccasionChristmas:
		return "🎄"
	case OccasionNewYear:
		return "🎆"
	case OccasionDiwali:
		return "🪔"
	case OccasionPongal:
		return "🌾"
	case OccasionOther:
		return "✨"
	}
	return "✨"
}

// DisplayLabel is the label followed by its emoji, e.g. "Birthday 🎂"
func (o Occasion) DisplayLabel() string {
	return o.Label() + " " + o.Emoji()
}

// NeedsYears reports whether the form must collect a years/age value
func (o Occasion) NeedsYears() bool {
	switch o {
	case OccasionBirthday, OccasionWeddingAnniversary, OccasionLoveAnniversary:
		return true
	}
	return false
}

// Ordinal renders n with its English ordinal suffix: 1st, 2nd, 3rd, 4th, 11th, 21st, 112th.
func Ordinal(n int) string {
	return strconv.Itoa(n) + ordinalSuffix(n)
}

func ordinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	if teen := n % 100; teen >= 11 && teen <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// Labels overrides the human-readable names of some occasions
type Labels map[Occasion]string

// Label returns the override for o, or its built-in label
func (l Labels) Label(o Occasion) string {
	if label := strings.TrimSpace(l[o]); label != "" {
		return label
	}
	return o.Label()
}

// DisplayLabel is Label followed by the occasion emoji
func (l Labels) DisplayLabel(o Occasion) string {
	return l.Label(o) + " " + o.Emoji()
}
