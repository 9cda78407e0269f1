package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

import (
	"strconv"

	"github.com/Conceptual-Machines/sendawish-api/internal/models"
	"github.com/Conceptual-Machines/sendawish-api/internal/particles"
	"github.com/Conceptual-Machines/sendawish-api/internal/share"
	"github.com/Conceptual-Machines/sendawish-api/internal/theme"
)

// OccasionOption is one entry of the occasion dropdown
type OccasionOption struct {
	ID         models.Occasion
	Label      string
	NeedsYears bool
}

// HomeView is everything the form page shows. A non-empty Error is shown as
// an inline alert above the form and the submitted values are kept.
type HomeView struct {
	Occasions []OccasionOption
	Form      models.WishForm
	Error     string
	Emojis    []particles.FloatingEmoji
}

// WishView is everything the wish page shows
type WishView struct {
	Selection models.WishSelection
	Badge     string
	Headline  string
	Text      string
	Source    string
	Theme     theme.Theme
	Particles []particles.Animated
	Emojis    []particles.FloatingEmoji
	Share     share.Plan
}

// wishData is handed to the page script as JSON
type wishData struct {
	Text      string               `json:"text"`
	Animation theme.AnimationType  `json:"animation"`
	Particles []particles.Animated `json:"particles"`
	Share     share.Plan           `json:"share"`
}

func newWishData(v WishView) wishData {
	return wishData{
		Text:      v.Text,
		Animation: v.Theme.Animation,
		Particles: v.Particles,
		Share:     v.Share,
	}
}

// selectedOccasion is the dropdown entry to preselect, birthday on a fresh form
func selectedOccasion(f models.WishForm) models.Occasion {
	if f.Occasion == "" {
		return models.OccasionBirthday
	}
	return models.ParseOccasion(f.Occasion)
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
