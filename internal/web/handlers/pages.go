package handlers

import (
	"errors"
	"math/rand/v2"
	"net/http"

	apihandlers "github.com/Conceptual-Machines/sendawish-api/internal/api/handlers"
	"github.com/Conceptual-Machines/sendawish-api/internal/logger"
	"github.com/Conceptual-Machines/sendawish-api/internal/models"
	"github.com/Conceptual-Machines/sendawish-api/internal/particles"
	"github.com/Conceptual-Machines/sendawish-api/internal/share"
	"github.com/Conceptual-Machines/sendawish-api/internal/theme"
	"github.com/Conceptual-Machines/sendawish-api/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

type WebHandler struct {
	wishes        apihandlers.WishGenerator
	labels        models.Labels
	detector      *share.Detector
	publicBaseURL string
	newRand       func() *rand.Rand
}

func NewWebHandler(
	wishes apihandlers.WishGenerator,
	labels models.Labels,
	detector *share.Detector,
	publicBaseURL string,
) *WebHandler {
	return &WebHandler{
		wishes:        wishes,
		labels:        labels,
		detector:      detector,
		publicBaseURL: publicBaseURL,
		newRand:       func() *rand.Rand { return particles.NewRand(rand.Uint64()) },
	}
}

func (h *WebHandler) occasionOptions() []templates.OccasionOption {
	out := make([]templates.OccasionOption, 0, len(models.Occasions))
	for _, o := range models.Occasions {
		out = append(out, templates.OccasionOption{
			ID:         o,
			Label:      h.labels.DisplayLabel(o),
			NeedsYears: o.NeedsYears(),
		})
	}
	return out
}

// Home renders the wish form
func (h *WebHandler) Home(c *gin.Context) {
	h.renderHome(c, http.StatusOK, models.WishForm{}, "")
}

func (h *WebHandler) renderHome(c *gin.Context, status int, form models.WishForm, alert string) {
	view := templates.HomeView{
		Occasions: h.occasionOptions(),
		Form:      form,
		Error:     alert,
		Emojis:    particles.FloatingEmojis(h.newRand(), theme.HomeEmojis),
	}
	h.render(c, status, templates.Home(view))
}

// CreateWish validates the form and redirects to the wish page. Invalid
// input re-renders the form with an inline alert and nothing else happens.
func (h *WebHandler) CreateWish(c *gin.Context) {
	var form models.WishForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderHome(c, http.StatusBadRequest, form, "Please fill in the form.")
		return
	}

	sel, err := form.Validate()
	if err != nil {
		h.renderHome(c, http.StatusUnprocessableEntity, form, formAlert(err))
		return
	}

	c.Redirect(http.StatusSeeOther, sel.Path())
}

func formAlert(err error) string {
	switch {
	case errors.Is(err, models.ErrSenderRequired), errors.Is(err, models.ErrRecipientRequired):
		return "Please enter both names! 🙏"
	case errors.Is(err, models.ErrYearsRequired):
		return "Please enter a valid number of years/age! 🎂"
	}
	return "Something is off with the form."
}

// Wish renders the result page for the selection in the query string
func (h *WebHandler) Wish(c *gin.Context) {
	sel := models.ParseSelection(c.Request.URL.Query())
	t := theme.For(sel.Occasion)
	wish := h.wishes.Generate(c.Request.Context(), sel)

	rng := h.newRand()
	batch := particles.Generate(rng, t.Animation, t.ParticleColors)

	pageURL := apihandlers.PageURL(c, h.publicBaseURL, sel)
	view := templates.WishView{
		Selection: sel,
		Badge:     sel.Badge(),
		Headline:  h.labels.Headline(sel),
		Text:      wish.Text,
		Source:    wish.Source,
		Theme:     t,
		Particles: particles.Animate(rng, batch, t.Animation),
		Emojis:    particles.FloatingEmojis(rng, t.Emojis),
		Share:     h.detector.Plan(sel, pageURL),
	}

	c.Header("X-Wish-Source", wish.Source)
	h.render(c, http.StatusOK, templates.Wish(view))
}

func (h *WebHandler) render(c *gin.Context, status int, component templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		logger.Error("Failed to render template", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render template"})
	}
}
