package handlers

import (
	"context"
	"net/http"

	"github.com/Conceptual-Machines/sendawish-api/internal/models"
	"github.com/Conceptual-Machines/sendawish-api/internal/services"
	"github.com/Conceptual-Machines/sendawish-api/internal/theme"
	"github.com/gin-gonic/gin"
)

// WishGenerator produces wish text; it never fails
type WishGenerator interface {
	Generate(ctx context.Context, sel models.WishSelection) services.Wish
}

type WishHandler struct {
	wishes WishGenerator
	labels models.Labels
}

func NewWishHandler(wishes WishGenerator, labels models.Labels) *WishHandler {
	return &WishHandler{wishes: wishes, labels: labels}
}

type WishResponse struct {
	Selection models.WishSelection `json:"selection"`
	Headline  string               `json:"headline"`
	Badge     string               `json:"badge"`
	Label     string               `json:"label"`
	Text      string               `json:"text"`
	Source    string               `json:"source"`
	Model     string               `json:"model,omitempty"`
	Theme     theme.Theme          `json:"theme"`
	Path      string               `json:"path"`
}

// GetWish returns fresh wish text for the selection in the query string.
// Missing values are defaulted exactly like the wish page does.
func (h *WishHandler) GetWish(c *gin.Context) {
	sel := models.ParseSelection(c.Request.URL.Query())
	wish := h.wishes.Generate(c.Request.Context(), sel)

	c.Header("X-Wish-Source", wish.Source)
	c.JSON(http.StatusOK, WishResponse{
		Selection: sel,
		Headline:  h.labels.Headline(sel),
		Badge:     sel.Badge(),
		Label:     h.labels.Label(sel.Occasion),
		Text:      wish.Text,
		Source:    wish.Source,
		Model:     wish.Model,
		Theme:     theme.For(sel.Occasion),
		Path:      sel.Path(),
	})
}

type OccasionResponse struct {
	ID           models.Occasion `json:"id"`
	Label        string          `json:"label"`
	Emoji        string          `json:"emoji"`
	DisplayLabel string          `json:"display_label"`
	NeedsYears   bool            `json:"needs_years"`
	Theme        theme.Theme     `json:"theme"`
}

// ListOccasions returns the occasion catalog in form order
func (h *WishHandler) ListOccasions(c *gin.Context) {
	out := make([]OccasionResponse, 0, len(models.Occasions))
	for _, o := range models.Occasions {
		out = append(out, OccasionResponse{
			ID:           o,
			Label:        h.labels.Label(o),
			Emoji:        o.Emoji(),
			DisplayLabel: h.labels.DisplayLabel(o),
			NeedsYears:   o.NeedsYears(),
			Theme:        theme.For(o),
		})
	}
	c.JSON(http.StatusOK, gin.H{"occasions": out})
}
