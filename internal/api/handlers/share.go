package handlers

import (
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/sendawish-api/internal/models"
	"github.com/Conceptual-Machines/sendawish-api/internal/share"
	"github.com/gin-gonic/gin"
)

type ShareHandler struct {
	detector      *share.Detector
	publicBaseURL string
}

func NewShareHandler(detector *share.Detector, publicBaseURL string) *ShareHandler {
	return &ShareHandler{detector: detector, publicBaseURL: publicBaseURL}
}

type ShareRequest struct {
	URL       string `json:"url"`
	Sender    string `json:"from"`
	Recipient string `json:"to"`
	Occasion  string `json:"occasion"`
	Years     int    `json:"years"`
}

// Plan returns the share plan for a wish page. Without a url the page
// address is rebuilt from the selection.
func (h *ShareHandler) Plan(c *gin.Context) {
	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	values := map[string][]string{
		models.ParamFrom:     {req.Sender},
		models.ParamTo:       {req.Recipient},
		models.ParamOccasion: {req.Occasion},
	}
	if req.Years > 0 {
		values[models.ParamYears] = []string{strconv.Itoa(req.Years)}
	}
	sel := models.ParseSelection(values)

	pageURL := req.URL
	if pageURL == "" {
		pageURL = PageURL(c, h.publicBaseURL, sel)
	}

	c.JSON(http.StatusOK, h.detector.Plan(sel, pageURL))
}

// PageURL is the absolute wish page address for sel. The configured public
// base URL wins over the request's own host.
func PageURL(c *gin.Context, publicBaseURL string, sel models.WishSelection) string {
	base := publicBaseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return base + sel.Path()
}
