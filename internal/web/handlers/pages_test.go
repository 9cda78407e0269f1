package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Conceptual-Machines/sendawish-api/internal/models"
	"github.com/Conceptual-Machines/sendawish-api/internal/services"
	"github.com/Conceptual-Machines/sendawish-api/internal/share"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedWishes struct {
	calls int
}

func (c *cannedWishes) Generate(_ context.Context, sel models.WishSelection) services.Wish {
	c.calls++
	return services.Wish{Text: "Roses are red, " + sel.Recipient + " is <old>", Source: services.SourceFallback}
}

func newPagesRouter(wishes *cannedWishes, baseURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWebHandler(wishes, nil, share.NewDetector(nil), baseURL)
	r := gin.New()
	r.GET("/", h.Home)
	r.POST("/wish", h.CreateWish)
	r.GET("/wish", h.Wish)
	return r
}

func postForm(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/wish", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHomeRendersForm(t *testing.T) {
	r := newPagesRouter(&cannedWishes{}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, `<form method="post" action="/wish">`)
	assert.Contains(t, body, `value="BIRTHDAY" data-needs-years="true" selected`)
	assert.Contains(t, body, `value="CHRISTMAS" data-needs-years="false"`)
	assert.Contains(t, body, "Pongal 🌾")
	assert.Equal(t, 15, strings.Count(body, `class="floating-emoji"`))
	assert.NotContains(t, body, `role="alert"`)
}

func TestCreateWishRedirects(t *testing.T) {
	r := newPagesRouter(&cannedWishes{}, "")

	w := postForm(r, url.Values{
		"from":     {" Ana "},
		"to":       {"Ben"},
		"occasion": {"CHRISTMAS"},
		"years":    {"12"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/wish?from=Ana&occasion=CHRISTMAS&to=Ben", w.Header().Get("Location"))
}

func TestCreateWishInlineAlerts(t *testing.T) {
	tests := []struct {
		name  string
		form  url.Values
		alert string
	}{
		{
			name:  "missing names",
			form:  url.Values{"from": {""}, "to": {"Ben"}, "occasion": {"OTHER"}},
			alert: "Please enter both names! 🙏",
		},
		{
			name:  "missing years",
			form:  url.Values{"from": {"Ana"}, "to": {"Ben"}, "occasion": {"BIRTHDAY"}, "years": {"0"}},
			alert: "Please enter a valid number of years/age! 🎂",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wishes := &cannedWishes{}
			r := newPagesRouter(wishes, "")

			w := postForm(r, tt.form)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), tt.alert)
			assert.Contains(t, w.Body.String(), `value="Ben"`)
			assert.Zero(t, wishes.calls)
		})
	}
}

func TestWishPage(t *testing.T) {
	wishes := &cannedWishes{}
	r := newPagesRouter(wishes, "https://sendawish.app")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wish?from=Ana&to=Ben&occasion=BIRTHDAY&years=13", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, 1, wishes.calls)
	assert.Equal(t, services.SourceFallback, w.Header().Get("X-Wish-Source"))
	assert.Contains(t, body, "HAPPY 13th BIRTHDAY!")
	assert.Contains(t, body, "BIRTHDAY ALERT 🚨")
	assert.Contains(t, body, "Roses are red, Ben is &lt;old&gt;")
	assert.Contains(t, body, "Sent with ❤️ (and a bit of malice) by Ana")
	assert.Contains(t, body, `id="wish-data"`)
	assert.Contains(t, body, "Share Chaos Link")
	assert.NotContains(t, body, `class="banner"`)
}

func TestWishPageInPreview(t *testing.T) {
	r := newPagesRouter(&cannedWishes{}, "")

	req := httptest.NewRequest(http.MethodGet, "/wish?to=Ben", nil)
	req.Host = "localhost:8080"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, share.Banner)
	assert.Contains(t, body, "Share Disabled")
	assert.Contains(t, body, "HAPPY JUST!")
	assert.Contains(t, body, "by Anonymous")
}
