// Package share decides whether a wish page can be shared and runs the
// share fallback chain: native share sheet, then clipboard, then a manual
// copy prompt.
package share

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/Conceptual-Machines/sendawish-api/internal/logger"
	"github.com/Conceptual-Machines/sendawish-api/internal/models"
)

const (
	// Banner is shown across the top of a page opened from a preview context
	Banner = "Preview Mode: Links cannot be shared until deployed."

	// Warning is the alert shown when share is pressed in a preview context
	Warning = "⚠️ Preview Link Detected\n\n" +
		"You are currently viewing this in a temporary preview environment. " +
		"This link cannot be shared externally.\n\n" +
		"To share this wish, please deploy the application to a hosting provider first."

	// ManualPrompt is the message of the last-resort copy dialog
	ManualPrompt = "Copy this link manually:"
)

var ErrShareUnavailable = errors.New("share unavailable")

// Payload is what the native share sheet receives
type Payload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// NewPayload builds the share payload for a wish page
func NewPayload(sel models.WishSelection, pageURL string) Payload {
	return Payload{
		Title: fmt.Sprintf("A chaotic wish for %s!", sel.Recipient),
		Text:  fmt.Sprintf("Check out this hilarious wish from %s!", sel.Sender),
		URL:   pageURL,
	}
}

// Plan tells the page how its share button behaves
type Plan struct {
	Enabled bool    `json:"enabled"`
	Warning string  `json:"warning,omitempty"`
	Banner  string  `json:"banner,omitempty"`
	Payload Payload `json:"payload"`
}

// Detector recognises addresses that only exist in a preview environment
type Detector struct {
	hosts map[string]struct{}
}

// NewDetector creates a detector. Extra hosts are matched case-insensitively
// on the host name, without port.
func NewDetector(previewHosts []string) *Detector {
	d := &Detector{hosts: make(map[string]struct{}, len(previewHosts))}
	for _, h := range previewHosts {
		h = strings.ToLower(strings.Trim(strings.TrimSpace(h), "[]"))
		if h != "" {
			d.hosts[h] = struct{}{}
		}
	}
	return d
}

// IsPreview reports whether links from pageURL cannot work for anyone else
func (d *Detector) IsPreview(pageURL string) bool {
	u, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return true
	}

	switch strings.ToLower(u.Scheme) {
	case "blob", "file", "data":
		return true
	case "http", "https":
	default:
		return true
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return true
	}
	if _, ok := d.hosts[host]; ok {
		return true
	}
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return true
	}
	return false
}

// Plan builds the share plan for a wish page
func (d *Detector) Plan(sel models.WishSelection, pageURL string) Plan {
	plan := Plan{
		Enabled: !d.IsPreview(pageURL),
		Payload: NewPayload(sel, pageURL),
	}
	if !plan.Enabled {
		plan.Warning = Warning
		plan.Banner = Banner
	}
	return plan
}

// Outcome is how a share attempt ended
type Outcome string

const (
	OutcomeShared   Outcome = "shared"
	OutcomeCopied   Outcome = "copied"
	OutcomeManual   Outcome = "manual"
	OutcomeDisabled Outcome = "disabled"
)

// NativeSharer is the platform share sheet. Share fails when the sheet is
// unsupported, cancelled or broken.
type NativeSharer interface {
	Share(ctx context.Context, p Payload) error
}

// Clipboard writes text to the clipboard
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Prompter shows a dialog the user can copy the link from
type Prompter interface {
	Prompt(ctx context.Context, message, value string) error
}

// Alerter shows the preview warning
type Alerter interface {
	Alert(ctx context.Context, message string) error
}

// Chain runs the share fallbacks in order. Nil steps count as unsupported.
type Chain struct {
	Native    NativeSharer
	Clipboard Clipboard
	Prompter  Prompter
	Alerter   Alerter
}

// Run shares according to plan. A disabled plan only raises the warning.
func (c Chain) Run(ctx context.Context, plan Plan) (Outcome, error) {
	if !plan.Enabled {
		if c.Alerter != nil {
			if err := c.Alerter.Alert(ctx, plan.Warning); err != nil {
				return OutcomeDisabled, fmt.Errorf("preview warning: %w", err)
			}
		}
		return OutcomeDisabled, nil
	}

	if c.Native != nil {
		err := c.Native.Share(ctx, plan.Payload)
		if err == nil {
			return OutcomeShared, nil
		}
		logger.Debug("Share cancelled or failed", logger.Fields{"error": err.Error()})
	}

	if c.Clipboard != nil {
		err := c.Clipboard.WriteText(ctx, plan.Payload.URL)
		if err == nil {
			return OutcomeCopied, nil
		}
		logger.Warn("Clipboard failed", logger.Fields{"error": err.Error()})
	}

	if c.Prompter == nil {
		return OutcomeManual, ErrShareUnavailable
	}
	if err := c.Prompter.Prompt(ctx, ManualPrompt, plan.Payload.URL); err != nil {
		return OutcomeManual, fmt.Errorf("manual prompt: %w", err)
	}
	return OutcomeManual, nil
}
