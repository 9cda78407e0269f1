package models

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultSender    = "Anonymous"
	defaultRecipient = "Someone"

	// Query parameter names shared by the form page and the wish page
	ParamFrom     = "from"
	ParamTo       = "to"
	ParamOccasion = "occasion"
	ParamYears    = "years"
)

var (
	ErrSenderRequired    = errors.New("sender is required")
	ErrRecipientRequired = errors.New("recipient is required")
	ErrYearsRequired     = errors.New("years/age must be at least 1")
)

// WishSelection is the tuple a wish page is built from. It is created once
// at form submission, carried in the page address, and never mutated.
type WishSelection struct {
	Sender    string   `json:"from"`
	Recipient string   `json:"to"`
	Occasion  Occasion `json:"occasion"`
	Years     int      `json:"years,omitempty"` // 0 means not applicable
}

// HasYears reports whether a years value is present
func (s WishSelection) HasYears() bool {
	return s.Years > 0
}

// ParseSelection reads a selection from the wish page query string.
// Missing names get playful defaults, an unknown occasion becomes OTHER and
// anything other than a positive integer for years is treated as absent.
func ParseSelection(values url.Values) WishSelection {
	sel := WishSelection{
		Sender:    strings.TrimSpace(values.Get(ParamFrom)),
		Recipient: strings.TrimSpace(values.Get(ParamTo)),
		Occasion:  ParseOccasion(values.Get(ParamOccasion)),
		Years:     parseYears(values.Get(ParamYears)),
	}
	if sel.Sender == "" {
		sel.Sender = defaultSender
	}
	if sel.Recipient == "" {
		sel.Recipient = defaultRecipient
	}
	return sel
}

func parseYears(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// WishForm is the raw form submission before validation
type WishForm struct {
	Sender    string `form:"from"`
	Recipient string `form:"to"`
	Occasion  string `form:"occasion"`
	Years     string `form:"years"`
}

// Validate turns a form submission into a selection.
// Years are only kept for occasions that need them, and are mandatory there.
func (f WishForm) Validate() (WishSelection, error) {
	sel := WishSelection{
		Sender:    strings.TrimSpace(f.Sender),
		Recipient: strings.TrimSpace(f.Recipient),
		Occasion:  ParseOccasion(f.Occasion),
	}
	if sel.Sender == "" {
		return WishSelection{}, ErrSenderRequired
	}
	if sel.Recipient == "" {
		return WishSelection{}, ErrRecipientRequired
	}
	if sel.Occasion.NeedsYears() {
		sel.Years = parseYears(f.Years)
		if sel.Years < 1 {
			return WishSelection{}, ErrYearsRequired
		}
	}
	return sel, nil
}

// Query encodes the selection as the wish page query string
func (s WishSelection) Query() url.Values {
	values := url.Values{}
	values.Set(ParamFrom, s.Sender)
	values.Set(ParamTo, s.Recipient)
	values.Set(ParamOccasion, string(s.Occasion))
	if s.HasYears() && s.Occasion.NeedsYears() {
		values.Set(ParamYears, strconv.Itoa(s.Years))
	}
	return values
}

// Path returns the relative wish page address for the selection
func (s WishSelection) Path() string {
	return "/wish?" + s.Query().Encode()
}

// Headline is the big greeting of the wish page, e.g. "HAPPY 30th BIRTHDAY!".
// Only the first word of the label is shown.
func (l Labels) Headline(s WishSelection) string {
	word := ""
	if fields := strings.Fields(l.Label(s.Occasion)); len(fields) > 0 {
		word = strings.ToUpper(fields[0])
	}
	if s.HasYears() {
		return "HAPPY " + Ordinal(s.Years) + " " + word + "!"
	}
	return "HAPPY " + word + "!"
}

// Badge is the small alert pill above the headline, e.g. "NEW YEAR ALERT 🚨"
func (s WishSelection) Badge() string {
	return strings.ReplaceAll(string(s.Occasion), "_", " ") + " ALERT 🚨"
}
