package generation

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// CallbackPlaceholder satisfies the API's mandatory callback field. Completion
// is detected by polling, not callbacks, so the URL is never invoked.
const CallbackPlaceholder = "https://example.com/callback"

// DefaultWeight is the server-side default for the three tuning weights. A
// weight equal to the default (or left at zero) is omitted from the payload so
// the service applies its own default.
const DefaultWeight = 0.65

// VocalGenderAuto lets the service pick; "m" and "f" force a preference.
const VocalGenderAuto = "auto"

// Tuning carries the optional knobs shared by both request modes.
type Tuning struct {
	Model        Model
	Instrumental bool
	VocalGender  string
	NegativeTags string

	StyleWeight         float64
	WeirdnessConstraint float64
	AudioWeight         float64
}

// Request is a validated, normalizable generation request. The two
// implementations correspond to the API's simple and custom modes, which
// require and validate different fields.
type Request interface {
	// Validate returns one error per violated rule, all collected. An empty
	// slice means the request may be submitted.
	Validate() []error
	// Payload builds the normalized request body for submission.
	Payload() map[string]any
}

// SimpleRequest describes the desired music; the service writes the lyrics.
type SimpleRequest struct {
	Tuning
	Prompt string
}

// CustomRequest gives full control over lyrics, style and title.
type CustomRequest struct {
	Tuning
	Prompt string
	Style  string
	Title  string
}

// Validate implements Request.
func (r SimpleRequest) Validate() []error {
	var errs []error
	if !r.Model.Valid() {
		errs = append(errs, fmt.Errorf("unsupported model %q", r.Model))
	}
	if strings.TrimSpace(r.Prompt) == "" {
		errs = append(errs, fmt.Errorf("prompt is required in simple mode"))
	}
	if n := utf8.RuneCountInString(r.Prompt); n > SimplePromptLimit {
		errs = append(errs, fmt.Errorf("prompt exceeds %d character limit in simple mode (current: %d characters)", SimplePromptLimit, n))
	}
	return errs
}

// Payload implements Request.
func (r SimpleRequest) Payload() map[string]any {
	payload := r.Tuning.payload(false)
	if prompt := strings.TrimSpace(r.Prompt); prompt != "" {
		payload["prompt"] = prompt
	}
	return payload
}

// Validate implements Request.
func (r CustomRequest) Validate() []error {
	var errs []error
	if !r.Model.Valid() {
		errs = append(errs, fmt.Errorf("unsupported model %q", r.Model))
	}
	if strings.TrimSpace(r.Style) == "" {
		errs = append(errs, fmt.Errorf("style is required in custom mode"))
	}
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, fmt.Errorf("title is required in custom mode"))
	}
	if !r.Instrumental && strings.TrimSpace(r.Prompt) == "" {
		errs = append(errs, fmt.Errorf("prompt/lyrics required in custom mode when not instrumental"))
	}
	if limit, n := r.Model.PromptLimit(), utf8.RuneCountInString(r.Prompt); n > limit {
		errs = append(errs, fmt.Errorf("prompt exceeds %d character limit for %s (current: %d characters)", limit, r.Model, n))
	}
	if limit, n := r.Model.StyleLimit(), utf8.RuneCountInString(r.Style); n > limit {
		errs = append(errs, fmt.Errorf("style exceeds %d character limit for %s (current: %d characters)", limit, r.Model, n))
	}
	if n := utf8.RuneCountInString(r.Title); n > TitleLimit {
		errs = append(errs, fmt.Errorf("title exceeds %d character limit (current: %d characters)", TitleLimit, n))
	}
	return errs
}

// Payload implements Request.
func (r CustomRequest) Payload() map[string]any {
	payload := r.Tuning.payload(true)
	if prompt := strings.TrimSpace(r.Prompt); prompt != "" {
		payload["prompt"] = prompt
	}
	if style := strings.TrimSpace(r.Style); style != "" {
		payload["style"] = style
	}
	if title := strings.TrimSpace(r.Title); title != "" {
		payload["title"] = title
	}
	return payload
}

func (t Tuning) payload(customMode bool) map[string]any {
	payload := map[string]any{
		"customMode":   customMode,
		"instrumental": t.Instrumental,
		"model":        string(t.Model),
		"callBackUrl":  CallbackPlaceholder,
	}
	if tags := strings.TrimSpace(t.NegativeTags); tags != "" {
		payload["negativeTags"] = tags
	}
	if gender := strings.TrimSpace(t.VocalGender); gender != "" && gender != VocalGenderAuto {
		payload["vocalGender"] = gender
	}
	if weightSet(t.StyleWeight) {
		payload["styleWeight"] = roundWeight(t.StyleWeight)
	}
	if weightSet(t.WeirdnessConstraint) {
		payload["weirdnessConstraint"] = roundWeight(t.WeirdnessConstraint)
	}
	if weightSet(t.AudioWeight) {
		payload["audioWeight"] = roundWeight(t.AudioWeight)
	}
	return payload
}

// weightSet reports whether a weight should appear in the payload. Zero means
// "unset" and the default would only override the server with itself.
func weightSet(v float64) bool {
	return v != 0 && v != DefaultWeight
}

func roundWeight(v float64) float64 {
	return math.Round(v*100) / 100
}
