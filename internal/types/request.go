// Package types provides type definitions for structured data used throughout the hook generation system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Platform identifies a short-form video destination with its own structural rules.
type Platform string

// Supported platforms. Each has a distinct word-count window (see validation).
const (
	PlatformA Platform = "short-form-a"
	PlatformB Platform = "short-form-b"
	PlatformC Platform = "short-form-c"
)

// Platforms lists every supported platform in display order.
func Platforms() []Platform {
	return []Platform{PlatformA, PlatformB, PlatformC}
}

// Label returns the short label used in issue text ("A", "B", "C").
func (p Platform) Label() string {
	switch p {
	case PlatformA:
		return "A"
	case PlatformB:
		return "B"
	case PlatformC:
		return "C"
	default:
		return string(p)
	}
}

// ParsePlatform accepts either the full identifier or its single-letter label.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short-form-a", "a":
		return PlatformA, nil
	case "short-form-b", "b":
		return PlatformB, nil
	case "short-form-c", "c":
		return PlatformC, nil
	}
	return "", fmt.Errorf("unknown platform %q (expected one of short-form-a, short-form-b, short-form-c)", s)
}

// Objective is the business goal a set of hooks is tuned for.
type Objective string

// Supported objectives
const (
	ObjectiveWatchTime    Objective = "watch-time"
	ObjectiveShares       Objective = "shares"
	ObjectiveSaves        Objective = "saves"
	ObjectiveClickThrough Objective = "click-through"
)

// ParseObjective validates an objective string.
func ParseObjective(s string) (Objective, error) {
	o := Objective(strings.ToLower(strings.TrimSpace(s)))
	switch o {
	case ObjectiveWatchTime, ObjectiveShares, ObjectiveSaves, ObjectiveClickThrough:
		return o, nil
	}
	return "", fmt.Errorf("unknown objective %q (expected one of watch-time, shares, saves, click-through)", s)
}

// BrandProfile carries the brand context used to steer generation.
type BrandProfile struct {
	Company     string   `json:"company,omitempty"`
	Industry    string   `json:"industry,omitempty"`
	Audience    string   `json:"audience,omitempty"`
	Voice       string   `json:"voice,omitempty"`
	BannedTerms []string `json:"banned_terms,omitempty" validate:"dive,required"`
}

// GenerationRequest is the inbound request for a set of hooks.
// It is treated as immutable once issued.
type GenerationRequest struct {
	Topic     string       `json:"topic" validate:"required,min=2,max=500"`
	Platform  Platform     `json:"platform" validate:"required,oneof=short-form-a short-form-b short-form-c"`
	Objective Objective    `json:"objective" validate:"required,oneof=watch-time shares saves click-through"`
	Brand     BrandProfile `json:"brand"`
}

// RequestError reports a request rejected before any external call.
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid generation request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid generation request: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Validate validates the GenerationRequest using the validator.
func (r *GenerationRequest) Validate() error {
	if r == nil {
		return &RequestError{Message: "request is nil"}
	}
	if strings.TrimSpace(r.Topic) == "" && r.Topic != "" {
		return &RequestError{Message: "topic is blank"}
	}
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
			}
		}
		msg := "field validation failed"
		if len(fields) > 0 {
			msg = strings.Join(fields, "; ")
		}
		return &RequestError{Message: msg, Cause: err}
	}
	return nil
}

// HistoryKey identifies the brand+topic pair used for de-duplicating hooks across requests.
func (r *GenerationRequest) HistoryKey() string {
	company := strings.ToLower(strings.TrimSpace(r.Brand.Company))
	topic := strings.ToLower(strings.Join(strings.Fields(r.Topic), " "))
	return fmt.Sprintf("%s|%s|%s", company, r.Platform, topic)
}
