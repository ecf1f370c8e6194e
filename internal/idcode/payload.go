// Package idcode encodes and decodes the machine-readable identity codes
// printed on worksheet pages. A code embeds a student and/or question
// reference; decoding failure is a normal outcome, not an error condition.
package idcode

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCodeNotFound signals that no decodable identity code was found.
// Callers fall back to remote identification when they see it.
var ErrCodeNotFound = errors.New("identity code not found")

// Payload type constants for versioned code formats.
const (
	TypeStudent     = "student"
	TypeStudentPage = "student-page"
)

// Payload is the decoded content of an identity code. Three versions are
// in circulation: v1 carries student+question, v2 student only, v3
// student+page for multi-page worksheets.
type Payload struct {
	Version    int
	Type       string
	StudentRef string
	QuestionID string
	Page       int
	TotalPages int
}

// wirePayload is the JSON shape shared by all code versions.
type wirePayload struct {
	V    int    `json:"v"`
	Type string `json:"type,omitempty"`
	S    string `json:"s"`
	Q    string `json:"q,omitempty"`
	P    int    `json:"p,omitempty"`
	T    int    `json:"t,omitempty"`
}

// ParsePayload decodes and validates the text content of a scanned code.
// Unrecognized versions and structurally invalid payloads return
// ErrCodeNotFound so callers treat them like a missed scan.
func ParsePayload(text string) (Payload, error) {
	var w wirePayload
	if err := json.Unmarshal([]byte(text), &w); err != nil {
		return Payload{}, fmt.Errorf("%w: not a code payload", ErrCodeNotFound)
	}

	p := Payload{
		Version:    w.V,
		Type:       w.Type,
		StudentRef: w.S,
		QuestionID: w.Q,
		Page:       w.P,
		TotalPages: w.T,
	}

	switch w.V {
	case 1:
		if w.S == "" || w.Q == "" {
			return Payload{}, fmt.Errorf("%w: v1 payload missing student or question", ErrCodeNotFound)
		}
	case 2:
		if w.Type != TypeStudent || w.S == "" {
			return Payload{}, fmt.Errorf("%w: malformed v2 payload", ErrCodeNotFound)
		}
	case 3:
		if w.Type != TypeStudentPage || w.S == "" || w.P < 1 {
			return Payload{}, fmt.Errorf("%w: malformed v3 payload", ErrCodeNotFound)
		}
	default:
		return Payload{}, fmt.Errorf("%w: unrecognized payload version %d", ErrCodeNotFound, w.V)
	}

	return p, nil
}

// Encode serializes a payload into the text content of an identity code.
func Encode(p Payload) (string, error) {
	w := wirePayload{
		V: p.Version,
		S: p.StudentRef,
	}

	switch p.Version {
	case 1:
		if p.StudentRef == "" || p.QuestionID == "" {
			return "", fmt.Errorf("v1 payload requires student and question references")
		}
		w.Q = p.QuestionID
	case 2:
		if p.StudentRef == "" {
			return "", fmt.Errorf("v2 payload requires a student reference")
		}
		w.Type = TypeStudent
	case 3:
		if p.StudentRef == "" || p.Page < 1 {
			return "", fmt.Errorf("v3 payload requires a student reference and page number")
		}
		w.Type = TypeStudentPage
		w.P = p.Page
		w.T = p.TotalPages
	default:
		return "", fmt.Errorf("unsupported payload version %d", p.Version)
	}

	data, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}
	return string(data), nil
}
