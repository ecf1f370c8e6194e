package model

import "strings"

// Confidence classifies how trustworthy an automatic identity match is.
// Tiers are ordered: High > Medium > Low > None.
type Confidence string

// Confidence tier constants.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

// confidenceRanks orders tiers for comparison; higher is more trustworthy.
var confidenceRanks = map[Confidence]int{
	ConfidenceNone:   0,
	ConfidenceLow:    1,
	ConfidenceMedium: 2,
	ConfidenceHigh:   3,
}

// Rank returns the ordinal position of the tier. Unknown values rank as None.
func (c Confidence) Rank() int {
	return confidenceRanks[c]
}

// AtLeast reports whether c is at least as trustworthy as other.
func (c Confidence) AtLeast(other Confidence) bool {
	return c.Rank() >= other.Rank()
}

// ParseConfidence maps a service-provided confidence string onto a tier,
// defaulting to None for anything unrecognized.
func ParseConfidence(s string) Confidence {
	switch Confidence(strings.ToLower(strings.TrimSpace(s))) {
	case ConfidenceHigh:
		return ConfidenceHigh
	case ConfidenceMedium:
		return ConfidenceMedium
	case ConfidenceLow:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// IdentificationResult is the output of one resolution attempt for an item.
type IdentificationResult struct {
	CodeDetected       bool
	CodePayload        string
	MatchedStudentID   string
	MatchedStudentName string
	MatchedQuestionID  string
	Confidence         Confidence
}

// HasMatch reports whether the result carries a usable student identity.
func (r *IdentificationResult) HasMatch() bool {
	return r.MatchedStudentID != ""
}
