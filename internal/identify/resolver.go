// Package identify resolves scanned work items to student identities using
// a two-tier strategy: an on-device identity code decode first, a remote
// identification call as fallback.
package identify

import (
	"context"
	"log/slog"

	"github.com/gradeflow/gradeflow/internal/idcode"
	"github.com/gradeflow/gradeflow/internal/model"
	"github.com/gradeflow/gradeflow/internal/scanapi"
)

// Decoder is the local identity code decode step.
type Decoder interface {
	Decode(image []byte) (idcode.Payload, error)
}

// Resolver produces a best-guess student identity for a work item.
type Resolver struct {
	decoder Decoder
	remote  scanapi.IdentifyClient
	logger  *slog.Logger
}

// NewResolver creates a resolver over the given decoder and remote client.
func NewResolver(decoder Decoder, remote scanapi.IdentifyClient, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		decoder: decoder,
		remote:  remote,
		logger:  logger,
	}
}

// Resolve attempts the local decode, then the remote service. It never
// fails: any service error degrades to a well-formed result with
// confidence None, leaving the item pending for manual assignment.
func (r *Resolver) Resolve(ctx context.Context, item model.WorkItem, roster []model.Student) model.IdentificationResult {
	payload, err := r.decoder.Decode(item.Image)
	if err == nil {
		return r.resolveFromCode(item, payload, roster)
	}

	// A decode miss is the expected path for pages without a printed
	// code; only then is the remote service consulted.
	result, err := r.remote.IdentifyWork(ctx, item.Image, roster)
	if err != nil {
		r.logger.Warn("remote identification failed",
			"item_id", item.ID,
			"error", err)
		return model.IdentificationResult{Confidence: model.ConfidenceNone}
	}

	r.logger.Debug("remote identification returned",
		"item_id", item.ID,
		"matched_student", result.MatchedStudentID,
		"confidence", result.Confidence)

	return result
}

// resolveFromCode looks the decoded student reference up in the roster.
func (r *Resolver) resolveFromCode(item model.WorkItem, payload idcode.Payload, roster []model.Student) model.IdentificationResult {
	text, err := idcode.Encode(payload)
	if err != nil {
		// Payload survived decode validation, so this cannot happen;
		// keep the zero string rather than dropping the detection.
		text = ""
	}

	result := model.IdentificationResult{
		CodeDetected: true,
		CodePayload:  text,
	}

	for i := range roster {
		if roster[i].MatchesReference(payload.StudentRef) {
			result.MatchedStudentID = roster[i].ID
			result.MatchedStudentName = roster[i].FullName()
			result.MatchedQuestionID = payload.QuestionID
			result.Confidence = model.ConfidenceHigh

			r.logger.Debug("identity code matched roster",
				"item_id", item.ID,
				"student_id", result.MatchedStudentID)
			return result
		}
	}

	// Code present but unknown to this roster: keep the payload for
	// human reconciliation, leave identity fields empty.
	result.Confidence = model.ConfidenceLow

	r.logger.Debug("identity code missed roster",
		"item_id", item.ID,
		"student_ref", payload.StudentRef)

	return result
}

// Apply writes a resolution result onto an item. Auto-assignment is
// conservative: identity fields are written only for High confidence
// matches, unless the caller opts in with force. Lower tiers populate
// Identification for display only. Returns true if identity was assigned.
func (r *Resolver) Apply(item *model.WorkItem, result model.IdentificationResult, force bool) bool {
	resultCopy := result
	item.Identification = &resultCopy

	if !result.HasMatch() {
		return false
	}
	if !result.Confidence.AtLeast(model.ConfidenceHigh) && !force {
		return false
	}

	item.StudentID = result.MatchedStudentID
	item.StudentName = result.MatchedStudentName
	if result.MatchedQuestionID != "" {
		item.QuestionID = result.MatchedQuestionID
	}
	item.AutoAssigned = true

	return true
}
