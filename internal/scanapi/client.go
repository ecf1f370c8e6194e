// Package scanapi provides typed clients for the remote identification and
// analysis (grading) services. Both are consumed as opaque request/response
// contracts; this package owns the wire shapes and keeps transport failures,
// service-reported failures, and empty matches distinguishable.
package scanapi

import (
	"context"
	"errors"

	"github.com/gradeflow/gradeflow/internal/model"
)

// ErrServiceFailure indicates the service answered but reported an error,
// as opposed to a transport-level failure reaching it.
var ErrServiceFailure = errors.New("service reported failure")

// IdentifyClient identifies the student on a scanned page against a roster.
type IdentifyClient interface {
	IdentifyWork(ctx context.Context, image []byte, roster []model.Student) (model.IdentificationResult, error)
}

// AnalyzeClient grades a scanned page against a rubric.
type AnalyzeClient interface {
	AnalyzeWork(ctx context.Context, image []byte, studentName string, rubric []model.RubricStep) (*model.AnalysisResult, error)
}
