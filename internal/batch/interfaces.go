package batch

import (
	"context"

	"github.com/gradeflow/gradeflow/internal/model"
)

// Resolver is the identity resolution collaborator for the identification
// pass. Resolve never fails; degraded outcomes come back as confidence None.
type Resolver interface {
	Resolve(ctx context.Context, item model.WorkItem, roster []model.Student) model.IdentificationResult
	Apply(item *model.WorkItem, result model.IdentificationResult, force bool) bool
}

// Analyzer is the remote grading collaborator for the analysis pass.
type Analyzer interface {
	AnalyzeWork(ctx context.Context, image []byte, studentName string, rubric []model.RubricStep) (*model.AnalysisResult, error)
}
