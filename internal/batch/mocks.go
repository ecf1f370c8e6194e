package batch

import (
	"context"
	"sync"

	"github.com/gradeflow/gradeflow/internal/model"
)

// MockResolver is a test implementation of the Resolver interface. It
// returns canned results per item id and records every call.
type MockResolver struct {
	// Results maps item id to the result Resolve should return. Items
	// without an entry resolve to confidence None.
	Results map[string]model.IdentificationResult

	calls []model.WorkItem
	mu    sync.Mutex
}

// NewMockResolver creates an empty mock resolver.
func NewMockResolver() *MockResolver {
	return &MockResolver{Results: make(map[string]model.IdentificationResult)}
}

// Resolve returns the canned result for the item, recording the call.
func (m *MockResolver) Resolve(_ context.Context, item model.WorkItem, _ []model.Student) model.IdentificationResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, item)

	if result, ok := m.Results[item.ID]; ok {
		return result
	}
	return model.IdentificationResult{Confidence: model.ConfidenceNone}
}

// Apply mirrors the production write-back policy: High confidence matches
// (or force) assign identity, everything else is display-only.
func (m *MockResolver) Apply(item *model.WorkItem, result model.IdentificationResult, force bool) bool {
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

// Calls returns a copy of all recorded Resolve calls.
func (m *MockResolver) Calls() []model.WorkItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]model.WorkItem, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns the number of Resolve calls.
func (m *MockResolver) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// MockAnalyzer is a test implementation of the Analyzer interface. It
// fails items whose student name appears in Failures and completes the
// rest with a fixed score.
type MockAnalyzer struct {
	// Failures maps student name to the error AnalyzeWork should return.
	Failures map[string]error

	// Percentage is the score returned for successful analyses.
	Percentage int

	calls []string
	mu    sync.Mutex
}

// NewMockAnalyzer creates a mock analyzer that grades everything at 80%.
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{
		Failures:   make(map[string]error),
		Percentage: 80,
	}
}

// AnalyzeWork records the call and returns either the configured failure
// or a fixed-score result.
func (m *MockAnalyzer) AnalyzeWork(_ context.Context, _ []byte, studentName string, rubric []model.RubricStep) (*model.AnalysisResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, studentName)
	m.mu.Unlock()

	if err, ok := m.Failures[studentName]; ok {
		return nil, err
	}

	possible := 0.0
	for _, step := range rubric {
		possible += step.Points
	}
	earned := possible * float64(m.Percentage) / 100

	return &model.AnalysisResult{
		TotalScore: model.NewTotalScore(earned, possible),
	}, nil
}

// Calls returns the student names of all recorded calls, in order.
func (m *MockAnalyzer) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns the number of AnalyzeWork calls.
func (m *MockAnalyzer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
