// Package model defines the core domain models used throughout the application.
package model

// ItemStatus indicates where a work item is in the processing lifecycle.
type ItemStatus string

// Item status constants.
const (
	StatusPending     ItemStatus = "PENDING"
	StatusIdentifying ItemStatus = "IDENTIFYING"
	StatusAnalyzing   ItemStatus = "ANALYZING"
	StatusCompleted   ItemStatus = "COMPLETED"
	StatusFailed      ItemStatus = "FAILED"
)

// Terminal reports whether the status is a resting state after an analysis
// pass. Terminal items are only revisited via explicit manual reassignment.
func (s ItemStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// WorkItem represents one scanned page of student work awaiting processing.
// The ID is assigned at creation and never changes; results are always
// applied by looking the item up by ID, never by position.
type WorkItem struct {
	ID             string
	Image          []byte
	StudentID      string
	StudentName    string
	QuestionID     string
	Status         ItemStatus
	Identification *IdentificationResult
	Result         *AnalysisResult
	Error          string
	AutoAssigned   bool
}

// Assigned reports whether the item already has a student attached,
// whether by hand or by the resolver.
func (w *WorkItem) Assigned() bool {
	return w.StudentID != ""
}
