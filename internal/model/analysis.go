package model

import "math"

// RubricStep is one scoring criterion of a rubric, supplied by the caller
// and used to structure grading requests.
type RubricStep struct {
	StepNumber  int
	Description string
	Points      float64
}

// RubricScore is the graded outcome for a single rubric criterion.
type RubricScore struct {
	Criterion string
	Score     float64
	MaxScore  float64
	Feedback  string
}

// TotalScore aggregates earned points across all rubric criteria.
type TotalScore struct {
	Earned     float64
	Possible   float64
	Percentage int
}

// NewTotalScore computes the percentage from earned and possible points.
// Percentage is 0 when nothing was possible.
func NewTotalScore(earned, possible float64) TotalScore {
	ts := TotalScore{Earned: earned, Possible: possible}
	if possible > 0 {
		ts.Percentage = int(math.Round(100 * earned / possible))
	}
	return ts
}

// Normalize recomputes the percentage from earned and possible, correcting
// any inconsistent value reported by the analysis service.
func (t *TotalScore) Normalize() {
	*t = NewTotalScore(t.Earned, t.Possible)
}

// AnalysisResult is the output of grading one work item.
type AnalysisResult struct {
	RubricScores   []RubricScore
	Misconceptions []string
	TotalScore     TotalScore
	Feedback       string
}
