package scanapi

import "github.com/gradeflow/gradeflow/internal/model"

// Wire shapes for the identification service.

type rosterEntry struct {
	ID                string `json:"id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	ExternalStudentID string `json:"externalStudentId"`
}

type identifyRequest struct {
	Image        string        `json:"image"`
	IdentifyOnly bool          `json:"identifyOnly"`
	Roster       []rosterEntry `json:"roster"`
}

type identificationDTO struct {
	CodeDetected       bool   `json:"codeDetected"`
	CodePayload        string `json:"codePayload,omitempty"`
	MatchedStudentID   string `json:"matchedStudentId,omitempty"`
	MatchedStudentName string `json:"matchedStudentName,omitempty"`
	MatchedQuestionID  string `json:"matchedQuestionId,omitempty"`
	Confidence         string `json:"confidence"`
}

type identifyResponse struct {
	Success        bool               `json:"success"`
	Identification *identificationDTO `json:"identification,omitempty"`
	Error          string             `json:"error,omitempty"`
}

// Wire shapes for the analysis service.

type rubricStepDTO struct {
	StepNumber  int     `json:"stepNumber"`
	Description string  `json:"description"`
	Points      float64 `json:"points"`
}

type analyzeRequest struct {
	Image       string          `json:"image"`
	Rubric      []rubricStepDTO `json:"rubric"`
	StudentName string          `json:"studentName,omitempty"`
	Mode        string          `json:"mode"`
	PromptText  string          `json:"promptText,omitempty"`
}

type rubricScoreDTO struct {
	Criterion string  `json:"criterion"`
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"maxScore"`
	Feedback  string  `json:"feedback,omitempty"`
}

type totalScoreDTO struct {
	Earned     float64 `json:"earned"`
	Possible   float64 `json:"possible"`
	Percentage int     `json:"percentage"`
}

type analysisDTO struct {
	RubricScores   []rubricScoreDTO `json:"rubricScores"`
	Misconceptions []string         `json:"misconceptions"`
	TotalScore     totalScoreDTO    `json:"totalScore"`
	Feedback       string           `json:"feedback,omitempty"`
}

type analyzeResponse struct {
	Success  bool         `json:"success"`
	Analysis *analysisDTO `json:"analysis,omitempty"`
	Error    string       `json:"error,omitempty"`
}

func toRosterEntries(roster []model.Student) []rosterEntry {
	entries := make([]rosterEntry, len(roster))
	for i, s := range roster {
		entries[i] = rosterEntry{
			ID:                s.ID,
			FirstName:         s.FirstName,
			LastName:          s.LastName,
			ExternalStudentID: s.ExternalStudentID,
		}
	}
	return entries
}

func toRubricSteps(rubric []model.RubricStep) []rubricStepDTO {
	steps := make([]rubricStepDTO, len(rubric))
	for i, r := range rubric {
		steps[i] = rubricStepDTO{
			StepNumber:  r.StepNumber,
			Description: r.Description,
			Points:      r.Points,
		}
	}
	return steps
}

func (d *identificationDTO) toModel() model.IdentificationResult {
	return model.IdentificationResult{
		CodeDetected:       d.CodeDetected,
		CodePayload:        d.CodePayload,
		MatchedStudentID:   d.MatchedStudentID,
		MatchedStudentName: d.MatchedStudentName,
		MatchedQuestionID:  d.MatchedQuestionID,
		Confidence:         model.ParseConfidence(d.Confidence),
	}
}

func (d *analysisDTO) toModel() *model.AnalysisResult {
	result := &model.AnalysisResult{
		RubricScores:   make([]model.RubricScore, len(d.RubricScores)),
		Misconceptions: d.Misconceptions,
		TotalScore: model.TotalScore{
			Earned:     d.TotalScore.Earned,
			Possible:   d.TotalScore.Possible,
			Percentage: d.TotalScore.Percentage,
		},
		Feedback: d.Feedback,
	}
	for i, rs := range d.RubricScores {
		result.RubricScores[i] = model.RubricScore{
			Criterion: rs.Criterion,
			Score:     rs.Score,
			MaxScore:  rs.MaxScore,
			Feedback:  rs.Feedback,
		}
	}

	// Services occasionally return a percentage inconsistent with the
	// earned/possible pair; the pair is authoritative.
	result.TotalScore.Normalize()

	return result
}
