package model

// MisconceptionCount pairs a verbatim misconception string with how many
// completed items reported it.
type MisconceptionCount struct {
	Text  string
	Count int
}

// ScoreDistribution counts completed items per fixed 10-wide score bucket.
type ScoreDistribution struct {
	Below60   int `json:"0-59"`
	Sixties   int `json:"60-69"`
	Seventies int `json:"70-79"`
	Eighties  int `json:"80-89"`
	Nineties  int `json:"90-100"`
}

// BatchSummary holds class-level statistics derived from completed items.
// It is recomputed on demand and never persisted.
type BatchSummary struct {
	TotalStudents        int
	AverageScore         int
	HighestScore         int
	LowestScore          int
	PassRate             int
	CommonMisconceptions []MisconceptionCount
	ScoreDistribution    ScoreDistribution
}
