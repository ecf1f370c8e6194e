package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gradeflow/gradeflow/internal/model"
)

// rubricFile is the on-disk shape of a rubric definition.
type rubricFile struct {
	Steps []struct {
		StepNumber  int     `json:"stepNumber"`
		Description string  `json:"description"`
		Points      float64 `json:"points"`
	} `json:"steps"`
}

// LoadRubric reads a rubric definition from a JSON file. Steps must be
// numbered from 1 in order and carry positive point values.
func LoadRubric(path string) ([]model.RubricStep, error) {
	data, err := os.ReadFile(ExpandPath(path)) // #nosec G304 -- user-supplied rubric path
	if err != nil {
		return nil, fmt.Errorf("failed to read rubric file: %w", err)
	}

	var file rubricFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rubric file: %w", err)
	}

	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("rubric file %s defines no steps", path)
	}

	steps := make([]model.RubricStep, len(file.Steps))
	for i, s := range file.Steps {
		if s.StepNumber != i+1 {
			return nil, fmt.Errorf("rubric steps must be numbered in order from 1; step %d has number %d", i+1, s.StepNumber)
		}
		if s.Points <= 0 {
			return nil, fmt.Errorf("rubric step %d must have positive points", s.StepNumber)
		}
		steps[i] = model.RubricStep{
			StepNumber:  s.StepNumber,
			Description: s.Description,
			Points:      s.Points,
		}
	}

	return steps, nil
}
