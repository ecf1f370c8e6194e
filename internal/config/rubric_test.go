package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradeflow/gradeflow/internal/model"
)

func writeRubric(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rubric.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadRubric(t *testing.T) {
	path := writeRubric(t, `{
		"steps": [
			{"stepNumber": 1, "description": "Sets up the equation", "points": 4},
			{"stepNumber": 2, "description": "Solves for x", "points": 6}
		]
	}`)

	steps, err := LoadRubric(path)
	require.NoError(t, err)

	assert.Equal(t, []model.RubricStep{
		{StepNumber: 1, Description: "Sets up the equation", Points: 4},
		{StepNumber: 2, Description: "Solves for x", Points: 6},
	}, steps)
}

func TestLoadRubricErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid JSON", content: `{steps: [}`},
		{name: "no steps", content: `{"steps": []}`},
		{name: "numbering gap", content: `{"steps": [
			{"stepNumber": 1, "description": "a", "points": 1},
			{"stepNumber": 3, "description": "b", "points": 1}
		]}`},
		{name: "not starting at 1", content: `{"steps": [
			{"stepNumber": 2, "description": "a", "points": 1}
		]}`},
		{name: "zero points", content: `{"steps": [
			{"stepNumber": 1, "description": "a", "points": 0}
		]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRubric(writeRubric(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadRubricMissingFile(t *testing.T) {
	_, err := LoadRubric(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
