package scanapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradeflow/gradeflow/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)
	return client, server
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "http://localhost", Mode: "turbo"})
	assert.Error(t, err)

	client, err := NewClient(Config{BaseURL: "http://localhost/"})
	require.NoError(t, err)
	assert.Equal(t, ModeAutomatic, client.mode)
	assert.Equal(t, "http://localhost", client.baseURL)
}

func TestIdentifyWorkSuccess(t *testing.T) {
	var gotRequest identifyRequest
	var gotAuth string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/identify", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		_ = json.NewEncoder(w).Encode(identifyResponse{
			Success: true,
			Identification: &identificationDTO{
				CodeDetected:       false,
				MatchedStudentID:   "s1",
				MatchedStudentName: "Ada Lovelace",
				Confidence:         "Medium",
			},
		})
	})

	roster := []model.Student{{ID: "s1", FirstName: "Ada", LastName: "Lovelace", ExternalStudentID: "ext-1"}}
	result, err := client.IdentifyWork(context.Background(), []byte("page bytes"), roster)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.True(t, gotRequest.IdentifyOnly)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("page bytes")), gotRequest.Image)
	require.Len(t, gotRequest.Roster, 1)
	assert.Equal(t, "ext-1", gotRequest.Roster[0].ExternalStudentID)

	// Confidence strings are parsed case-insensitively.
	assert.Equal(t, model.ConfidenceMedium, result.Confidence)
	assert.Equal(t, "s1", result.MatchedStudentID)
}

func TestIdentifyWorkNoMatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(identifyResponse{Success: true})
	})

	// A successful response without an identification is a clean no-match.
	result, err := client.IdentifyWork(context.Background(), []byte("img"), nil)
	require.NoError(t, err)
	assert.Equal(t, model.ConfidenceNone, result.Confidence)
	assert.False(t, result.CodeDetected)
}

func TestIdentifyWorkServiceFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(identifyResponse{Success: false, Error: "image too blurry"})
	})

	_, err := client.IdentifyWork(context.Background(), []byte("img"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceFailure)
	assert.Contains(t, err.Error(), "image too blurry")
}

func TestIdentifyWorkHTTPError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := client.IdentifyWork(context.Background(), []byte("img"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestAnalyzeWorkSuccess(t *testing.T) {
	var gotRequest analyzeRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		_ = json.NewEncoder(w).Encode(analyzeResponse{
			Success: true,
			Analysis: &analysisDTO{
				RubricScores: []rubricScoreDTO{
					{Criterion: "Sets up the equation", Score: 3, MaxScore: 4},
					{Criterion: "Solves for x", Score: 6, MaxScore: 6},
				},
				Misconceptions: []string{"sign error"},
				// Stale percentage: the earned/possible pair wins.
				TotalScore: totalScoreDTO{Earned: 9, Possible: 10, Percentage: 42},
				Feedback:   "Check the sign on step one.",
			},
		})
	})

	rubric := []model.RubricStep{
		{StepNumber: 1, Description: "Sets up the equation", Points: 4},
		{StepNumber: 2, Description: "Solves for x", Points: 6},
	}

	result, err := client.AnalyzeWork(context.Background(), []byte("img"), "Ada Lovelace", rubric)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", gotRequest.StudentName)
	assert.Equal(t, ModeAutomatic, gotRequest.Mode)
	require.Len(t, gotRequest.Rubric, 2)
	assert.Equal(t, 2, gotRequest.Rubric[1].StepNumber)

	assert.Equal(t, 90, result.TotalScore.Percentage)
	assert.Equal(t, 9.0, result.TotalScore.Earned)
	require.Len(t, result.RubricScores, 2)
	assert.Equal(t, []string{"sign error"}, result.Misconceptions)
	assert.Equal(t, "Check the sign on step one.", result.Feedback)
}

func TestAnalyzeWorkServiceFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(analyzeResponse{Success: false, Error: "model overloaded"})
	})

	_, err := client.AnalyzeWork(context.Background(), []byte("img"), "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceFailure)
}

func TestAnalyzeWorkMissingAnalysis(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(analyzeResponse{Success: true})
	})

	_, err := client.AnalyzeWork(context.Background(), []byte("img"), "", nil)
	assert.ErrorIs(t, err, ErrServiceFailure)
}

func TestAnalyzeWorkUnreachableService(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server.Close()

	_, err := client.AnalyzeWork(context.Background(), []byte("img"), "", nil)
	assert.Error(t, err)
}
