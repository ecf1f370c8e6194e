package scanapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gradeflow/gradeflow/internal/model"
)

// AnalysisMode values accepted by the analysis service.
const (
	ModeManual    = "manual"
	ModeAutomatic = "automatic"
)

// Config holds configuration for the HTTP service client.
type Config struct {
	BaseURL    string
	APIKey     string
	Mode       string
	PromptText string
	Timeout    time.Duration
}

// Client is the HTTP implementation of both service contracts.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	mode       string
	promptText string
}

// NewClient creates a new HTTP client for the scan services.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("scan service base URL is required")
	}

	mode := cfg.Mode
	if mode == "" {
		mode = ModeAutomatic
	}
	if mode != ModeManual && mode != ModeAutomatic {
		return nil, fmt.Errorf("invalid analysis mode: %s", mode)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		mode:       mode,
		promptText: cfg.PromptText,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// IdentifyWork asks the identification service to match a page image
// against the roster. A successful response with no identification is a
// legitimate "no match" and comes back with confidence None, not an error.
func (c *Client) IdentifyWork(ctx context.Context, image []byte, roster []model.Student) (model.IdentificationResult, error) {
	request := identifyRequest{
		Image:        base64.StdEncoding.EncodeToString(image),
		IdentifyOnly: true,
		Roster:       toRosterEntries(roster),
	}

	var response identifyResponse
	if err := c.post(ctx, "/identify", request, &response); err != nil {
		return model.IdentificationResult{}, err
	}

	if !response.Success {
		return model.IdentificationResult{}, fmt.Errorf("%w: %s", ErrServiceFailure, response.Error)
	}

	if response.Identification == nil {
		return model.IdentificationResult{Confidence: model.ConfidenceNone}, nil
	}

	return response.Identification.toModel(), nil
}

// AnalyzeWork asks the analysis service to grade a page image against the
// rubric.
func (c *Client) AnalyzeWork(ctx context.Context, image []byte, studentName string, rubric []model.RubricStep) (*model.AnalysisResult, error) {
	request := analyzeRequest{
		Image:       base64.StdEncoding.EncodeToString(image),
		Rubric:      toRubricSteps(rubric),
		StudentName: studentName,
		Mode:        c.mode,
		PromptText:  c.promptText,
	}

	var response analyzeResponse
	if err := c.post(ctx, "/analyze", request, &response); err != nil {
		return nil, err
	}

	if !response.Success {
		return nil, fmt.Errorf("%w: %s", ErrServiceFailure, response.Error)
	}

	if response.Analysis == nil {
		return nil, fmt.Errorf("%w: no analysis in response", ErrServiceFailure)
	}

	return response.Analysis.toModel(), nil
}

// post sends a JSON request and decodes the JSON response.
func (c *Client) post(ctx context.Context, path string, request, response any) error {
	jsonBody, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(jsonBody)))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("scan service error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, response); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
