package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/abhisek/disha/internal/assessment"
)

// Categories are the question categories requested from the generation
// endpoint, in the canonical order.
var Categories = []string{"personality", "orientation", "interest", "aptitude"}

// QuestionsPerCategory is the number of questions requested per category.
const QuestionsPerCategory = 20

// AssessmentClient talks to the assessment/AI backend. All business logic
// (generation, scoring, evaluation) lives behind it.
type AssessmentClient struct {
	c *httpClient
}

// NewAssessmentClient creates a client for the assessment service.
func NewAssessmentClient(baseURL string, timeout time.Duration) *AssessmentClient {
	return &AssessmentClient{c: newHTTPClient(baseURL, timeout)}
}

// GenerateAssessment requests a fresh question set for the grade level.
// Category order follows the response's own key order; duplicate or empty
// categories are rejected as malformed.
func (a *AssessmentClient) GenerateAssessment(ctx context.Context, level string) (*assessment.QuestionSet, error) {
	req := map[string]any{
		"level":                  level,
		"categories":             Categories,
		"questions_per_category": QuestionsPerCategory,
	}
	var resp struct {
		QuestionsByCategory json.RawMessage `json:"questions_by_category"`
	}
	if err := a.c.do(ctx, http.MethodPost, "/generate_psychometric_assessment", req, &resp, generateSchema); err != nil {
		return nil, err
	}

	categories, questions, err := parseQuestionsByCategory(resp.QuestionsByCategory)
	if err != nil {
		return nil, &MalformedResponseError{
			Endpoint: "/generate_psychometric_assessment",
			Content:  resp.QuestionsByCategory,
			Err:      err,
		}
	}

	qs, err := assessment.NewQuestionSet(categories, questions)
	if err != nil {
		return nil, &MalformedResponseError{
			Endpoint: "/generate_psychometric_assessment",
			Content:  resp.QuestionsByCategory,
			Err:      err,
		}
	}
	return qs, nil
}

// parseQuestionsByCategory decodes the category object while preserving
// its key order, which a plain map decode would lose.
func parseQuestionsByCategory(raw json.RawMessage) ([]string, map[string][]assessment.Question, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("read category object: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("questions_by_category is not an object")
	}

	var categories []string
	questions := make(map[string][]assessment.Question)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("read category name: %w", err)
		}
		category := keyTok.(string)

		var list []assessment.Question
		if err := dec.Decode(&list); err != nil {
			return nil, nil, fmt.Errorf("decode category %q: %w", category, err)
		}
		categories = append(categories, category)
		questions[category] = list
	}

	return categories, questions, nil
}

// Analyze submits the completed (or confirmed-partial) assessment for
// scoring and returns the typed result.
func (a *AssessmentClient) Analyze(ctx context.Context, req AnalyzeRequest) (*Result, error) {
	var result Result
	if err := a.c.do(ctx, http.MethodPost, "/analyze_complete_assessment", req, &result, analyzeSchema); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateActivities requests hands-on activities for the chosen career.
func (a *AssessmentClient) GenerateActivities(ctx context.Context, careerPath, classLevel, specificArea string) ([]Activity, error) {
	req := map[string]any{
		"career_path":   careerPath,
		"class_level":   classLevel,
		"specific_area": specificArea,
	}
	var resp struct {
		Activities []Activity `json:"activities"`
	}
	if err := a.c.do(ctx, http.MethodPost, "/generate_activities", req, &resp, activitiesSchema); err != nil {
		return nil, err
	}
	return resp.Activities, nil
}

// EvaluateActivity submits the learner's free-text activity response.
// Only text responses are supported; the image slot is sent empty.
func (a *AssessmentClient) EvaluateActivity(ctx context.Context, activityID, response, careerPath, classLevel string) (*Evaluation, error) {
	req := map[string]any{
		"activity_id":   activityID,
		"response":      response,
		"career_path":   careerPath,
		"class_level":   classLevel,
		"response_type": "text",
		"image_data":    "",
	}
	var resp struct {
		Evaluation Evaluation `json:"evaluation"`
	}
	if err := a.c.do(ctx, http.MethodPost, "/evaluate_activity/", req, &resp, evaluateSchema); err != nil {
		return nil, err
	}
	return &resp.Evaluation, nil
}
