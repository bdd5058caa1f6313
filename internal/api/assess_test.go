package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAssessmentPreservesCategoryOrder(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/generate_psychometric_assessment", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		// Keys deliberately out of alphabetical order.
		io.WriteString(w, `{"questions_by_category": {
			"orientation": [{"question": "O1", "options": ["A) x", "B) y"]}],
			"aptitude":    [{"id": "apt_custom", "question": "A1", "options": ["A) x"]}],
			"interest":    [{"question": "I1", "options": ["A) x"]}]
		}}`)
	}))
	defer server.Close()

	client := NewAssessmentClient(server.URL, time.Second)
	qs, err := client.GenerateAssessment(context.Background(), "10")
	require.NoError(t, err)

	assert.Equal(t, "10", gotBody["level"])
	assert.EqualValues(t, QuestionsPerCategory, gotBody["questions_per_category"])

	assert.Equal(t, []string{"orientation", "aptitude", "interest"}, qs.Categories)
	assert.Equal(t, "orientation_1", qs.Questions["orientation"][0].ID)
	assert.Equal(t, "apt_custom", qs.Questions["aptitude"][0].ID)
}

func TestGenerateAssessmentRejectsMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A question without options violates the response schema.
		io.WriteString(w, `{"questions_by_category": {"interest": [{"question": "I1"}]}}`)
	}))
	defer server.Close()

	client := NewAssessmentClient(server.URL, time.Second)
	_, err := client.GenerateAssessment(context.Background(), "12")
	require.Error(t, err)

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "/generate_psychometric_assessment", malformed.Endpoint)
}

func TestAnalyzeSendsWireShapeAndDecodesResult(t *testing.T) {
	var gotBody map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analyze_complete_assessment", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		io.WriteString(w, `{
			"individual_results": {
				"personality": {"top_careers": ["Engineer"], "dominant_traits": {"openness": 0.8}}
			},
			"subject_recommendations": {"core": ["Math"], "electives": ["Art"]}
		}`)
	}))
	defer server.Close()

	client := NewAssessmentClient(server.URL, time.Second)
	result, err := client.Analyze(context.Background(), AnalyzeRequest{
		UserID:    "user-1",
		Responses: map[string]map[string]string{"personality": {"p1": "A"}},
	})
	require.NoError(t, err)

	assert.Contains(t, gotBody, "user_id")
	assert.Contains(t, gotBody, "personality_responses")
	assert.Contains(t, gotBody, "aptitude_scores")

	var scores map[string]float64
	require.NoError(t, json.Unmarshal(gotBody["aptitude_scores"], &scores))
	require.Len(t, scores, len(AptitudeScoreKeys))
	for _, k := range AptitudeScoreKeys {
		assert.Zero(t, scores[k])
	}

	assert.Equal(t, []string{"Engineer"}, result.IndividualResults["personality"].TopCareers)
	assert.Equal(t, []string{"Math"}, result.SubjectRecommendations.Core)
}

func TestAnalyzeRejectsIncompleteResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Missing subject_recommendations.
		io.WriteString(w, `{"individual_results": {}}`)
	}))
	defer server.Close()

	client := NewAssessmentClient(server.URL, time.Second)
	_, err := client.Analyze(context.Background(), AnalyzeRequest{UserID: "u"})

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestEvaluateActivityPathAndDimensions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The service requires the trailing slash on this endpoint.
		require.Equal(t, "/evaluate_activity/", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "text", body["response_type"])
		assert.Equal(t, "", body["image_data"])

		io.WriteString(w, `{"evaluation": {
			"overall":    {"score": 82, "feedback": "solid"},
			"creativity": {"score": 70}
		}}`)
	}))
	defer server.Close()

	client := NewAssessmentClient(server.URL, time.Second)
	eval, err := client.EvaluateActivity(context.Background(), "act-1", "my answer", "Engineer", "10")
	require.NoError(t, err)

	assert.Equal(t, 82.0, eval.Overall.Score)
	assert.Equal(t, "solid", eval.Overall.Feedback)
	require.Contains(t, eval.Dimensions, "creativity")
	assert.Equal(t, 70.0, eval.Dimensions["creativity"].Score)
}

func TestStatusErrorCarriesServiceMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `{"error": "model overloaded"}`)
	}))
	defer server.Close()

	client := NewAssessmentClient(server.URL, time.Second)
	_, err := client.GenerateAssessment(context.Background(), "10")
	require.Error(t, err)

	var status *StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusBadGateway, status.Status)
	assert.Equal(t, "model overloaded", status.Message)
	assert.False(t, errors.Is(err, ErrUnauthorized))
}
