package api

import (
	"encoding/json"
	"time"
)

// CategoryResult is the per-category slice of the analysis result.
type CategoryResult struct {
	TopCareers     []string           `json:"top_careers"`
	DominantTraits map[string]float64 `json:"dominant_traits"`
}

// SubjectRecommendations lists recommended core and elective subjects.
type SubjectRecommendations struct {
	Core      []string `json:"core"`
	Electives []string `json:"electives"`
}

// Result is the typed analysis response. The service's shape is validated
// at the boundary, so readers never need defensive access.
type Result struct {
	IndividualResults      map[string]CategoryResult `json:"individual_results"`
	SubjectRecommendations SubjectRecommendations    `json:"subject_recommendations"`
}

// Activity is a single generated hands-on activity. Only the first
// activity of a generation response is used downstream.
type Activity struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
}

// EvaluationScore is one scored dimension of an activity evaluation.
type EvaluationScore struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback,omitempty"`
}

// Evaluation is the typed activity evaluation. Overall is always present;
// Dimensions carries any additional per-dimension scores the service
// returned.
type Evaluation struct {
	Overall    EvaluationScore            `json:"overall"`
	Dimensions map[string]EvaluationScore `json:"-"`
}

// UnmarshalJSON splits the evaluation object into the fixed overall score
// and the remaining keyed dimensions.
func (e *Evaluation) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if overall, ok := raw["overall"]; ok {
		if err := json.Unmarshal(overall, &e.Overall); err != nil {
			return err
		}
		delete(raw, "overall")
	}
	e.Dimensions = make(map[string]EvaluationScore, len(raw))
	for k, v := range raw {
		var s EvaluationScore
		if err := json.Unmarshal(v, &s); err != nil {
			continue // non-score metadata keys are ignored
		}
		e.Dimensions[k] = s
	}
	return nil
}

// MarshalJSON restores the flat wire shape for snapshots and reports.
func (e Evaluation) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Dimensions)+1)
	out["overall"] = e.Overall
	for k, v := range e.Dimensions {
		out[k] = v
	}
	return json.Marshal(out)
}

// Report is a saved assessment report owned by the reports backend.
type Report struct {
	ID                string            `json:"_id"`
	AssessmentID      string            `json:"assessmentId"`
	Level             string            `json:"level"`
	Answers           map[string]string `json:"answers"`
	Results           *Result           `json:"results"`
	SelectedCareer    string            `json:"selectedCareer"`
	Activities        []Activity        `json:"activities"`
	EvaluationResults []Evaluation      `json:"evaluationResults"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// Profile is the authenticated user's profile. Only the display name is
// consumed; a fetch failure degrades to an empty name.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AnalyzeRequest is the analysis call payload. Responses maps category to
// questionID to the selected option token.
type AnalyzeRequest struct {
	UserID         string
	Responses      map[string]map[string]string
	AptitudeScores map[string]float64
}

// AptitudeScoreKeys are the five fixed aptitude score keys the analysis
// endpoint requires, all defaulted to zero by this client.
var AptitudeScoreKeys = []string{
	"Numerical_Aptitude",
	"Spatial_Aptitude",
	"Perceptual_Aptitude",
	"Abstract_Reasoning",
	"Verbal_Reasoning",
}

// MarshalJSON flattens the request into the service's wire shape:
// user_id, one <category>_responses object per category, and the fixed
// aptitude_scores block.
func (r AnalyzeRequest) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Responses)+2)
	out["user_id"] = r.UserID
	for cat, responses := range r.Responses {
		out[cat+"_responses"] = responses
	}
	scores := make(map[string]float64, len(AptitudeScoreKeys))
	for _, k := range AptitudeScoreKeys {
		scores[k] = r.AptitudeScores[k]
	}
	out["aptitude_scores"] = scores
	return json.Marshal(out)
}
