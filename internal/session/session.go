// Package session implements the assessment session controller: one
// Session value carries everything the guidance flow mutates, and the
// operations here keep the answer ledger, navigation cursor, submission
// gate, and stage machine consistent with each other.
package session

import (
	"math"

	"github.com/google/uuid"

	"github.com/abhisek/disha/internal/api"
	"github.com/abhisek/disha/internal/assessment"
	"github.com/abhisek/disha/internal/stage"
)

// Session is the full in-progress guidance session state.
type Session struct {
	// ID is the per-assessment identifier sent as user_id to the
	// analysis endpoint.
	ID string

	Level  string
	Set    *assessment.QuestionSet
	Ledger *assessment.Ledger
	Cursor assessment.Cursor
	Gate   assessment.Gate
	Stage  stage.Stage

	Result         *api.Result
	SelectedCareer string
	Activities     []api.Activity
	UserResponse   string
	Evaluation     *api.Evaluation
}

// New creates an empty session on the dashboard.
func New() *Session {
	return &Session{
		ID:     uuid.New().String(),
		Ledger: assessment.NewLedger(),
		Stage:  stage.Dashboard,
	}
}

// Guards reports which prerequisite data exists, for stage transitions
// and the stepper's display guard.
func (s *Session) Guards() stage.Guards {
	return stage.Guards{
		HasResult:     s.Result != nil,
		HasCareer:     s.SelectedCareer != "",
		HasEvaluation: s.Evaluation != nil,
	}
}

// StartAssessment resets all assessment sub-state and moves to the
// assessment stage. A fresh assessment gets a fresh ID.
func (s *Session) StartAssessment() error {
	next, err := stage.Transition(s.Stage, stage.TriggerStart, s.Guards())
	if err != nil {
		return err
	}
	s.ID = uuid.New().String()
	s.Level = ""
	s.Set = nil
	s.Ledger = assessment.NewLedger()
	s.Cursor = assessment.Cursor{}
	s.Gate.Reset()
	s.Result = nil
	s.SelectedCareer = ""
	s.Activities = nil
	s.UserResponse = ""
	s.Evaluation = nil
	s.Stage = next
	return nil
}

// LoadQuestions installs a freshly generated question set and rewinds the
// cursor, clearing any prior answers.
func (s *Session) LoadQuestions(qs *assessment.QuestionSet) {
	s.Set = qs
	s.Ledger = assessment.NewLedger()
	s.Cursor = qs.Start()
	s.Gate.Reset()
	s.Result = nil
	s.SelectedCareer = ""
	s.Activities = nil
	s.UserResponse = ""
	s.Evaluation = nil
}

// SelectAnswer records (or toggles off) the current question's answer.
func (s *Session) SelectAnswer(option string) {
	if s.Set.Empty() || !s.Set.Valid(s.Cursor) {
		return
	}
	s.Ledger.Select(s.Set.At(s.Cursor).ID, option)
}

// ClearAnswer explicitly deselects the current question.
func (s *Session) ClearAnswer() {
	if s.Set.Empty() || !s.Set.Valid(s.Cursor) {
		return
	}
	s.Ledger.Clear(s.Set.At(s.Cursor).ID)
}

// SkipCurrent marks the current question skipped and advances.
func (s *Session) SkipCurrent() {
	if s.Set.Empty() || !s.Set.Valid(s.Cursor) {
		return
	}
	s.Ledger.Skip(s.Set.At(s.Cursor).ID)
	s.Cursor = s.Set.Next(s.Cursor)
}

// Next moves the cursor forward; no-op at the last question.
func (s *Session) Next() {
	if !s.Set.Empty() {
		s.Cursor = s.Set.Next(s.Cursor)
	}
}

// Previous moves the cursor back; no-op at the first question.
func (s *Session) Previous() {
	if !s.Set.Empty() {
		s.Cursor = s.Set.Previous(s.Cursor)
	}
}

// JumpTo sets the cursor unconditionally, for the question-grid
// navigator. Out-of-bounds targets are ignored.
func (s *Session) JumpTo(category string, index int) {
	c := assessment.Cursor{Category: category, Index: index}
	if s.Set.Valid(c) {
		s.Cursor = c
	}
}

// RequestSubmit runs the submission gate. True means the analysis call
// should be dispatched now; false means the confirmation prompt is up.
func (s *Session) RequestSubmit() bool {
	return s.Gate.RequestSubmit(s.Ledger.AnsweredCount(), s.Set.Total())
}

// AnalysisRequest builds the analyze payload from the current answers.
// Answers are grouped per category using each question's resolved ID;
// unanswered questions are omitted.
func (s *Session) AnalysisRequest() api.AnalyzeRequest {
	responses := make(map[string]map[string]string, len(s.Set.Categories))
	for _, cat := range s.Set.Categories {
		responses[cat] = make(map[string]string)
		for _, q := range s.Set.Questions[cat] {
			if v, ok := s.Ledger.Answer(q.ID); ok {
				responses[cat][q.ID] = v
			}
		}
	}
	return api.AnalyzeRequest{
		UserID:    s.ID,
		Responses: responses,
	}
}

// ApplyResult installs the analysis result and advances to results.
func (s *Session) ApplyResult(r *api.Result) error {
	s.Result = r
	next, err := stage.Transition(s.Stage, stage.TriggerAnalyzed, s.Guards())
	if err != nil {
		s.Result = nil
		return err
	}
	s.Gate.Reset()
	s.Stage = next
	return nil
}

// SelectCareer picks a career from the result for activity generation.
func (s *Session) SelectCareer(career string) {
	s.SelectedCareer = career
}

// ApplyActivities installs generated activities and advances to activity.
func (s *Session) ApplyActivities(activities []api.Activity) error {
	next, err := stage.Transition(s.Stage, stage.TriggerActivityReady, s.Guards())
	if err != nil {
		return err
	}
	s.Activities = activities
	s.Stage = next
	return nil
}

// ApplyEvaluation installs the evaluation and advances to evaluation.
func (s *Session) ApplyEvaluation(e *api.Evaluation) error {
	next, err := stage.Transition(s.Stage, stage.TriggerEvaluated, s.Guards())
	if err != nil {
		return err
	}
	s.Evaluation = e
	s.Stage = next
	return nil
}

// GoDashboard returns to the dashboard and drops all assessment
// sub-state. The persisted snapshot is cleared by the next Sync.
func (s *Session) GoDashboard() {
	next, _ := stage.Transition(s.Stage, stage.TriggerDashboard, s.Guards())
	s.Stage = next
	s.Level = ""
	s.Set = nil
	s.Ledger = assessment.NewLedger()
	s.Cursor = assessment.Cursor{}
	s.Gate.Reset()
	s.Result = nil
	s.SelectedCareer = ""
	s.Activities = nil
	s.UserResponse = ""
	s.Evaluation = nil
}

// GoReports opens the saved-reports view. In-memory session state is
// kept, but the snapshot is cleared by the next Sync.
func (s *Session) GoReports() {
	next, _ := stage.Transition(s.Stage, stage.TriggerReports, s.Guards())
	s.Stage = next
}

// JumpToStage honors a stepper jump when the display guard allows it.
func (s *Session) JumpToStage(target stage.Stage) bool {
	if !stage.StepperReachable(target, s.Guards()) {
		return false
	}
	s.Stage = target
	return true
}

// Report assembles the save payload for the reports backend.
func (s *Session) Report() *api.Report {
	var evaluations []api.Evaluation
	if s.Evaluation != nil {
		evaluations = []api.Evaluation{*s.Evaluation}
	}
	return &api.Report{
		AssessmentID:      s.ID,
		Level:             s.Level,
		Answers:           s.Ledger.Answers(),
		Results:           s.Result,
		SelectedCareer:    s.SelectedCareer,
		Activities:        s.Activities,
		EvaluationResults: evaluations,
	}
}

// MatchScore ranks how strongly a career shows up across the result's
// per-category top-career lists. Each category contributes up to 25
// points, weighted by the career's rank within that list.
func (s *Session) MatchScore(career string) int {
	if s.Result == nil {
		return 0
	}
	score := 0.0
	for _, cat := range api.Categories {
		top := s.Result.IndividualResults[cat].TopCareers
		for i, c := range top {
			if c == career {
				score += float64(len(top)-i) / float64(len(top)) * 25
				break
			}
		}
	}
	return int(math.Round(score))
}
