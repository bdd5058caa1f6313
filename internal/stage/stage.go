// Package stage models the coarse workflow phase of a guidance session
// as an explicit state machine. Every transition goes through Transition,
// which validates the guard for the requested move instead of leaving
// stage strings to be compared ad hoc.
package stage

import "fmt"

// Stage is a workflow phase of the guidance flow.
type Stage int

const (
	Dashboard Stage = iota
	Assessment
	Results
	Activity
	Evaluation
	Reports
)

var names = map[Stage]string{
	Dashboard:  "dashboard",
	Assessment: "assessment",
	Results:    "results",
	Activity:   "activity",
	Evaluation: "evaluation",
	Reports:    "reports",
}

// String returns the stable serialized name of the stage.
func (s Stage) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Parse converts a serialized stage name back to a Stage.
func Parse(s string) (Stage, error) {
	for st, n := range names {
		if n == s {
			return st, nil
		}
	}
	return Dashboard, fmt.Errorf("unknown stage %q", s)
}

// Transient reports whether the stage carries in-progress assessment
// state. Snapshots are only kept while the session is in a transient
// stage; dashboard and reports clear them.
func (s Stage) Transient() bool {
	return s != Dashboard && s != Reports
}

// Trigger is an event that may move the session to another stage.
type Trigger int

const (
	// TriggerStart begins a fresh assessment from the dashboard.
	TriggerStart Trigger = iota
	// TriggerAnalyzed fires when the assessment analysis call succeeds.
	TriggerAnalyzed
	// TriggerActivityReady fires when activity generation succeeds for a
	// selected career.
	TriggerActivityReady
	// TriggerEvaluated fires when the activity response evaluation succeeds.
	TriggerEvaluated
	// TriggerDashboard returns to the dashboard, dropping session state.
	TriggerDashboard
	// TriggerReports opens the saved-reports view.
	TriggerReports
)

// Guards carries the data-presence facts transitions are checked against.
type Guards struct {
	HasResult     bool
	HasCareer     bool
	HasEvaluation bool
}

// Transition validates and applies a trigger from the given stage. An
// illegal move returns an error and the unchanged stage.
func Transition(from Stage, t Trigger, g Guards) (Stage, error) {
	switch t {
	case TriggerStart:
		if from != Dashboard && from != Reports {
			return from, fmt.Errorf("cannot start assessment from %s", from)
		}
		return Assessment, nil

	case TriggerAnalyzed:
		if from != Assessment {
			return from, fmt.Errorf("cannot accept analysis result in %s", from)
		}
		if !g.HasResult {
			return from, fmt.Errorf("analysis produced no result")
		}
		return Results, nil

	case TriggerActivityReady:
		if from != Results {
			return from, fmt.Errorf("cannot accept activities in %s", from)
		}
		if !g.HasCareer {
			return from, fmt.Errorf("no career selected")
		}
		return Activity, nil

	case TriggerEvaluated:
		if from != Activity {
			return from, fmt.Errorf("cannot accept evaluation in %s", from)
		}
		return Evaluation, nil

	case TriggerDashboard:
		return Dashboard, nil

	case TriggerReports:
		return Reports, nil
	}

	return from, fmt.Errorf("unknown trigger %d", int(t))
}

// StepperReachable reports whether the stepper may jump directly to the
// target stage given the present data. This is a display guard only: it
// mirrors which prerequisite data already exists and mutates nothing.
func StepperReachable(target Stage, g Guards) bool {
	switch target {
	case Assessment:
		return true
	case Results:
		return g.HasResult
	case Activity:
		return g.HasCareer
	case Evaluation:
		return g.HasEvaluation
	}
	return false
}

// StepperStages lists the stages shown in the stepper, in order.
func StepperStages() []Stage {
	return []Stage{Assessment, Results, Activity, Evaluation}
}
