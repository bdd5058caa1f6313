package stage

import "testing"

func TestStringParseRoundTrip(t *testing.T) {
	stages := []Stage{Dashboard, Assessment, Results, Activity, Evaluation, Reports}
	for _, s := range stages {
		parsed, err := Parse(s.String())
		if err != nil {
			t.Fatalf("parse %q: %v", s.String(), err)
		}
		if parsed != s {
			t.Errorf("parse(%q) = %v, want %v", s.String(), parsed, s)
		}
	}

	if _, err := Parse("bogus"); err == nil {
		t.Error("expected error for unknown stage name")
	}
}

func TestTransient(t *testing.T) {
	for s, want := range map[Stage]bool{
		Dashboard:  false,
		Assessment: true,
		Results:    true,
		Activity:   true,
		Evaluation: true,
		Reports:    false,
	} {
		if got := s.Transient(); got != want {
			t.Errorf("%s.Transient() = %v, want %v", s, got, want)
		}
	}
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		from    Stage
		trigger Trigger
		guards  Guards
		want    Stage
		wantErr bool
	}{
		{"start from dashboard", Dashboard, TriggerStart, Guards{}, Assessment, false},
		{"start from reports", Reports, TriggerStart, Guards{}, Assessment, false},
		{"start mid-assessment rejected", Assessment, TriggerStart, Guards{}, Assessment, true},
		{"analyzed with result", Assessment, TriggerAnalyzed, Guards{HasResult: true}, Results, false},
		{"analyzed without result rejected", Assessment, TriggerAnalyzed, Guards{}, Assessment, true},
		{"analyzed outside assessment rejected", Results, TriggerAnalyzed, Guards{HasResult: true}, Results, true},
		{"activities with career", Results, TriggerActivityReady, Guards{HasResult: true, HasCareer: true}, Activity, false},
		{"activities without career rejected", Results, TriggerActivityReady, Guards{HasResult: true}, Results, true},
		{"activities outside results rejected", Assessment, TriggerActivityReady, Guards{HasCareer: true}, Assessment, true},
		{"evaluated from activity", Activity, TriggerEvaluated, Guards{}, Evaluation, false},
		{"evaluated outside activity rejected", Results, TriggerEvaluated, Guards{}, Results, true},
		{"dashboard always allowed", Evaluation, TriggerDashboard, Guards{}, Dashboard, false},
		{"reports always allowed", Assessment, TriggerReports, Guards{}, Reports, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.from, tt.trigger, tt.guards)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if got != tt.from {
					t.Errorf("failed transition moved stage to %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStepperReachable(t *testing.T) {
	g := Guards{HasResult: true}

	if !StepperReachable(Assessment, Guards{}) {
		t.Error("assessment must always be reachable")
	}
	if !StepperReachable(Results, g) {
		t.Error("results reachable once a result exists")
	}
	if StepperReachable(Activity, g) {
		t.Error("activity unreachable without a selected career")
	}
	if StepperReachable(Evaluation, g) {
		t.Error("evaluation unreachable without an evaluation")
	}
	if StepperReachable(Dashboard, Guards{HasResult: true, HasCareer: true, HasEvaluation: true}) {
		t.Error("dashboard is not a stepper target")
	}
}
