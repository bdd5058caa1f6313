package guidance

import (
	"github.com/abhisek/disha/internal/api"
	"github.com/abhisek/disha/internal/assessment"
)

// SignedOutMsg tells the app model the auth token is gone, either
// because the user signed out or because the backend answered 401.
type SignedOutMsg struct{}

// reportsLoadedMsg is sent when the saved-reports fetch settles.
type reportsLoadedMsg struct {
	Reports []api.Report
	Err     error
}

// questionsReadyMsg is sent when question generation settles.
type questionsReadyMsg struct {
	Set *assessment.QuestionSet
	Err error
}

// analyzedMsg is sent when the assessment analysis call settles.
type analyzedMsg struct {
	Result *api.Result
	Err    error
}

// activitiesReadyMsg is sent when activity generation settles.
type activitiesReadyMsg struct {
	Activities []api.Activity
	Err        error
}

// evaluatedMsg is sent when the activity evaluation call settles.
type evaluatedMsg struct {
	Evaluation *api.Evaluation
	Err        error
}

// reportSavedMsg is sent when the save-report call settles.
type reportSavedMsg struct {
	Err error
}

// reportDeletedMsg is sent when a report deletion settles.
type reportDeletedMsg struct {
	Err error
}

// reportExportedMsg is sent when a workbook export settles.
type reportExportedMsg struct {
	Path string
	Err  error
}
