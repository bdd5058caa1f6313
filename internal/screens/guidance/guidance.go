// Package guidance implements the main guidance flow screen: the
// dashboard, the psychometric assessment, analysis results, the
// hands-on activity, its evaluation, and the saved-reports list. One
// screen owns the whole flow because every stage mutates the same
// session.
package guidance

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/disha/internal/api"
	"github.com/abhisek/disha/internal/assessment"
	"github.com/abhisek/disha/internal/export"
	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screens/reportdetail"
	sess "github.com/abhisek/disha/internal/session"
	"github.com/abhisek/disha/internal/stage"
	"github.com/abhisek/disha/internal/store"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
)

// levels are the grade levels an assessment can be generated for.
var levels = []string{"10", "12"}

// GuidanceScreen implements screen.Screen for the guidance flow.
type GuidanceScreen struct {
	assess  *api.AssessmentClient
	reports *api.ReportsClient
	st      *store.Store

	sess *sess.Session

	menu        components.Menu
	levelCursor int
	opts        components.OptionList
	gridOpen    bool
	gridIdx     int
	careers     []string
	careerIdx   int
	response    textarea.Model
	reportsList []api.Report
	reportIdx   int

	busy     bool
	busyText string
	errMsg   string
	notice   string
}

var _ screen.Screen = (*GuidanceScreen)(nil)
var _ screen.KeyHintProvider = (*GuidanceScreen)(nil)

// New creates the guidance screen around an existing session, which may
// have been restored from a snapshot mid-flow.
func New(assess *api.AssessmentClient, reports *api.ReportsClient, st *store.Store, s *sess.Session) *GuidanceScreen {
	ta := textarea.New()
	ta.Placeholder = "Describe how you would approach this activity..."
	ta.SetValue(s.UserResponse)

	g := &GuidanceScreen{
		assess:   assess,
		reports:  reports,
		st:       st,
		sess:     s,
		response: ta,
	}
	g.menu = g.dashboardMenu()
	g.refreshOptions()
	g.computeCareers()
	return g
}

func (g *GuidanceScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{g.loadReports()}
	if g.sess.Stage == stage.Activity {
		cmds = append(cmds, g.response.Focus())
	}
	return tea.Batch(cmds...)
}

// UnsavedWork reports whether quitting now would abandon an in-flight
// assessment. The app asks before honoring Ctrl+C when it does.
func (g *GuidanceScreen) UnsavedWork() bool {
	return g.sess.Stage.Transient()
}

func (g *GuidanceScreen) Title() string {
	switch g.sess.Stage {
	case stage.Dashboard:
		return "Dashboard"
	case stage.Assessment:
		return "Assessment"
	case stage.Results:
		return "Your Results"
	case stage.Activity:
		return "Career Activity"
	case stage.Evaluation:
		return "Evaluation"
	case stage.Reports:
		return "Saved Reports"
	}
	return "Guidance"
}

func (g *GuidanceScreen) KeyHints() []layout.KeyHint {
	if g.busy {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	if g.sess.Gate.State() == assessment.GatePending {
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit anyway"},
			{Key: "N", Description: "Keep answering"},
		}
	}
	if g.gridOpen {
		return []layout.KeyHint{
			{Key: "←→↑↓", Description: "Move"},
			{Key: "Enter", Description: "Jump"},
			{Key: "G/Esc", Description: "Close"},
		}
	}

	switch g.sess.Stage {
	case stage.Dashboard:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case stage.Assessment:
		if g.sess.Set.Empty() {
			return []layout.KeyHint{
				{Key: "↑↓", Description: "Grade"},
				{Key: "Enter", Description: "Start"},
				{Key: "Esc", Description: "Dashboard"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Select/Deselect"},
			{Key: "←→", Description: "Prev/Next"},
			{Key: "S", Description: "Skip"},
			{Key: "G", Description: "Grid"},
			{Key: "Ctrl+S", Description: "Submit"},
		}
	case stage.Results:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Career"},
			{Key: "Enter", Description: "Try activity"},
			{Key: "Ctrl+S", Description: "Save report"},
			{Key: "Esc", Description: "Dashboard"},
		}
	case stage.Activity:
		return []layout.KeyHint{
			{Key: "Ctrl+D", Description: "Submit response"},
			{Key: "Esc", Description: "Dashboard"},
		}
	case stage.Evaluation:
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Save report"},
			{Key: "Esc", Description: "Dashboard"},
		}
	case stage.Reports:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Open"},
			{Key: "X", Description: "Export"},
			{Key: "D", Description: "Delete"},
			{Key: "Esc", Description: "Dashboard"},
		}
	}
	return nil
}

func (g *GuidanceScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsLoadedMsg:
		// Read failures degrade to an empty list; the dashboard just
		// shows no history.
		if msg.Err == nil {
			g.reportsList = msg.Reports
			if g.reportIdx >= len(g.reportsList) {
				g.reportIdx = 0
			}
		} else if unauthorized(msg.Err) {
			return g, signOut
		}
		return g, nil

	case questionsReadyMsg:
		g.busy = false
		if msg.Err != nil {
			g.errMsg = "Could not generate the assessment. Press Enter to retry."
			return g, nil
		}
		g.sess.LoadQuestions(msg.Set)
		g.refreshOptions()
		g.syncSnapshot()
		return g, nil

	case analyzedMsg:
		g.busy = false
		g.sess.Gate.Reset()
		if msg.Err != nil {
			g.errMsg = "Failed to submit the assessment. Please try again."
			return g, nil
		}
		if err := g.sess.ApplyResult(msg.Result); err != nil {
			g.errMsg = err.Error()
			return g, nil
		}
		g.computeCareers()
		g.careerIdx = 0
		g.syncSnapshot()
		return g, nil

	case activitiesReadyMsg:
		g.busy = false
		if msg.Err != nil {
			g.errMsg = "Could not generate activities for this career."
			return g, nil
		}
		if err := g.sess.ApplyActivities(msg.Activities); err != nil {
			g.errMsg = err.Error()
			return g, nil
		}
		g.response.SetValue("")
		g.syncSnapshot()
		return g, g.response.Focus()

	case evaluatedMsg:
		g.busy = false
		if msg.Err != nil {
			g.errMsg = "Could not evaluate your response. Please try again."
			return g, nil
		}
		if err := g.sess.ApplyEvaluation(msg.Evaluation); err != nil {
			g.errMsg = err.Error()
			return g, nil
		}
		g.syncSnapshot()
		return g, nil

	case reportSavedMsg:
		g.busy = false
		if msg.Err != nil {
			if unauthorized(msg.Err) {
				return g, signOut
			}
			g.errMsg = "Failed to save the report."
			return g, nil
		}
		g.notice = "Report saved."
		return g, g.loadReports()

	case reportDeletedMsg:
		g.busy = false
		if msg.Err != nil {
			if unauthorized(msg.Err) {
				return g, signOut
			}
			g.errMsg = "Failed to delete the report."
			return g, nil
		}
		return g, g.loadReports()

	case reportExportedMsg:
		if msg.Err != nil {
			if unauthorized(msg.Err) {
				return g, signOut
			}
			g.errMsg = "Failed to export the report."
			return g, nil
		}
		g.notice = "Exported to " + msg.Path
		return g, nil

	case tea.KeyMsg:
		return g.handleKey(msg)
	}

	if g.sess.Stage == stage.Activity && !g.busy {
		var cmd tea.Cmd
		g.response, cmd = g.response.Update(msg)
		return g, cmd
	}

	return g, nil
}

func (g *GuidanceScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// A blocking error banner swallows the next key.
	if g.errMsg != "" {
		g.errMsg = ""
		return g, nil
	}
	if g.busy {
		return g, nil
	}
	g.notice = ""

	// Partial-submit confirmation outranks everything else.
	if g.sess.Gate.State() == assessment.GatePending {
		switch key {
		case "y", "Y":
			if g.sess.Gate.Confirm() {
				return g, g.submitAssessment()
			}
		case "n", "N", "esc":
			g.sess.Gate.Decline()
		}
		return g, nil
	}

	switch g.sess.Stage {
	case stage.Dashboard:
		return g.keyDashboard(msg)
	case stage.Assessment:
		return g.keyAssessment(msg, key)
	case stage.Results:
		return g.keyResults(key)
	case stage.Activity:
		return g.keyActivity(msg, key)
	case stage.Evaluation:
		return g.keyEvaluation(key)
	case stage.Reports:
		return g.keyReports(key)
	}
	return g, nil
}

func (g *GuidanceScreen) keyDashboard(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	g.menu, cmd = g.menu.Update(msg)
	return g, cmd
}

func (g *GuidanceScreen) dashboardMenu() components.Menu {
	return components.NewMenu([]components.MenuItem{
		{Label: "Start assessment", Action: func() tea.Cmd {
			if err := g.sess.StartAssessment(); err != nil {
				g.errMsg = err.Error()
				return nil
			}
			g.levelCursor = 0
			g.syncSnapshot()
			return nil
		}},
		{Label: "Saved reports", Action: func() tea.Cmd {
			g.sess.GoReports()
			g.reportIdx = 0
			g.syncSnapshot()
			return g.loadReports()
		}},
		{Label: "Sign out", Action: func() tea.Cmd {
			g.st.PurgeToken()
			_ = g.st.ClearCurrent(context.Background())
			return signOut
		}},
	})
}

func (g *GuidanceScreen) keyAssessment(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	// Grade selection comes before any questions exist.
	if g.sess.Set.Empty() {
		switch key {
		case "up", "k":
			if g.levelCursor > 0 {
				g.levelCursor--
			}
		case "down", "j":
			if g.levelCursor < len(levels)-1 {
				g.levelCursor++
			}
		case "enter":
			g.sess.Level = levels[g.levelCursor]
			return g, g.generateQuestions()
		case "esc":
			g.goDashboard()
		}
		return g, nil
	}

	if g.gridOpen {
		return g.keyGrid(key)
	}

	switch key {
	case "up", "k", "down", "j":
		var cmd tea.Cmd
		g.opts, cmd = g.opts.Update(msg)
		return g, cmd
	case "enter", " ":
		q := g.sess.Set.At(g.sess.Cursor)
		if g.opts.Cursor >= 0 && g.opts.Cursor < len(q.Options) {
			g.sess.SelectAnswer(q.Options[g.opts.Cursor])
			g.refreshOptions()
			g.syncSnapshot()
		}
	case "c":
		g.sess.ClearAnswer()
		g.refreshOptions()
		g.syncSnapshot()
	case "s":
		g.sess.SkipCurrent()
		g.refreshOptions()
		g.syncSnapshot()
	case "left", "h":
		g.sess.Previous()
		g.refreshOptions()
		g.syncSnapshot()
	case "right", "l", "n":
		if g.sess.Set.IsLast(g.sess.Cursor) {
			return g.requestSubmit()
		}
		g.sess.Next()
		g.refreshOptions()
		g.syncSnapshot()
	case "g":
		g.gridOpen = true
		g.gridIdx = g.linearIndex(g.sess.Cursor)
	case "ctrl+s":
		return g.requestSubmit()
	case "esc":
		g.goDashboard()
	default:
		if target, ok := stepperTarget(key); ok {
			g.jumpStage(target)
		}
	}
	return g, nil
}

// stepperTarget maps the digit keys to stepper stages.
func stepperTarget(key string) (stage.Stage, bool) {
	switch key {
	case "1":
		return stage.Assessment, true
	case "2":
		return stage.Results, true
	case "3":
		return stage.Activity, true
	case "4":
		return stage.Evaluation, true
	}
	return stage.Dashboard, false
}

func (g *GuidanceScreen) keyGrid(key string) (screen.Screen, tea.Cmd) {
	total := g.sess.Set.Total()
	switch key {
	case "left", "h":
		if g.gridIdx > 0 {
			g.gridIdx--
		}
	case "right", "l":
		if g.gridIdx < total-1 {
			g.gridIdx++
		}
	case "up", "k":
		if g.gridIdx-gridColumns >= 0 {
			g.gridIdx -= gridColumns
		}
	case "down", "j":
		if g.gridIdx+gridColumns < total {
			g.gridIdx += gridColumns
		}
	case "enter":
		c := g.cursorAt(g.gridIdx)
		g.sess.JumpTo(c.Category, c.Index)
		g.refreshOptions()
		g.gridOpen = false
		g.syncSnapshot()
	case "g", "esc":
		g.gridOpen = false
	}
	return g, nil
}

func (g *GuidanceScreen) keyResults(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		if g.careerIdx > 0 {
			g.careerIdx--
		}
	case "down", "j":
		if g.careerIdx < len(g.careers)-1 {
			g.careerIdx++
		}
	case "enter":
		if len(g.careers) == 0 {
			return g, nil
		}
		g.sess.SelectCareer(g.careers[g.careerIdx])
		g.syncSnapshot()
		return g, g.generateActivities()
	case "ctrl+s":
		return g, g.saveReport()
	case "esc":
		g.goDashboard()
	default:
		if target, ok := stepperTarget(key); ok {
			g.jumpStage(target)
		}
	}
	return g, nil
}

func (g *GuidanceScreen) keyActivity(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "ctrl+d":
		return g, g.submitResponse()
	case "esc":
		g.goDashboard()
		return g, nil
	}
	var cmd tea.Cmd
	g.response, cmd = g.response.Update(msg)
	g.sess.UserResponse = g.response.Value()
	g.syncSnapshot()
	return g, cmd
}

func (g *GuidanceScreen) keyEvaluation(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "ctrl+s":
		return g, g.saveReport()
	case "esc", "enter":
		g.goDashboard()
	default:
		if target, ok := stepperTarget(key); ok {
			g.jumpStage(target)
		}
	}
	return g, nil
}

func (g *GuidanceScreen) keyReports(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		if g.reportIdx > 0 {
			g.reportIdx--
		}
	case "down", "j":
		if g.reportIdx < len(g.reportsList)-1 {
			g.reportIdx++
		}
	case "enter":
		if len(g.reportsList) == 0 {
			return g, nil
		}
		r := g.reportsList[g.reportIdx]
		detail := reportdetail.New(g.reports, r.ID)
		return g, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
	case "x":
		if len(g.reportsList) == 0 {
			return g, nil
		}
		return g, g.exportReport(g.reportsList[g.reportIdx])
	case "d":
		if len(g.reportsList) == 0 {
			return g, nil
		}
		return g, g.deleteReport(g.reportsList[g.reportIdx].ID)
	case "esc":
		g.goDashboard()
	}
	return g, nil
}

// requestSubmit runs the gate; an incomplete assessment shows the
// confirmation prompt instead of submitting.
func (g *GuidanceScreen) requestSubmit() (screen.Screen, tea.Cmd) {
	if g.sess.RequestSubmit() {
		return g, g.submitAssessment()
	}
	return g, nil
}

func (g *GuidanceScreen) goDashboard() {
	g.sess.GoDashboard()
	g.gridOpen = false
	g.menu = g.dashboardMenu()
	g.syncSnapshot()
}

func (g *GuidanceScreen) jumpStage(target stage.Stage) {
	if g.sess.JumpToStage(target) {
		g.refreshOptions()
		g.syncSnapshot()
	}
}

// refreshOptions rebuilds the option list for the question under the
// cursor.
func (g *GuidanceScreen) refreshOptions() {
	if g.sess.Set.Empty() || !g.sess.Set.Valid(g.sess.Cursor) {
		g.opts = components.OptionList{ChosenIndex: -1}
		return
	}
	q := g.sess.Set.At(g.sess.Cursor)
	opts := components.NewOptionList(q.Text, q.Options)
	opts.Skipped = g.sess.Ledger.IsSkipped(q.ID)
	if chosen, ok := g.sess.Ledger.Answer(q.ID); ok {
		for i, opt := range q.Options {
			if assessment.OptionToken(opt) == chosen {
				opts.ChosenIndex = i
				opts.Cursor = i
				break
			}
		}
	}
	g.opts = opts
}

// computeCareers builds the ranked career list the results stage offers:
// the distinct top-3 careers from orientation, interest, and
// personality, in that order.
func (g *GuidanceScreen) computeCareers() {
	g.careers = nil
	if g.sess.Result == nil {
		return
	}
	seen := make(map[string]bool)
	for _, cat := range []string{"orientation", "interest", "personality"} {
		top := g.sess.Result.IndividualResults[cat].TopCareers
		if len(top) > 3 {
			top = top[:3]
		}
		for _, c := range top {
			if !seen[c] {
				seen[c] = true
				g.careers = append(g.careers, c)
			}
		}
	}
	if g.sess.SelectedCareer != "" {
		for i, c := range g.careers {
			if c == g.sess.SelectedCareer {
				g.careerIdx = i
			}
		}
	}
}

// linearIndex flattens a cursor to its overall question number.
func (g *GuidanceScreen) linearIndex(c assessment.Cursor) int {
	idx := 0
	for _, cat := range g.sess.Set.Categories {
		if cat == c.Category {
			return idx + c.Index
		}
		idx += len(g.sess.Set.Questions[cat])
	}
	return 0
}

// cursorAt is the inverse of linearIndex.
func (g *GuidanceScreen) cursorAt(idx int) assessment.Cursor {
	for _, cat := range g.sess.Set.Categories {
		n := len(g.sess.Set.Questions[cat])
		if idx < n {
			return assessment.Cursor{Category: cat, Index: idx}
		}
		idx -= n
	}
	return g.sess.Set.Start()
}

// syncSnapshot persists or clears the snapshot to match the session.
func (g *GuidanceScreen) syncSnapshot() {
	ctx := context.Background()
	_ = g.sess.Sync(ctx, g.st, g.st.Token() != "")
	_ = g.st.SetActiveStage(ctx, g.sess.Stage.String())
}

func (g *GuidanceScreen) generateQuestions() tea.Cmd {
	g.busy = true
	g.busyText = "Generating your assessment..."
	level := g.sess.Level
	return func() tea.Msg {
		set, err := g.assess.GenerateAssessment(context.Background(), level)
		return questionsReadyMsg{Set: set, Err: err}
	}
}

func (g *GuidanceScreen) submitAssessment() tea.Cmd {
	g.busy = true
	g.busyText = "Analyzing your answers..."
	req := g.sess.AnalysisRequest()
	return func() tea.Msg {
		result, err := g.assess.Analyze(context.Background(), req)
		return analyzedMsg{Result: result, Err: err}
	}
}

func (g *GuidanceScreen) generateActivities() tea.Cmd {
	g.busy = true
	g.busyText = "Preparing a hands-on activity..."
	career := g.sess.SelectedCareer
	level := g.sess.Level
	area := ""
	if g.sess.Result != nil && len(g.sess.Result.SubjectRecommendations.Core) > 0 {
		area = g.sess.Result.SubjectRecommendations.Core[0]
	}
	return func() tea.Msg {
		activities, err := g.assess.GenerateActivities(context.Background(), career, level, area)
		return activitiesReadyMsg{Activities: activities, Err: err}
	}
}

func (g *GuidanceScreen) submitResponse() tea.Cmd {
	response := g.response.Value()
	if response == "" || len(g.sess.Activities) == 0 {
		g.errMsg = "Please write your response first."
		return nil
	}
	g.busy = true
	g.busyText = "Evaluating your response..."
	g.sess.UserResponse = response
	activityID := g.sess.Activities[0].ID
	career := g.sess.SelectedCareer
	level := g.sess.Level
	return func() tea.Msg {
		ev, err := g.assess.EvaluateActivity(context.Background(), activityID, response, career, level)
		return evaluatedMsg{Evaluation: ev, Err: err}
	}
}

func (g *GuidanceScreen) saveReport() tea.Cmd {
	if g.sess.Result == nil {
		g.errMsg = "Nothing to save yet."
		return nil
	}
	g.busy = true
	g.busyText = "Saving report..."
	report := g.sess.Report()
	return func() tea.Msg {
		err := g.reports.CreateReport(context.Background(), report)
		return reportSavedMsg{Err: err}
	}
}

func (g *GuidanceScreen) loadReports() tea.Cmd {
	return func() tea.Msg {
		list, err := g.reports.MyReports(context.Background())
		return reportsLoadedMsg{Reports: list, Err: err}
	}
}

func (g *GuidanceScreen) deleteReport(id string) tea.Cmd {
	g.busy = true
	g.busyText = "Deleting report..."
	return func() tea.Msg {
		err := g.reports.DeleteReport(context.Background(), id)
		return reportDeletedMsg{Err: err}
	}
}

func (g *GuidanceScreen) exportReport(r api.Report) tea.Cmd {
	id := r.ID
	return func() tea.Msg {
		full, err := g.reports.GetReport(context.Background(), id)
		if err != nil {
			return reportExportedMsg{Err: err}
		}
		path := "disha-report-" + id + ".xlsx"
		if err := export.WriteReport(full, path); err != nil {
			return reportExportedMsg{Err: err}
		}
		return reportExportedMsg{Path: path}
	}
}

func unauthorized(err error) bool {
	return errors.Is(err, api.ErrUnauthorized)
}

func signOut() tea.Msg {
	return SignedOutMsg{}
}
