package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/tui"
)

// InterviewTab indexes the tabs of the interview detail screen.
type InterviewTab int

const (
	TabTranscript InterviewTab = iota
	TabQuestions
	TabSummary
	TabScreenshots
	TabScoring
	numTabs
)

var tabNames = [numTabs]string{"Transcript", "AI Questions", "Summary", "Screenshots", "Scoring"}

func (t InterviewTab) String() string {
	if t < 0 || t >= numTabs {
		return "unknown"
	}
	return tabNames[t]
}

type scoringFocus int

const (
	focusNone scoringFocus = iota
	focusScore
	focusFeedback
)

// InterviewDetailModel shows one interview in tabs and holds the scoring
// form.
type InterviewDetailModel struct {
	interview *admin.Interview
	tab       InterviewTab
	viewport  viewport.Model
	score     textinput.Model
	feedback  textarea.Model
	focus     scoringFocus

	// validationErr is shown inline above the scoring form.
	validationErr string

	fileServerURL string
	width         int
	height        int
	keys          tui.KeyMap
}

// NewInterviewDetailModel creates an InterviewDetailModel that builds
// screenshot URLs against fileServerURL.
func NewInterviewDetailModel(fileServerURL string) InterviewDetailModel {
	score := textinput.New()
	score.Placeholder = "Enter score (optional)"
	score.CharLimit = 3
	score.Width = 10

	feedback := textarea.New()
	feedback.Placeholder = "Enter your feedback..."
	feedback.ShowLineNumbers = false
	feedback.SetWidth(60)
	feedback.SetHeight(4)

	return InterviewDetailModel{
		viewport:      viewport.New(76, 14),
		score:         score,
		feedback:      feedback,
		fileServerURL: fileServerURL,
		width:         80,
		height:        24,
		keys:          tui.DefaultKeyMap,
	}
}

// Load shows iv and resets the scoring form to its stored score and feedback.
// The active tab is kept while the same interview is reloaded.
func (m *InterviewDetailModel) Load(iv *admin.Interview) {
	if iv == nil || m.interview == nil || m.interview.ID != iv.ID {
		m.tab = TabTranscript
		m.blur()
	}
	m.interview = iv
	m.validationErr = ""

	if iv != nil && iv.Score != nil {
		m.score.SetValue(fmt.Sprintf("%d", *iv.Score))
	} else {
		m.score.SetValue("")
	}
	if iv != nil {
		m.feedback.SetValue(iv.Feedback())
	} else {
		m.feedback.SetValue("")
	}
	m.refresh()
}

// SetValidationError shows msg inline in the scoring form.
func (m *InterviewDetailModel) SetValidationError(msg string) {
	m.validationErr = msg
}

// ValidationError returns the inline scoring error, if any.
func (m InterviewDetailModel) ValidationError() string {
	return m.validationErr
}

// Tab returns the active tab.
func (m InterviewDetailModel) Tab() InterviewTab {
	return m.tab
}

// ScoreValue returns the raw contents of the score field.
func (m InterviewDetailModel) ScoreValue() string {
	return m.score.Value()
}

// FeedbackValue returns the raw contents of the feedback field.
func (m InterviewDetailModel) FeedbackValue() string {
	return m.feedback.Value()
}

// Capturing reports whether a text field has focus, in which case keys
// belong to the field rather than global shortcuts.
func (m InterviewDetailModel) Capturing() bool {
	return m.tab == TabScoring && m.focus != focusNone
}

// SetSize resizes the content viewport.
func (m *InterviewDetailModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = max(w-4, 20)
	m.viewport.Height = max(h-14, 5)
	m.feedback.SetWidth(max(w-8, 20))
	m.refresh()
}

func (m *InterviewDetailModel) blur() {
	m.focus = focusNone
	m.score.Blur()
	m.feedback.Blur()
}

func (m *InterviewDetailModel) focusField(f scoringFocus) tea.Cmd {
	m.blur()
	m.focus = f
	switch f {
	case focusScore:
		return m.score.Focus()
	case focusFeedback:
		return m.feedback.Focus()
	}
	return nil
}

func (m *InterviewDetailModel) setTab(t InterviewTab) {
	m.tab = (t + numTabs) % numTabs
	m.blur()
	m.refresh()
}

func (m InterviewDetailModel) save() tea.Cmd {
	if m.interview == nil {
		return nil
	}
	return send(tui.SaveFeedbackMsg{
		InterviewID: m.interview.ID,
		Score:       m.score.Value(),
		Feedback:    m.feedback.Value(),
	})
}

// Init implements tea.Model.
func (m InterviewDetailModel) Init() tea.Cmd {
	return nil
}

// Update handles tab switching, scrolling and the scoring form.
func (m InterviewDetailModel) Update(msg tea.Msg) (InterviewDetailModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}
	if m.interview == nil {
		return m, nil
	}

	if m.Capturing() {
		switch {
		case key.Matches(keyMsg, m.keys.Save):
			return m, m.save()
		case key.Matches(keyMsg, m.keys.Escape):
			m.blur()
			return m, nil
		case key.Matches(keyMsg, m.keys.Tab):
			if m.focus == focusScore {
				return m, m.focusField(focusFeedback)
			}
			return m, m.focusField(focusScore)
		}
		return m.updateFocused(msg)
	}

	switch keyMsg.String() {
	case "shift+tab":
		m.setTab(m.tab - 1)
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.setTab(m.tab - 1)
		return m, nil
	case key.Matches(keyMsg, m.keys.Right), key.Matches(keyMsg, m.keys.Tab):
		m.setTab(m.tab + 1)
		return m, nil
	}

	if m.tab == TabScoring {
		switch {
		case key.Matches(keyMsg, m.keys.Enter):
			return m, m.focusField(focusScore)
		case key.Matches(keyMsg, m.keys.Save):
			return m, m.save()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m InterviewDetailModel) updateFocused(msg tea.Msg) (InterviewDetailModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusScore:
		m.score, cmd = m.score.Update(msg)
	case focusFeedback:
		m.feedback, cmd = m.feedback.Update(msg)
	}
	return m, cmd
}

// refresh recomputes the scrollable content of the active tab.
func (m *InterviewDetailModel) refresh() {
	if m.interview == nil || m.tab == TabScoring {
		m.viewport.SetContent("")
		return
	}
	wrap := lipgloss.NewStyle().Width(m.viewport.Width)
	m.viewport.SetContent(wrap.Render(m.tabContent()))
	m.viewport.GotoTop()
}

func (m InterviewDetailModel) tabContent() string {
	iv := m.interview
	switch m.tab {
	case TabTranscript:
		if iv.Transcript == "" {
			return placeholder("No transcript available.")
		}
		return string(iv.Transcript)

	case TabQuestions:
		if len(iv.Questions) == 0 {
			return placeholder("No AI questions recorded.")
		}
		var b strings.Builder
		for i, qa := range iv.Questions {
			if i > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(tui.SelectedStyle.Render(fmt.Sprintf("Q%d: %s", i+1, qa.Q)))
			b.WriteString("\n")
			b.WriteString("A: " + qa.A)
		}
		return b.String()

	case TabSummary:
		if iv.Summary == "" {
			return placeholder("No summary available.")
		}
		return iv.Summary

	case TabScreenshots:
		if len(iv.Screenshots) == 0 {
			return lipgloss.JoinVertical(lipgloss.Left,
				tui.LabelStyle.Render("No Screenshots Available"),
				placeholder("Screenshots taken during the interview will appear here."),
			)
		}
		lines := make([]string, len(iv.Screenshots))
		for i, p := range iv.Screenshots {
			lines[i] = fmt.Sprintf("Screenshot %d: %s", i+1, admin.ScreenshotURL(m.fileServerURL, p))
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

var tabHeadings = [numTabs]string{
	"Full Transcript",
	"Questions Asked by AI",
	"AI Generated Summary",
	"Candidate Screenshots",
	"Scoring & Admin Feedback",
}

// View renders the interview detail from state.
func (m InterviewDetailModel) View(state *tui.Model, spin string) string {
	if state.Loading[tui.OpInterviewDetails] {
		return placeholder(spin + " Loading interview details...")
	}
	if m.interview == nil {
		return placeholder("Interview details not found or could not be loaded.")
	}
	iv := m.interview

	header := lipgloss.JoinVertical(lipgloss.Left,
		tui.TitleStyle.Render(orNA(iv.CandidateName)),
		tui.DimStyle.Render("For: ")+orNA(iv.JobTitle),
		tui.DimStyle.Render("Date: ")+iv.InterviewDate.DateTime(),
		tui.DimStyle.Render("Status: ")+tui.StatusBadge(iv.Status),
	)
	if iv.Score != nil {
		header = lipgloss.JoinVertical(lipgloss.Left, header,
			tui.SelectedStyle.Render(fmt.Sprintf("Score: %d/100", *iv.Score)))
	}

	tabs := make([]string, numTabs)
	for i := range tabs {
		if InterviewTab(i) == m.tab {
			tabs[i] = tui.ActiveTabStyle.Render(tabNames[i])
		} else {
			tabs[i] = tui.InactiveTabStyle.Render(tabNames[i])
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	if m.tab == TabScoring {
		body = m.scoringView()
	} else {
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		tabBar,
		"",
		section(tabHeadings[m.tab], body),
	)
}

func (m InterviewDetailModel) scoringView() string {
	var parts []string
	if m.validationErr != "" {
		parts = append(parts, tui.ErrorStyle.Render(m.validationErr), "")
	}
	parts = append(parts,
		tui.LabelStyle.Render("Overall Score (0-100)"),
		m.score.View(),
		"",
		tui.LabelStyle.Render("Admin Feedback/Notes"),
		m.feedback.View(),
		"",
	)
	if m.Capturing() {
		parts = append(parts, tui.DimStyle.Render("tab next field · ctrl+s save feedback · esc stop editing"))
	} else {
		parts = append(parts, tui.DimStyle.Render("enter edit · ctrl+s save feedback · ←/→ tabs"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
