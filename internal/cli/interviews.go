// interviews.go implements the "recruitdesk interviews" command group.
package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/log"
	"github.com/recruitdesk/recruitdesk/internal/ui"
)

var interviewsCmd = &cobra.Command{
	Use:     "interviews",
	Aliases: []string{"iv"},
	Short:   "Review candidate interviews",
}

var interviewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List interviews",
	Args:  cobra.NoArgs,
	RunE:  runInterviewsList,
}

var interviewsShowCmd = &cobra.Command{
	Use:   "show <interview-id>",
	Short: "Show an interview's transcript, questions and summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runInterviewsShow,
}

var interviewsScoreCmd = &cobra.Command{
	Use:   "score <interview-id>",
	Short: "Save a score and feedback for an interview",
	Long: `Save the administrator's score (0-100) and feedback for an interview.
Omit --score or pass an empty value to leave the interview unscored.`,
	Args: cobra.ExactArgs(1),
	RunE: runInterviewsScore,
}

var interviewsScreenshotsCmd = &cobra.Command{
	Use:   "screenshots <interview-id>",
	Short: "Print the screenshot URLs of an interview",
	Args:  cobra.ExactArgs(1),
	RunE:  runInterviewsScreenshots,
}

var (
	filterJob    string
	filterStatus string
	filterSearch string
	sortBy       string
	sortOrder    string

	scoreFlag    string
	feedbackFlag string

	checkFlag bool
)

var interviewHeaders = []string{"ID", "Candidate", "Job Title", "Date", "Status", "Score"}

func init() {
	f := interviewsListCmd.Flags()
	f.StringVar(&filterJob, "job", "", "Only interviews for this job id")
	f.StringVar(&filterStatus, "status", "", "Only interviews with this status")
	f.StringVar(&filterSearch, "search", "", "Match candidate name")
	f.StringVar(&sortBy, "sort", "", "Sort by score, interview_date or status")
	f.StringVar(&sortOrder, "order", "", "Sort order: asc or desc")

	interviewsScoreCmd.Flags().StringVar(&scoreFlag, "score", "", "Score from 0 to 100; empty leaves it unset")
	interviewsScoreCmd.Flags().StringVar(&feedbackFlag, "feedback", "", "Feedback text")

	interviewsScreenshotsCmd.Flags().BoolVar(&checkFlag, "check", false, "Probe each image and substitute the placeholder for broken ones")

	interviewsCmd.AddCommand(interviewsListCmd, interviewsShowCmd, interviewsScoreCmd, interviewsScreenshotsCmd)
}

func interviewTableRows(ivs []admin.Interview) [][]string {
	rows := make([][]string, len(ivs))
	for i, iv := range ivs {
		rows[i] = []string{iv.ID, iv.CandidateName, iv.JobTitle, iv.InterviewDate.Date(), iv.Status, iv.ScoreText()}
	}
	return rows
}

func runInterviewsList(cmd *cobra.Command, args []string) error {
	switch sortBy {
	case "", "score", "interview_date", "status":
	default:
		return fmt.Errorf("invalid --sort %q: use score, interview_date or status", sortBy)
	}
	switch sortOrder {
	case "", "asc", "desc":
	default:
		return fmt.Errorf("invalid --order %q: use asc or desc", sortOrder)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	ctx, _ := s.request(cmd.Context())

	interviews, err := s.client.ListInterviews(ctx, admin.InterviewFilter{
		JobID:     filterJob,
		Status:    filterStatus,
		Search:    filterSearch,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	})
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	if len(interviews) == 0 {
		p.Dim("No interviews found.")
		return nil
	}
	p.Table(interviewHeaders, interviewTableRows(interviews))
	return nil
}

func fetchInterview(s *session, cmd *cobra.Command, id string) (*admin.Interview, error) {
	ctx, _ := s.request(cmd.Context())
	iv, err := s.client.GetInterview(ctx, id)
	if err != nil {
		if errors.Is(err, admin.ErrNotFound) {
			return nil, fmt.Errorf("interview %s not found", id)
		}
		return nil, err
	}
	return iv, nil
}

func runInterviewsShow(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	iv, err := fetchInterview(s, cmd, args[0])
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.Heading("Interview: " + iv.CandidateName)
	p.Fields(
		ui.Field{Label: "ID", Value: iv.ID},
		ui.Field{Label: "Job", Value: fmt.Sprintf("%s (%s)", iv.JobTitle, iv.JobID)},
		ui.Field{Label: "Date", Value: iv.InterviewDate.DateTime()},
		ui.Field{Label: "Status", Value: iv.Status},
		ui.Field{Label: "Score", Value: iv.ScoreText()},
		ui.Field{Label: "Screenshots", Value: fmt.Sprint(len(iv.Screenshots))},
	)
	p.Line("")
	p.Block("Transcript", string(iv.Transcript))
	p.Line("")

	var qa strings.Builder
	for i, q := range iv.Questions {
		if i > 0 {
			qa.WriteString("\n\n")
		}
		fmt.Fprintf(&qa, "Q%d: %s\nA: %s", i+1, q.Q, q.A)
	}
	p.Block("AI Questions", qa.String())
	p.Line("")
	p.Block("Summary", iv.Summary)
	p.Line("")
	p.Block("Admin Feedback", iv.Feedback())
	return nil
}

func runInterviewsScore(cmd *cobra.Command, args []string) error {
	id := args[0]
	score, err := admin.ParseScore(scoreFlag)
	if err != nil {
		return errors.New(admin.InvalidScoreMessage)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	ctx, requestID := s.request(cmd.Context())
	start := time.Now()

	res, err := s.client.ScoreInterview(ctx, id, admin.ScoreInput{Score: score, Feedback: feedbackFlag})
	ev := log.LogEvent{Event: log.EventFeedbackSaved, Operation: "score", RequestID: requestID, InterviewID: id}
	if err != nil {
		ev.Event = log.EventFeedbackFailed
		s.record(ev, start, err)
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	s.record(ev, start, nil)

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.Success("Saved feedback for %s", orDash(res.Interview.CandidateName, id))
	p.Fields(
		ui.Field{Label: "Score", Value: res.Interview.ScoreText()},
		ui.Field{Label: "Status", Value: res.Interview.Status},
	)
	return nil
}

func runInterviewsScreenshots(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	iv, err := fetchInterview(s, cmd, args[0])
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	if len(iv.Screenshots) == 0 {
		p.Dim("No screenshots available for this interview.")
		return nil
	}

	if !checkFlag {
		for _, path := range iv.Screenshots {
			p.Line("%s", admin.ScreenshotURL(s.cfg.API.FileServerURL, path))
		}
		return nil
	}

	results := s.client.CheckScreenshots(cmd.Context(), s.cfg.API.FileServerURL, s.cfg.API.PlaceholderImage, iv.Screenshots)
	rows := make([][]string, len(results))
	broken := 0
	for i, r := range results {
		state := "ok"
		if !r.OK {
			state = "unreachable"
			broken++
		}
		rows[i] = []string{r.Path, state, r.URL}
	}
	p.Table([]string{"Path", "State", "URL"}, rows)
	if broken > 0 {
		p.Warn("%d of %d screenshots could not be loaded", broken, len(results))
	}
	return nil
}

func orDash(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
