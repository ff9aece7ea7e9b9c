// jobs.go implements the "recruitdesk jobs" command group.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/log"
	"github.com/recruitdesk/recruitdesk/internal/ui"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage job postings",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List job postings",
	Args:  cobra.NoArgs,
	RunE:  runJobsList,
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show a job posting and its interviews",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsShow,
}

var jobsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a job posting",
	Args:  cobra.NoArgs,
	RunE:  runJobsCreate,
}

var jobsUpdateCmd = &cobra.Command{
	Use:   "update <job-id>",
	Short: "Update a job posting",
	Long:  `Update a job posting. Only the flags given are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsUpdate,
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete <job-id>",
	Short: "Delete a job posting",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsDelete,
}

// jobFlags holds the editable job fields shared by create and update.
type jobFlags struct {
	title       string
	department  string
	description string
	status      string
	questions   int
	topics      string
}

func (f *jobFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Job title")
	cmd.Flags().StringVar(&f.department, "department", "", "Department")
	cmd.Flags().StringVar(&f.description, "description", "", "Full job description")
	cmd.Flags().StringVar(&f.status, "status", admin.JobStatusOpen, "Status: Open, Closed or Draft")
	cmd.Flags().IntVar(&f.questions, "questions", 0, "Number of questions the AI interviewer asks")
	cmd.Flags().StringVar(&f.topics, "topics", "", "Topics the AI interviewer must cover")
}

// apply copies the flags the user set onto in.
func (f *jobFlags) apply(cmd *cobra.Command, in *admin.JobInput) {
	changed := cmd.Flags().Changed
	if changed("title") {
		in.Title = f.title
	}
	if changed("department") {
		in.Department = f.department
	}
	if changed("description") {
		in.Description = f.description
	}
	if changed("status") {
		in.Status = f.status
	}
	if changed("questions") {
		n := f.questions
		in.NumberOfQuestions = &n
	}
	if changed("topics") {
		t := f.topics
		in.MustAskTopics = &t
	}
}

var (
	createFlags jobFlags
	updateFlags jobFlags
	yesFlag     bool
)

func init() {
	createFlags.bind(jobsCreateCmd)
	updateFlags.bind(jobsUpdateCmd)
	jobsDeleteCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Delete without asking for confirmation")

	jobsCmd.AddCommand(jobsListCmd, jobsShowCmd, jobsCreateCmd, jobsUpdateCmd, jobsDeleteCmd)
}

func runJobsList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	ctx, _ := s.request(cmd.Context())

	jobs, err := s.client.ListJobs(ctx)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	if len(jobs) == 0 {
		p.Dim("No jobs found.")
		return nil
	}
	rows := make([][]string, len(jobs))
	for i, j := range jobs {
		rows[i] = []string{j.ID, j.Title, j.Department, j.Status, fmt.Sprint(j.ApplicationsCount), j.CreatedAt.Date()}
	}
	p.Table([]string{"ID", "Title", "Department", "Status", "Applications", "Created"}, rows)
	return nil
}

func runJobsShow(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	ctx, _ := s.request(cmd.Context())

	job, err := s.client.GetJob(ctx, args[0])
	if err != nil {
		if errors.Is(err, admin.ErrNotFound) {
			return fmt.Errorf("job %s not found", args[0])
		}
		return err
	}
	interviews, err := s.client.ListInterviews(ctx, admin.InterviewFilter{JobID: job.ID})
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.Heading(job.Title)
	fields := []ui.Field{
		{Label: "ID", Value: job.ID},
		{Label: "Department", Value: job.Department},
		{Label: "Status", Value: job.Status},
		{Label: "Applications", Value: fmt.Sprint(job.ApplicationsCount)},
		{Label: "Created", Value: job.CreatedAt.Date()},
	}
	if job.NumberOfQuestions != nil {
		fields = append(fields, ui.Field{Label: "Questions", Value: fmt.Sprint(*job.NumberOfQuestions)})
	}
	if job.MustAskTopics != nil {
		fields = append(fields, ui.Field{Label: "Must-ask topics", Value: *job.MustAskTopics})
	}
	p.Fields(fields...)
	p.Line("")
	p.Block("Job Description", job.Description)
	p.Line("")

	p.Heading(fmt.Sprintf("Interviews for this Job (%d)", len(interviews)))
	if len(interviews) == 0 {
		p.Dim("No interviews scheduled for this job yet.")
		return nil
	}
	p.Table(interviewHeaders, interviewTableRows(interviews))
	return nil
}

func runJobsCreate(cmd *cobra.Command, args []string) error {
	in := admin.JobInput{Status: admin.JobStatusOpen}
	createFlags.apply(cmd, &in)
	return saveJob(cmd, "", in)
}

func runJobsUpdate(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	ctx, _ := s.request(cmd.Context())

	job, err := s.client.GetJob(ctx, args[0])
	if err != nil {
		if errors.Is(err, admin.ErrNotFound) {
			return fmt.Errorf("job %s not found", args[0])
		}
		return err
	}
	in := admin.InputFromJob(*job)
	in.NumberOfQuestions = job.NumberOfQuestions
	in.MustAskTopics = job.MustAskTopics
	updateFlags.apply(cmd, &in)
	return saveJob(cmd, job.ID, in)
}

// saveJob validates in and creates (id empty) or updates the job.
func saveJob(cmd *cobra.Command, id string, in admin.JobInput) error {
	if err := in.Validate(); err != nil {
		if errors.Is(err, admin.ErrMissingRequired) {
			return errors.New(admin.MissingFieldsMessage)
		}
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	ctx, requestID := s.request(cmd.Context())
	start := time.Now()

	var job *admin.Job
	op := "create"
	if id == "" {
		job, err = s.client.CreateJob(ctx, in)
	} else {
		op = "update"
		job, err = s.client.UpdateJob(ctx, id, in)
	}

	ev := log.LogEvent{Event: log.EventJobSaved, Operation: op, RequestID: requestID, JobID: id}
	if err != nil {
		ev.Event = log.EventJobSaveFailed
		s.record(ev, start, err)
		return fmt.Errorf("failed to save job: %w", err)
	}
	if ev.JobID == "" {
		ev.JobID = job.ID
	}
	s.record(ev, start, nil)

	p := ui.NewPrinter(cmd.OutOrStdout())
	if id == "" {
		p.Success("Created job %s (%s)", job.ID, job.Title)
	} else {
		p.Success("Updated job %s (%s)", job.ID, job.Title)
	}
	return nil
}

func runJobsDelete(cmd *cobra.Command, args []string) error {
	id := args[0]
	if !yesFlag {
		fmt.Fprint(cmd.OutOrStdout(), "Are you sure you want to delete this job? This action cannot be undone. [y/N]: ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	ctx, requestID := s.request(cmd.Context())
	start := time.Now()

	err = s.client.DeleteJob(ctx, id)
	ev := log.LogEvent{Event: log.EventJobDeleted, Operation: "delete", RequestID: requestID, JobID: id}
	if err != nil {
		ev.Event = log.EventJobDeleteFailed
		s.record(ev, start, err)
		return fmt.Errorf("failed to delete job: %w", err)
	}
	s.record(ev, start, nil)

	ui.NewPrinter(cmd.OutOrStdout()).Success("Deleted job %s", id)
	return nil
}
