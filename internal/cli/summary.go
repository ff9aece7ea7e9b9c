// summary.go implements the "recruitdesk summary" command.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/log"
	"github.com/recruitdesk/recruitdesk/internal/ui"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show dashboard counters",
	Long: `Fetch the dashboard summary together with the job and interview lists and
print the headline counters.`,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	ctx, requestID := s.request(cmd.Context())
	start := time.Now()

	var (
		summary    *admin.DashboardSummary
		jobs       []admin.Job
		interviews []admin.Interview
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.client.DashboardSummary(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = s.client.ListJobs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		interviews, err = s.client.ListInterviews(gctx, admin.InterviewFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		s.record(log.LogEvent{Event: log.EventFetchFailed, Operation: "summary", RequestID: requestID}, start, err)
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.Heading("Admin Dashboard")
	p.Fields(
		ui.Field{Label: "Open Positions", Value: fmt.Sprint(summary.OpenPositions)},
		ui.Field{Label: "Total Applications", Value: fmt.Sprint(summary.TotalApplications)},
		ui.Field{Label: "Interviews Scheduled", Value: fmt.Sprint(summary.InterviewsScheduled)},
		ui.Field{Label: "Pending Reviews", Value: fmt.Sprint(summary.PendingReviews)},
	)
	p.Dim("%d job postings, %d interviews", len(jobs), len(interviews))
	return nil
}
