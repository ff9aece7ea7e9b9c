// log.go implements the "recruitdesk log" command.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/recruitdesk/recruitdesk/internal/log"
	"github.com/recruitdesk/recruitdesk/internal/ui"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent events from .recruitdesk/log.jsonl",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

var tailFlag int

func init() {
	logCmd.Flags().IntVarP(&tailFlag, "tail", "n", 20, "Number of most recent events to show (0 for all)")
}

func runLog(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	logger := s.logger
	if logger == nil {
		// Logging may be disabled now but an older log can still be read.
		if logger, err = log.NewLogger(s.root); err != nil {
			return fmt.Errorf("opening event log: %w", err)
		}
	}

	var events []log.LogEvent
	if tailFlag > 0 {
		events, err = logger.Tail(tailFlag)
	} else {
		events, err = logger.ReadAll()
	}
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	if len(events) == 0 {
		p.Dim("No events recorded.")
		return nil
	}

	rows := make([][]string, len(events))
	for i, ev := range events {
		subject := ev.JobID
		if ev.InterviewID != "" {
			subject = ev.InterviewID
		}
		status := ""
		if ev.Status != 0 {
			status = fmt.Sprint(ev.Status)
		}
		rows[i] = []string{ev.Time.Local().Format(time.DateTime), ev.Event, ev.Operation, subject, status, ev.Error}
	}
	p.Table([]string{"Time", "Event", "Operation", "Subject", "Status", "Error"}, rows)
	return nil
}
