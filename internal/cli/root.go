// Package cli defines Cobra command definitions for the recruitdesk CLI.
// This file contains the root command, which launches the dashboard.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recruitdesk/recruitdesk/internal/log"
	"github.com/recruitdesk/recruitdesk/internal/tui"
	"github.com/recruitdesk/recruitdesk/internal/tui/app"
	"github.com/recruitdesk/recruitdesk/internal/tui/commands"
)

var (
	apiURLFlag  string
	fileURLFlag string
	version     = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "recruitdesk",
	Short: "Admin dashboard for job postings and AI interviews",
	Long: `recruitdesk is the administrator's console for the AI interview platform.
Run without arguments in a terminal to open the interactive dashboard, or use
the subcommands to manage jobs and review interviews from scripts.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		_ = s.logger.Append(log.LogEvent{
			Event: log.EventSessionStarted,
			Data:  map[string]interface{}{"api": s.cfg.API.BaseURL, "version": version},
		})

		tuiApp := app.New(s.cfg, commands.Env{
			API:     s.client,
			Log:     s.logger,
			Context: cmd.Context(),
		})
		return tui.Run(tuiApp)
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Admin API base URL (overrides config and RECRUITDESK_API_URL)")
	rootCmd.PersistentFlags().StringVar(&fileURLFlag, "file-server-url", "", "File server base URL for screenshots")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(interviewsCmd)
	rootCmd.AddCommand(logCmd)
}
