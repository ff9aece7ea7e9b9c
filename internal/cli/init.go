// init.go implements the "recruitdesk init" command.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/recruitdesk/recruitdesk/internal/config"
	"github.com/recruitdesk/recruitdesk/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .recruitdesk/config.yaml",
	Long: `Create .recruitdesk/config.yaml in the current directory with the hosted
platform's endpoints. Edit it, or set RECRUITDESK_API_URL and friends in the
environment or a .env file, to point at another deployment.`,
	RunE: runInit,
}

var forceFlag bool

func init() {
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	path := filepath.Join(config.Dir(dir), "config.yaml")
	if _, statErr := os.Stat(path); statErr == nil && !forceFlag {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}

	cfg := config.DefaultConfig()
	if apiURLFlag != "" {
		cfg.API.BaseURL = apiURLFlag
	}
	if fileURLFlag != "" {
		cfg.API.FileServerURL = fileURLFlag
	}
	if err := config.WriteConfig(dir, cfg); err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.Success("Wrote %s", path)
	p.Dim("API: %s", cfg.API.BaseURL)
	return nil
}
