package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/gluegen/internal/config"
)

// init: scaffold a config file
var InitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a " + config.DefaultFilename + " config",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		p := filepath.Join(dir, config.DefaultFilename)
		fmt.Fprintf(cmd.OutOrStdout(), "↪ scaffolding %s ...\n", p)

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists", p)
		}
		if err != nil {
			return err
		}
		if _, err := f.WriteString(config.Template()); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", p, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✔︎ wrote %s\n", p)
		return nil
	},
}
