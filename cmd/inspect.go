package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/gluegen/internal/compiler"
)

// inspect: print the glue table without writing anything
var InspectCmd = &cobra.Command{
	Use:   "inspect [located-variables.h]",
	Short: "Print the glue table for a located variables file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			c.Input = args[0]
		}

		entries, m, err := compiler.Inspect(cmd.Context(), c.Input, newReporter(cmd, c))
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetTitle(c.Input)
		t.AppendHeader(table.Row{"#", "Name", "Dir", "Size", "Major", "Minor", "Type"})
		for i, e := range entries {
			t.AppendRow(table.Row{i, e.Name, e.Direction, e.Size, e.Major, e.Minor, e.Type})
		}
		t.AppendFooter(table.Row{"", fmt.Sprintf("%d entries", len(entries)), "", "", "", "", fmt.Sprintf("md5 %X", m.Digest)})
		t.Render()

		for _, g := range m.Groups {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d slots\n", g.Name(), g.Populated(), len(g.Slots))
		}
		return nil
	},
}
