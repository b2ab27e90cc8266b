package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/gluegen/internal/compiler"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 2 {
		c.Input, c.Output = args[0], args[1]
	}

	reporter := newReporter(cmd, c)
	out := cmd.OutOrStdout()
	if !c.Quiet {
		fmt.Fprintf(out, "↪ generating %s from %s ...\n", c.Output, c.Input)
	}

	res, err := compiler.GenerateFiles(cmd.Context(), c.Input, c.Output, compiler.Options{
		Strict:           c.Strict,
		LegacyBitBuffers: c.LegacyBitBuffers,
	}, reporter)
	if err != nil {
		return err
	}

	if !c.Quiet {
		fmt.Fprintf(out, "✔︎ wrote %s (%d lines read, %d glue entries, %d skipped)\n",
			c.Output, res.Module.Lines, len(res.Module.Variables), res.Malformed)
	}
	return nil
}
