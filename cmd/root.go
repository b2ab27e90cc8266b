package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/gluegen/internal/compiler/diag"
	"github.com/arnavsurve/gluegen/internal/config"
)

var (
	configPath       string
	strict           bool
	quiet            bool
	noColor          bool
	legacyBitBuffers bool
)

var rootCmd = &cobra.Command{
	Use:   "gluegen [located-variables.h glue-vars.cpp]",
	Short: "gluegen: glue variable generator for OpenPLC runtimes",
	Long: `gluegen reads the located variable declarations produced by the PLC
program compiler and writes the C++ translation unit that binds them to the
runtime's I/O buffers.

With no arguments it reads LOCATED_VARIABLES.h and writes glueVars.cpp in the
current directory.

Commands:
  init     Scaffold a gluegen.jsonnet config
  inspect  Print the glue table for a located variables file
`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
		}
		return nil
	},
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runGenerate,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (.json or .jsonnet), default ./"+config.DefaultFilename+" if present")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only print warnings and errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured diagnostics")

	rootCmd.Flags().BoolVar(&strict, "strict", false, "fail on malformed declarations and unsupported locations")
	rootCmd.Flags().BoolVar(&legacyBitBuffers, "legacy-bit-buffers", false, "also assign grouped bits into bool_input/bool_output")

	rootCmd.AddCommand(InitCmd, InspectCmd)
}

// loadConfig resolves the config file and lays explicitly set flags over it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var (
		c   config.Config
		err error
	)
	if configPath != "" {
		c, err = config.Load(configPath)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			c, _, err = config.LoadDefault(wd)
		}
	}
	if err != nil {
		return c, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("strict") {
		c.Strict = strict
	}
	if flags.Changed("quiet") {
		c.Quiet = quiet
	}
	if flags.Changed("no-color") {
		c.NoColor = noColor
	}
	if flags.Changed("legacy-bit-buffers") {
		c.LegacyBitBuffers = legacyBitBuffers
	}
	return c, nil
}

func newReporter(cmd *cobra.Command, c config.Config) diag.Reporter {
	return diag.NewConsole(cmd.ErrOrStderr(), c.Quiet, c.NoColor)
}
