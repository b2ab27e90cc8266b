package main

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/arnavsurve/gluegen/cmd"
	"github.com/arnavsurve/gluegen/internal/compiler"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(compiler.ExitCode(err))
	}
	atexit.Exit(compiler.ExitOK)
}
