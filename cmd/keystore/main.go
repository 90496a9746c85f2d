package main

import (
	"io"
	"os"

	"github.com/zx06/keystore/internal/app"
	"github.com/zx06/keystore/internal/errors"
	"github.com/zx06/keystore/internal/output"
)

func main() {
	exit := run()
	os.Exit(exit)
}

// run is the main entry point
func run() int {
	return runWith(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// runWith executes the CLI against the given args and streams
func runWith(args []string, in io.Reader, out, errOut io.Writer) int {
	// Initialize application
	a := app.New(version, commit, date)
	w := output.New(out, errOut)
	GlobalConfig = &Config{}

	// Create root command
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	// Add subcommands
	root.AddCommand(NewSpecCommand(&a, &w))
	root.AddCommand(NewVersionCommand(&a, &w))
	root.AddCommand(NewSetCommand(&w))
	root.AddCommand(NewGetCommand(&w))
	root.AddCommand(NewDeleteCommand(&w))
	root.AddCommand(NewStatusCommand(&w))
	root.AddCommand(NewCheckCommand(&w))
	root.AddCommand(NewConfigCommand(&w))
	root.AddCommand(NewMCPCommand())

	// Execute and handle errors
	if err := root.Execute(); err != nil {
		xe := normalizeErr(err)
		format := resolveFormatForError(GlobalConfig.FormatStr)
		_ = w.WriteError(format, xe)
		return int(errors.ExitCodeFor(xe.Code))
	}

	return int(errors.ExitOK)
}
