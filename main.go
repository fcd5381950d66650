package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Khan/kaclone/cmd/cli"
	"github.com/Khan/kaclone/internal/execshell"
)

const (
	exitErrorTemplateConstant      = "%v\n"
	generalFailureExitCodeConstant = 1
)

// main executes the kaclone command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(resolveExitCode(executionError))
	}
}

// resolveExitCode surfaces git's own exit code when an external command failed.
func resolveExitCode(executionError error) int {
	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) {
		if exitCode := commandFailure.ExitCode(); exitCode != 0 {
			return exitCode
		}
	}
	return generalFailureExitCodeConstant
}
