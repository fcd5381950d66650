package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const environmentAssignmentTemplateConstant = "%s=%s"

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the command and reports its outcome. A non-zero exit code
// arrives inside the ExecutionResult rather than as an error; only failures
// to launch the process surface as errors.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	processCommand := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)

	if len(command.Details.WorkingDirectory) > 0 {
		processCommand.Dir = command.Details.WorkingDirectory
	}
	if len(command.Details.EnvironmentVariables) > 0 {
		processCommand.Env = runner.mergeEnvironment(command.Details.EnvironmentVariables)
	}

	var capturedStandardOutput bytes.Buffer
	var capturedStandardError bytes.Buffer
	if command.Details.StreamOutput {
		processCommand.Stdout = os.Stdout
		processCommand.Stderr = os.Stderr
	} else {
		processCommand.Stdout = &capturedStandardOutput
		processCommand.Stderr = &capturedStandardError
	}

	if len(command.Details.StandardInput) > 0 {
		processCommand.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	runError := processCommand.Run()
	executionResult := ExecutionResult{
		StandardOutput: capturedStandardOutput.String(),
		StandardError:  capturedStandardError.String(),
	}
	if runError != nil {
		exitError := &exec.ExitError{}
		if !errors.As(runError, &exitError) {
			return ExecutionResult{}, runError
		}
		executionResult.ExitCode = exitError.ExitCode()
	}

	return executionResult, nil
}

func (runner *OSCommandRunner) mergeEnvironment(environmentVariables map[string]string) []string {
	mergedEnvironment := append([]string{}, os.Environ()...)
	for variableName, variableValue := range environmentVariables {
		mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, variableName, variableValue))
	}
	return mergedEnvironment
}
