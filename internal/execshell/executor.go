package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	gitExecutableNameConstant                 = "git"
	loggerNotConfiguredMessageConstant        = "logger not configured"
	commandRunnerNotConfiguredMessageConstant = "command runner not configured"
	commandFailedErrorTemplateConstant        = "%s failed with exit code %d%s"
	commandExecutionErrorTemplateConstant     = "unable to execute %s: %v"
	commandErrorLabelTemplateConstant         = "%s %s"
	commandErrorStandardErrorSuffixConstant   = ": %s"
)

// CommandName identifies a supported executable.
type CommandName string

// CommandGit identifies the external git binary.
const CommandGit CommandName = CommandName(gitExecutableNameConstant)

// CommandDetails describes a single tool invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
	// StreamOutput connects the child process directly to the parent's
	// stdout and stderr instead of capturing them.
	StreamOutput bool
}

// ShellCommand combines a CommandName with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner represents the ability to run shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Sentinel errors returned when executor dependencies are missing.
var (
	ErrLoggerNotConfigured        = errors.New(loggerNotConfiguredMessageConstant)
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command that ran to completion with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including its exit code and captured stderr.
func (failure CommandFailedError) Error() string {
	return fmt.Sprintf(
		commandFailedErrorTemplateConstant,
		describeCommandForError(failure.Command),
		failure.Result.ExitCode,
		formatStandardErrorForError(failure.Result.StandardError),
	)
}

// ExitCode exposes the exit code reported by the external tool.
func (failure CommandFailedError) ExitCode() int {
	return failure.Result.ExitCode
}

// CommandExecutionError reports a command that could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the command that failed to launch.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, describeCommandForError(failure.Command), failure.Cause)
}

// Unwrap exposes the underlying launch failure.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

func describeCommandForError(command ShellCommand) string {
	if len(command.Details.Arguments) == 0 {
		return string(command.Name)
	}
	return fmt.Sprintf(commandErrorLabelTemplateConstant, string(command.Name), strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
}

func formatStandardErrorForError(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(commandErrorStandardErrorSuffixConstant, trimmedStandardError)
}

// ShellExecutor coordinates command execution, structured logging, and lifecycle events.
type ShellExecutor struct {
	logger           *zap.Logger
	commandRunner    CommandRunner
	eventObserver    CommandEventObserver
	messageFormatter CommandMessageFormatter
}

// NewShellExecutor constructs a ShellExecutor backed by the provided logger and runner.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner) (*ShellExecutor, error) {
	return NewShellExecutorWithObserver(logger, commandRunner, nil)
}

// NewShellExecutorWithObserver constructs a ShellExecutor that additionally notifies the observer of command lifecycle events.
func NewShellExecutorWithObserver(logger *zap.Logger, commandRunner CommandRunner, eventObserver CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if eventObserver == nil {
		eventObserver = discardingCommandEventObserver{}
	}

	return &ShellExecutor{
		logger:           logger,
		commandRunner:    commandRunner,
		eventObserver:    eventObserver,
		messageFormatter: CommandMessageFormatter{},
	}, nil
}

// ExecuteGit runs the git binary with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	gitCommand := ShellCommand{Name: CommandGit, Details: details}
	return executor.executeCommand(executionContext, gitCommand)
}

func (executor *ShellExecutor) executeCommand(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.logger.Debug(executor.messageFormatter.BuildStartedMessage(command))
	executor.eventObserver.CommandStarted(command)

	executionResult, runError := executor.commandRunner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Error(executor.messageFormatter.BuildExecutionFailureMessage(command, runError))
		executor.eventObserver.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.eventObserver.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Warn(executor.messageFormatter.BuildFailureMessage(command, executionResult))
		return executionResult, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Info(executor.messageFormatter.BuildSuccessMessage(command))
	return executionResult, nil
}
