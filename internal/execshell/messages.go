package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitCloneSubcommandNameConstant    = "clone"
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitConfigSubcommandNameConstant   = "config"
	gitGitPathFlagConstant            = "--git-path"
	gitConfigGetFlagConstant          = "--get"
)

const (
	gitCloneStartTemplateConstant                  = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant                = "Cloned %s into %s"
	gitCloneFailureTemplateConstant                = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant       = "Unable to clone %s into %s: %s"
	gitInspectStartTemplateConstant                = "Inspecting repository at %s"
	gitInspectSuccessTemplateConstant              = "%s is a Git repository"
	gitInspectFailureTemplateConstant              = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitInspectExecutionFailureTemplateConstant     = "Could not inspect %s: %s"
	gitPathResolveStartTemplateConstant            = "Resolving repository path %s in %s"
	gitPathResolveSuccessTemplateConstant          = "Resolved repository path %s in %s"
	gitPathResolveFailureTemplateConstant          = "Failed to resolve repository path %s in %s (exit code %d%s)"
	gitPathResolveExecutionFailureTemplateConstant = "Unable to resolve repository path %s in %s: %s"
	gitConfigReadStartTemplateConstant             = "Reading configuration %s in %s"
	gitConfigReadSuccessTemplateConstant           = "Read configuration %s in %s"
	gitConfigReadFailureTemplateConstant           = "Could not read configuration %s in %s (exit code %d%s)"
	gitConfigReadExecutionFailureTemplateConstant  = "Unable to read configuration %s in %s: %s"
	gitConfigWriteStartTemplateConstant            = "Setting configuration %s to %s in %s"
	gitConfigWriteSuccessTemplateConstant          = "Set configuration %s to %s in %s"
	gitConfigWriteFailureTemplateConstant          = "Failed to set configuration %s to %s in %s (exit code %d%s)"
	gitConfigWriteExecutionFailureTemplateConstant = "Unable to set configuration %s to %s in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	return formatter.describeGitMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitCloneSubcommandNameConstant:
		return formatter.describeGitCloneMessage(command, result, failure, stage)
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitConfigSubcommandNameConstant:
		return formatter.describeGitConfigMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCloneMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	source := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[1:]))
	destination := formatter.ensureValue(formatter.extractSecondNonFlagArgument(arguments[1:]))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCloneStartTemplateConstant, source, destination)
	case messageStageSuccess:
		return fmt.Sprintf(gitCloneSuccessTemplateConstant, source, destination)
	case messageStageFailure:
		return fmt.Sprintf(gitCloneFailureTemplateConstant, source, destination, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCloneExecutionFailureTemplateConstant, source, destination, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitGitPathFlagConstant) {
		requestedPath := formatter.ensureValue(formatter.resolveTrailingArgument(arguments))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitPathResolveStartTemplateConstant, requestedPath, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitPathResolveSuccessTemplateConstant, requestedPath, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitPathResolveFailureTemplateConstant, requestedPath, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitPathResolveExecutionFailureTemplateConstant, requestedPath, workingDirectory, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitInspectStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitInspectSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitInspectFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitInspectExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitConfigMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitConfigGetFlagConstant) {
		configurationKey := formatter.ensureValue(formatter.resolveTrailingArgument(arguments))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitConfigReadStartTemplateConstant, configurationKey, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitConfigReadSuccessTemplateConstant, configurationKey, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitConfigReadFailureTemplateConstant, configurationKey, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitConfigReadExecutionFailureTemplateConstant, configurationKey, workingDirectory, formatter.describeFailure(failure))
		}
	}

	configurationKey := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[1:]))
	configurationValue := formatter.ensureValue(formatter.extractSecondNonFlagArgument(arguments[1:]))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitConfigWriteStartTemplateConstant, configurationKey, configurationValue, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitConfigWriteSuccessTemplateConstant, configurationKey, configurationValue, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitConfigWriteFailureTemplateConstant, configurationKey, configurationValue, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitConfigWriteExecutionFailureTemplateConstant, configurationKey, configurationValue, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func (formatter CommandMessageFormatter) resolveTrailingArgument(arguments []string) string {
	if len(arguments) == 0 {
		return emptyStringConstant
	}
	return strings.TrimSpace(arguments[len(arguments)-1])
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractSecondNonFlagArgument(arguments []string) string {
	foundFirst := false
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		if !foundFirst {
			foundFirst = true
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}
