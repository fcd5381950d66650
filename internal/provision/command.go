package provision

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Khan/kaclone/internal/utils"
	flagutils "github.com/Khan/kaclone/internal/utils/flags"
)

const (
	commandUseConstant                 = "kaclone [flags] <repository> [directory]"
	commandShortDescriptionConstant    = "Clone a git repository and apply Khan Academy conventions"
	commandLongDescriptionConstant     = "kaclone clones a repository and provisions the local checkout: committer email, commit message lint hook, commit message template, shared gitconfig extras, and optional master branch protection. With --repair the same conventions are applied to the checkout in the current working directory."
	repairWithArgumentsMessageConstant = "--repair provisions the current directory and does not accept positional arguments"
	maximumPositionalArgumentsConstant = 2
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the provisioning command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConsoleLoggerProvider        LoggerProvider
	GitExecutor                  GitExecutor
	RepositoryManager            GitRepositoryManager
	FileSystem                   FileSystem
	AccountNameProvider          AccountNameProvider
	WorkingDirectoryChanger      WorkingDirectoryChanger
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the provisioning command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(maximumPositionalArgumentsConstant),
		RunE:  builder.run,
	}

	flagutils.BindProvisionFlags(command, flagutils.ProvisionDefaults{})

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	flagValues, flagsAvailable := flagutils.ResolveProvisionFlags(command)
	repairRequested := flagsAvailable && flagValues.Repair

	if !repairRequested && len(arguments) == 0 {
		return command.Help()
	}
	if repairRequested && len(arguments) > 0 {
		return errors.New(repairWithArgumentsMessageConstant)
	}

	configuration := builder.resolveConfiguration()
	options := buildOptions(configuration, flagValues, flagsAvailable, arguments)

	diagnosticLogger := builder.resolveLogger(builder.LoggerProvider)
	consoleLogger := builder.resolveLogger(builder.ConsoleLoggerProvider)
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := ResolveGitExecutor(builder.GitExecutor, diagnosticLogger, consoleLogger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := ResolveRepositoryManager(builder.RepositoryManager, gitExecutor)
	if managerError != nil {
		return managerError
	}

	service, serviceCreationError := NewService(Dependencies{
		RepositoryManager:       repositoryManager,
		FileSystem:              builder.FileSystem,
		AccountNameProvider:     builder.AccountNameProvider,
		WorkingDirectoryChanger: builder.WorkingDirectoryChanger,
		Output:                  utils.NewFlushingWriter(command.OutOrStdout()),
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	_, provisionError := service.Provision(command.Context(), options)
	return provisionError
}

// buildOptions layers explicitly set flags over configured defaults.
func buildOptions(configuration CommandConfiguration, flagValues flagutils.ProvisionFlagValues, flagsAvailable bool, arguments []string) Options {
	options := Options{
		EmailDomain:     configuration.EmailDomain,
		ProtectMaster:   configuration.ProtectMaster,
		Quiet:           configuration.Quiet,
		SkipEmail:       configuration.SkipsStep(skipStepEmailConstant),
		SkipGitConfig:   configuration.SkipsStep(skipStepGitConfigConstant),
		SkipLintHook:    configuration.SkipsStep(skipStepLintHookConstant),
		SkipMessageHook: configuration.SkipsStep(skipStepMessageHookConstant),
	}
	if len(arguments) > 0 {
		options.RepositorySource = arguments[0]
	}
	if len(arguments) > 1 {
		options.Destination = arguments[1]
	}
	if !flagsAvailable {
		return options
	}

	options.Repair = flagValues.Repair
	if flagValues.EmailSet {
		options.Email = flagValues.Email
	}
	if flagValues.ProtectMasterSet {
		options.ProtectMaster = flagValues.ProtectMaster
	}
	if flagValues.QuietSet {
		options.Quiet = flagValues.Quiet
	}
	if flagValues.SkipEmailSet {
		options.SkipEmail = flagValues.SkipEmail
	}
	if flagValues.SkipGitConfigSet {
		options.SkipGitConfig = flagValues.SkipGitConfig
	}
	if flagValues.SkipLintHookSet {
		options.SkipLintHook = flagValues.SkipLintHook
	}
	if flagValues.SkipMessageHookSet {
		options.SkipMessageHook = flagValues.SkipMessageHook
	}

	return options
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
