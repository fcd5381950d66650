package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Khan/kaclone/internal/execshell"
)

const (
	gitCloneSubcommandConstant           = "clone"
	gitConfigSubcommandConstant          = "config"
	gitRevParseSubcommandConstant        = "rev-parse"
	gitConfigGetFlagConstant             = "--get"
	gitGitPathFlagConstant               = "--git-path"
	hooksRepositoryPathConstant          = "hooks"
	missingConfigurationExitCodeConstant = 1
	requiredValueMessageConstant         = "value required"
	inputValidationErrorTemplateConstant = "%s: %s"
	repositoryPathFieldNameConstant      = "repository path"
	repositorySourceFieldNameConstant    = "repository source"
	destinationPathFieldNameConstant     = "destination path"
	configurationKeyFieldNameConstant    = "configuration key"
)

// ErrGitExecutorNotConfigured indicates the repository manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New("git executor not configured")

// ErrHooksPathNotReported indicates git produced no hooks directory path.
var ErrHooksPathNotReported = errors.New("git did not report a hooks directory")

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// InputValidationError reports a missing required argument.
type InputValidationError struct {
	FieldName string
}

// Error describes the missing argument.
func (validationError InputValidationError) Error() string {
	return fmt.Sprintf(inputValidationErrorTemplateConstant, validationError.FieldName, requiredValueMessageConstant)
}

// RepositoryManager performs repository-level git operations through an executor.
type RepositoryManager struct {
	gitExecutor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by the provided executor.
func NewRepositoryManager(gitExecutor GitExecutor) (*RepositoryManager, error) {
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{gitExecutor: gitExecutor}, nil
}

// ValidateRepository confirms the path hosts a git repository by running a bare rev-parse.
// Output streams through to the parent process so git reports diagnostics directly.
func (manager *RepositoryManager) ValidateRepository(executionContext context.Context, repositoryPath string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InputValidationError{FieldName: repositoryPathFieldNameConstant}
	}

	_, executionError := manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant},
		WorkingDirectory: trimmedRepositoryPath,
		StreamOutput:     true,
	})
	return executionError
}

// CloneRepository clones the source into the destination path with output streaming through.
func (manager *RepositoryManager) CloneRepository(executionContext context.Context, repositorySource string, destinationPath string) error {
	trimmedRepositorySource := strings.TrimSpace(repositorySource)
	if len(trimmedRepositorySource) == 0 {
		return InputValidationError{FieldName: repositorySourceFieldNameConstant}
	}
	trimmedDestinationPath := strings.TrimSpace(destinationPath)
	if len(trimmedDestinationPath) == 0 {
		return InputValidationError{FieldName: destinationPathFieldNameConstant}
	}

	_, executionError := manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:    []string{gitCloneSubcommandConstant, trimmedRepositorySource, trimmedDestinationPath},
		StreamOutput: true,
	})
	return executionError
}

// GetLocalConfiguration reads a configuration value from the repository.
// The second return value reports whether the key was present; git signals an
// absent key with exit code 1, which is not an error here.
func (manager *RepositoryManager) GetLocalConfiguration(executionContext context.Context, repositoryPath string, configurationKey string) (string, bool, error) {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return "", false, InputValidationError{FieldName: repositoryPathFieldNameConstant}
	}
	trimmedConfigurationKey := strings.TrimSpace(configurationKey)
	if len(trimmedConfigurationKey) == 0 {
		return "", false, InputValidationError{FieldName: configurationKeyFieldNameConstant}
	}

	executionResult, executionError := manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitConfigSubcommandConstant, gitConfigGetFlagConstant, trimmedConfigurationKey},
		WorkingDirectory: trimmedRepositoryPath,
	})
	if executionError == nil {
		return strings.TrimSpace(executionResult.StandardOutput), true, nil
	}

	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode == missingConfigurationExitCodeConstant {
		return "", false, nil
	}

	return "", false, executionError
}

// SetLocalConfiguration writes a configuration value into the repository.
func (manager *RepositoryManager) SetLocalConfiguration(executionContext context.Context, repositoryPath string, configurationKey string, configurationValue string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return InputValidationError{FieldName: repositoryPathFieldNameConstant}
	}
	trimmedConfigurationKey := strings.TrimSpace(configurationKey)
	if len(trimmedConfigurationKey) == 0 {
		return InputValidationError{FieldName: configurationKeyFieldNameConstant}
	}

	_, executionError := manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitConfigSubcommandConstant, trimmedConfigurationKey, configurationValue},
		WorkingDirectory: trimmedRepositoryPath,
	})
	return executionError
}

// ResolveHooksDirectory locates the repository hooks directory.
// Relative results are joined to the repository path, matching how git reports
// --git-path values from inside a working tree.
func (manager *RepositoryManager) ResolveHooksDirectory(executionContext context.Context, repositoryPath string) (string, error) {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return "", InputValidationError{FieldName: repositoryPathFieldNameConstant}
	}

	executionResult, executionError := manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitGitPathFlagConstant, hooksRepositoryPathConstant},
		WorkingDirectory: trimmedRepositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}

	hooksDirectoryPath := strings.TrimSpace(executionResult.StandardOutput)
	if len(hooksDirectoryPath) == 0 {
		return "", ErrHooksPathNotReported
	}

	if !filepath.IsAbs(hooksDirectoryPath) {
		hooksDirectoryPath = filepath.Join(trimmedRepositoryPath, hooksDirectoryPath)
	}

	return hooksDirectoryPath, nil
}
