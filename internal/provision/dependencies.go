package provision

import (
	"context"

	"go.uber.org/zap"

	"github.com/Khan/kaclone/internal/execshell"
	"github.com/Khan/kaclone/internal/gitrepo"
	"github.com/Khan/kaclone/internal/ui"
)

// GitExecutor runs git commands on behalf of provisioning.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// With human-readable logging the executor narrates through the console event
// logger instead of the structured diagnostic logger, so each command is
// reported exactly once.
func ResolveGitExecutor(existing GitExecutor, diagnosticLogger *zap.Logger, consoleLogger *zap.Logger, humanReadableLogging bool) (GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	if humanReadableLogging {
		return execshell.NewShellExecutorWithObserver(zap.NewNop(), commandRunner, ui.NewConsoleCommandEventLogger(consoleLogger))
	}
	return execshell.NewShellExecutor(diagnosticLogger, commandRunner)
}

// ResolveRepositoryManager returns the provided repository manager or constructs one from the executor.
func ResolveRepositoryManager(existing GitRepositoryManager, executor GitExecutor) (GitRepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}
