package tests

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

const (
	integrationCommandTimeout      = 30 * time.Second
	integrationOriginDirectoryName = "origin"
	integrationSeedCommitMessage   = "seed"
	integrationIdentityName        = "user.name=Integration"
	integrationIdentityEmail       = "user.email=integration@example.com"
)

func runIntegrationCommand(testInstance *testing.T, commandDirectory string, environmentOverrides []string, arguments []string) (string, error) {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancel()

	command := exec.CommandContext(executionContext, integrationBinaryPath, arguments...)
	command.Dir = commandDirectory
	command.Env = append(append([]string{}, os.Environ()...), environmentOverrides...)

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}

func runGitCommand(testInstance *testing.T, workingDirectory string, environmentOverrides []string, arguments ...string) (string, error) {
	testInstance.Helper()

	command := exec.Command("git", arguments...)
	command.Dir = workingDirectory
	command.Env = append(append([]string{}, os.Environ()...), "GIT_TERMINAL_PROMPT=0")
	command.Env = append(command.Env, environmentOverrides...)

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}

func requireNoError(testInstance *testing.T, err error, output string) {
	testInstance.Helper()
	if err != nil {
		testInstance.Fatalf("command failed: %v\n%s", err, output)
	}
}

// integrationEnvironment isolates the child process from the developer's real
// home directory and configuration search paths.
func integrationEnvironment(homeDirectory string, extraVariables ...string) []string {
	baseEnvironment := []string{
		"HOME=" + homeDirectory,
		"XDG_CONFIG_HOME=" + filepath.Join(homeDirectory, ".config"),
	}
	return append(baseEnvironment, extraVariables...)
}

func createSeededRepository(testInstance *testing.T) string {
	testInstance.Helper()

	parentDirectory := testInstance.TempDir()
	originDirectory := filepath.Join(parentDirectory, integrationOriginDirectoryName)

	initOutput, initError := runGitCommand(testInstance, parentDirectory, nil, "init", "--initial-branch=master", originDirectory)
	requireNoError(testInstance, initError, initOutput)

	commitOutput, commitError := runGitCommand(
		testInstance,
		originDirectory,
		nil,
		"-c", integrationIdentityName,
		"-c", integrationIdentityEmail,
		"commit", "--allow-empty", "-m", integrationSeedCommitMessage,
	)
	requireNoError(testInstance, commitError, commitOutput)

	return originDirectory
}
