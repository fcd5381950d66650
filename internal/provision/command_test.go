package provision_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Khan/kaclone/internal/provision"
)

type recordingRepositoryManager struct {
	hooksDirectory  string
	storedValues    map[string]string
	cloneCalls      []string
	validateCalls   int
	configurationOf map[string]string
}

func (manager *recordingRepositoryManager) ValidateRepository(context.Context, string) error {
	manager.validateCalls++
	return nil
}

func (manager *recordingRepositoryManager) CloneRepository(_ context.Context, repositorySource string, destinationPath string) error {
	manager.cloneCalls = append(manager.cloneCalls, repositorySource+" "+destinationPath)
	return nil
}

func (manager *recordingRepositoryManager) GetLocalConfiguration(_ context.Context, _ string, configurationKey string) (string, bool, error) {
	storedValue, storedPresent := manager.storedValues[configurationKey]
	return storedValue, storedPresent, nil
}

func (manager *recordingRepositoryManager) SetLocalConfiguration(_ context.Context, _ string, configurationKey string, configurationValue string) error {
	if manager.configurationOf == nil {
		manager.configurationOf = map[string]string{}
	}
	manager.configurationOf[configurationKey] = configurationValue
	return nil
}

func (manager *recordingRepositoryManager) ResolveHooksDirectory(context.Context, string) (string, error) {
	return manager.hooksDirectory, nil
}

func newCommandFixture(t *testing.T) (*recordingRepositoryManager, provision.CommandBuilder) {
	t.Setenv("HOME", t.TempDir())
	manager := &recordingRepositoryManager{
		hooksDirectory: filepath.Join(t.TempDir(), "hooks"),
		storedValues:   map[string]string{},
	}
	builder := provision.CommandBuilder{
		LoggerProvider:          func() *zap.Logger { return zap.NewNop() },
		RepositoryManager:       manager,
		AccountNameProvider:     func() string { return "jdoe" },
		WorkingDirectoryChanger: func(string) error { return nil },
	}
	return manager, builder
}

func TestBuildReturnsCommand(t *testing.T) {
	builder := provision.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	require.IsType(t, &cobra.Command{}, command)
	require.True(t, strings.HasPrefix(command.Use, "kaclone"))
}

func TestCommandShowsHelpWithoutArguments(t *testing.T) {
	manager, builder := newCommandFixture(t)
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(t, command.RunE(command, []string{}))
	require.Contains(t, outputBuffer.String(), "kaclone [flags] <repository> [directory]")
	require.Empty(t, manager.cloneCalls)
	require.Zero(t, manager.validateCalls)
}

func TestCommandRejectsRepairWithArguments(t *testing.T) {
	manager, builder := newCommandFixture(t)
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	require.NoError(t, command.Flags().Set("repair", "true"))

	runError := command.RunE(command, []string{"https://example.com/org/project.git"})
	require.ErrorContains(t, runError, "--repair")
	require.Empty(t, manager.cloneCalls)
	require.Zero(t, manager.validateCalls)
}

func TestCommandProvisionsRepository(t *testing.T) {
	manager, builder := newCommandFixture(t)
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(t, command.RunE(command, []string{"https://example.com/org/project.git"}))
	require.Equal(t, []string{"https://example.com/org/project.git project"}, manager.cloneCalls)
	require.Equal(t, 1, manager.validateCalls)
	require.Equal(t, "jdoe@khanacademy.org", manager.configurationOf["user.email"])

	hookInformation, statError := os.Stat(filepath.Join(manager.hooksDirectory, "commit-msg"))
	require.NoError(t, statError)
	require.NotZero(t, hookInformation.Mode().Perm()&0o100)

	require.Contains(t, outputBuffer.String(), "EMAIL: user.email set to jdoe@khanacademy.org")
}

func TestCommandHonorsDestinationArgument(t *testing.T) {
	manager, builder := newCommandFixture(t)
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	require.NoError(t, command.RunE(command, []string{"https://example.com/org/project.git", "checkout"}))
	require.Equal(t, []string{"https://example.com/org/project.git checkout"}, manager.cloneCalls)
}

func TestCommandAppliesConfiguredDefaults(t *testing.T) {
	manager, builder := newCommandFixture(t)
	builder.ConfigurationProvider = func() provision.CommandConfiguration {
		return provision.CommandConfiguration{
			EmailDomain: "example.org",
			Quiet:       true,
			Skip:        []string{"lint", "msg", "gitconfig"},
		}
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(t, command.RunE(command, []string{"https://example.com/org/project.git"}))
	require.Equal(t, "jdoe@example.org", manager.configurationOf["user.email"])

	_, statError := os.Stat(filepath.Join(manager.hooksDirectory, "commit-msg"))
	require.True(t, os.IsNotExist(statError))
	require.Empty(t, outputBuffer.String())
}

func TestCommandFlagsOverrideConfiguration(t *testing.T) {
	manager, builder := newCommandFixture(t)
	builder.ConfigurationProvider = func() provision.CommandConfiguration {
		return provision.CommandConfiguration{Quiet: true, Skip: []string{"lint"}}
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	require.NoError(t, command.Flags().Set("quiet", "false"))
	require.NoError(t, command.Flags().Set("no-lint", "false"))

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(t, command.RunE(command, []string{"https://example.com/org/project.git"}))
	require.Contains(t, outputBuffer.String(), "EMAIL: user.email set to jdoe@khanacademy.org")

	_, statError := os.Stat(filepath.Join(manager.hooksDirectory, "commit-msg"))
	require.NoError(t, statError)
}

func TestCommandInstallsProtectionOnFlag(t *testing.T) {
	manager, builder := newCommandFixture(t)
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	require.NoError(t, command.Flags().Set("protect-master", "true"))

	require.NoError(t, command.RunE(command, []string{"https://example.com/org/project.git"}))
	require.Equal(t, "true", manager.configurationOf["kaclone.protect-master"])

	for _, hookName := range []string{"pre-commit", "pre-push"} {
		_, statError := os.Stat(filepath.Join(manager.hooksDirectory, hookName))
		require.NoError(t, statError)
	}
}

func TestCommandRepairsCurrentDirectory(t *testing.T) {
	manager, builder := newCommandFixture(t)
	manager.storedValues["kaclone.email"] = "stored@example.org"
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	require.NoError(t, command.Flags().Set("repair", "true"))

	require.NoError(t, command.RunE(command, []string{}))
	require.Empty(t, manager.cloneCalls)
	require.Equal(t, 1, manager.validateCalls)
	require.Equal(t, "stored@example.org", manager.configurationOf["user.email"])
}

func TestCommandPersistsExplicitEmail(t *testing.T) {
	manager, builder := newCommandFixture(t)
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	require.NoError(t, command.Flags().Set("email", "someone@example.org"))

	require.NoError(t, command.RunE(command, []string{"https://example.com/org/project.git"}))
	require.Equal(t, "someone@example.org", manager.configurationOf["user.email"])
	require.Equal(t, "someone@example.org", manager.configurationOf["kaclone.email"])
}
