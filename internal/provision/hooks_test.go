package provision

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type permissionRecordingFileSystem struct {
	statMode   fs.FileMode
	chmodModes []fs.FileMode
}

func (fileSystem *permissionRecordingFileSystem) Stat(string) (fs.FileInfo, error) {
	return stubFileInfo{mode: fileSystem.statMode}, nil
}

func (fileSystem *permissionRecordingFileSystem) Lstat(string) (fs.FileInfo, error) {
	return nil, fs.ErrNotExist
}

func (fileSystem *permissionRecordingFileSystem) Remove(string) error { return nil }

func (fileSystem *permissionRecordingFileSystem) MkdirAll(string, fs.FileMode) error { return nil }

func (fileSystem *permissionRecordingFileSystem) WriteFile(string, []byte, fs.FileMode) error {
	return nil
}

func (fileSystem *permissionRecordingFileSystem) Chmod(_ string, permissions fs.FileMode) error {
	fileSystem.chmodModes = append(fileSystem.chmodModes, permissions)
	return nil
}

type stubFileInfo struct {
	mode fs.FileMode
}

func (stubFileInfo) Name() string                  { return "" }
func (stubFileInfo) Size() int64                   { return 0 }
func (information stubFileInfo) Mode() fs.FileMode { return information.mode }
func (stubFileInfo) ModTime() time.Time            { return time.Time{} }
func (stubFileInfo) IsDir() bool                   { return false }
func (stubFileInfo) Sys() any                      { return nil }

func TestHookInstallerInstallsExecutableTemplate(t *testing.T) {
	hooksDirectory := filepath.Join(t.TempDir(), "hooks")
	installer := NewHookInstaller(nil)

	require.NoError(t, installer.Install(hooksDirectory, lintHookNameConstant, lintHookNameConstant))

	hookPath := filepath.Join(hooksDirectory, lintHookNameConstant)
	installedContent, readError := os.ReadFile(hookPath)
	require.NoError(t, readError)

	expectedContent, templateError := hookTemplateContent(lintHookNameConstant)
	require.NoError(t, templateError)
	require.Equal(t, expectedContent, installedContent)

	hookInformation, statError := os.Stat(hookPath)
	require.NoError(t, statError)
	permissions := hookInformation.Mode().Perm()
	require.NotZero(t, permissions&0o100)
	require.Equal(t, permissions, permissions|((permissions&0o444)>>2))
}

func TestHookInstallerReinstallLeavesSingleExecutableFile(t *testing.T) {
	hooksDirectory := t.TempDir()
	installer := NewHookInstaller(nil)

	require.NoError(t, installer.Install(hooksDirectory, lintHookNameConstant, lintHookNameConstant))
	require.NoError(t, installer.Install(hooksDirectory, lintHookNameConstant, lintHookNameConstant))

	directoryEntries, readError := os.ReadDir(hooksDirectory)
	require.NoError(t, readError)
	require.Len(t, directoryEntries, 1)
	require.Equal(t, lintHookNameConstant, directoryEntries[0].Name())

	hookInformation, statError := os.Stat(filepath.Join(hooksDirectory, lintHookNameConstant))
	require.NoError(t, statError)
	require.NotZero(t, hookInformation.Mode().Perm()&0o100)

	installedContent, contentError := os.ReadFile(filepath.Join(hooksDirectory, lintHookNameConstant))
	require.NoError(t, contentError)
	expectedContent, templateError := hookTemplateContent(lintHookNameConstant)
	require.NoError(t, templateError)
	require.Equal(t, expectedContent, installedContent)
}

func TestHookInstallerReplacesSymbolicLink(t *testing.T) {
	hooksDirectory := t.TempDir()
	linkTargetPath := filepath.Join(t.TempDir(), "linked-script")
	require.NoError(t, os.WriteFile(linkTargetPath, []byte("original"), 0o644))

	hookPath := filepath.Join(hooksDirectory, prePushHookNameConstant)
	require.NoError(t, os.Symlink(linkTargetPath, hookPath))

	installer := NewHookInstaller(nil)
	require.NoError(t, installer.Install(hooksDirectory, prePushHookNameConstant, prePushHookNameConstant))

	hookInformation, lstatError := os.Lstat(hookPath)
	require.NoError(t, lstatError)
	require.Zero(t, hookInformation.Mode()&os.ModeSymlink)

	linkTargetContent, readError := os.ReadFile(linkTargetPath)
	require.NoError(t, readError)
	require.Equal(t, "original", string(linkTargetContent))
}

func TestHookInstallerValidatesArguments(t *testing.T) {
	installer := NewHookInstaller(nil)

	require.ErrorIs(t, installer.Install("", lintHookNameConstant, lintHookNameConstant), ErrHooksDirectoryRequired)
	require.ErrorIs(t, installer.Install(t.TempDir(), lintHookNameConstant, ""), ErrHookNameRequired)
}

func TestHookInstallerGrantsExecuteWhereReadable(t *testing.T) {
	testCases := []struct {
		name         string
		initialMode  fs.FileMode
		expectedMode fs.FileMode
	}{
		{name: "WorldReadable", initialMode: 0o644, expectedMode: 0o755},
		{name: "OwnerReadableOnly", initialMode: 0o600, expectedMode: 0o700},
		{name: "ReadOnlyEverywhere", initialMode: 0o444, expectedMode: 0o555},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			fileSystem := &permissionRecordingFileSystem{statMode: testCase.initialMode}
			installer := NewHookInstaller(fileSystem)

			require.NoError(t, installer.Install("/repository/hooks", lintHookNameConstant, lintHookNameConstant))
			require.Equal(t, []fs.FileMode{testCase.expectedMode}, fileSystem.chmodModes)
		})
	}
}
