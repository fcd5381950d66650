package provision

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

const (
	hooksDirectoryRequiredMessageConstant       = "hooks directory must be provided"
	hookNameRequiredMessageConstant             = "hook name must be provided"
	hooksDirectoryCreateFailureTemplateConstant = "failed to create hooks directory %s: %w"
	hookReplaceFailureTemplateConstant          = "failed to replace existing hook %s: %w"
	hookWriteFailureTemplateConstant            = "failed to write hook %s: %w"
	hookInspectFailureTemplateConstant          = "failed to inspect hook %s: %w"
	hookPermissionFailureTemplateConstant       = "failed to mark hook %s executable: %w"
)

const (
	hooksDirectoryPermissionsConstant fs.FileMode = 0o755
	hookFilePermissionsConstant       fs.FileMode = 0o644
	readPermissionMaskConstant        fs.FileMode = 0o444
	executablePermissionShiftConstant             = 2
)

// ErrHooksDirectoryRequired indicates the hooks directory argument was empty.
var ErrHooksDirectoryRequired = errors.New(hooksDirectoryRequiredMessageConstant)

// ErrHookNameRequired indicates the hook name argument was empty.
var ErrHookNameRequired = errors.New(hookNameRequiredMessageConstant)

// HookInstaller copies embedded hook templates into repository hooks directories.
type HookInstaller struct {
	fileSystem FileSystem
}

// NewHookInstaller constructs a HookInstaller backed by the provided filesystem.
func NewHookInstaller(fileSystem FileSystem) *HookInstaller {
	if fileSystem == nil {
		fileSystem = OSFileSystem{}
	}
	return &HookInstaller{fileSystem: fileSystem}
}

// Install copies the named embedded template into the hooks directory under
// hookName and marks the result executable. Existing files and symbolic links
// at the destination are removed first; content is never written through a
// link. Reinstalling over a previous installation yields the same single file.
func (installer *HookInstaller) Install(hooksDirectory string, templateName string, hookName string) error {
	trimmedHooksDirectory := strings.TrimSpace(hooksDirectory)
	if len(trimmedHooksDirectory) == 0 {
		return ErrHooksDirectoryRequired
	}
	trimmedHookName := strings.TrimSpace(hookName)
	if len(trimmedHookName) == 0 {
		return ErrHookNameRequired
	}

	templateContent, templateError := hookTemplateContent(templateName)
	if templateError != nil {
		return templateError
	}

	if directoryError := installer.fileSystem.MkdirAll(trimmedHooksDirectory, hooksDirectoryPermissionsConstant); directoryError != nil {
		return fmt.Errorf(hooksDirectoryCreateFailureTemplateConstant, trimmedHooksDirectory, directoryError)
	}

	hookPath := filepath.Join(trimmedHooksDirectory, trimmedHookName)
	if _, existingError := installer.fileSystem.Lstat(hookPath); existingError == nil {
		if removeError := installer.fileSystem.Remove(hookPath); removeError != nil {
			return fmt.Errorf(hookReplaceFailureTemplateConstant, hookPath, removeError)
		}
	}

	if writeError := installer.fileSystem.WriteFile(hookPath, templateContent, hookFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(hookWriteFailureTemplateConstant, hookPath, writeError)
	}

	hookInformation, statError := installer.fileSystem.Stat(hookPath)
	if statError != nil {
		return fmt.Errorf(hookInspectFailureTemplateConstant, hookPath, statError)
	}

	// Execute is granted for every permission class that already holds read.
	currentMode := hookInformation.Mode()
	executableMode := currentMode | ((currentMode & readPermissionMaskConstant) >> executablePermissionShiftConstant)
	if permissionError := installer.fileSystem.Chmod(hookPath, executableMode); permissionError != nil {
		return fmt.Errorf(hookPermissionFailureTemplateConstant, hookPath, permissionError)
	}

	return nil
}
