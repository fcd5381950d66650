package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	pathutils "github.com/Khan/kaclone/internal/utils/path"
)

const (
	repositoryManagerMissingMessageConstant        = "repository manager not configured"
	repositorySourceRequiredMessageConstant        = "repository source must be provided"
	repairArgumentsMessageConstant                 = "repair mode does not accept positional arguments"
	currentDirectoryRelativePathConstant           = "."
	userEmailConfigurationKeyConstant              = "user.email"
	commitTemplateConfigurationKeyConstant         = "commit.template"
	includePathConfigurationKeyConstant            = "include.path"
	protectionConfigurationKeyConstant             = "kaclone.protect-master"
	protectionEnabledValueConstant                 = "true"
	commitTemplateLocationConstant                 = "~/.git_template/commit_template"
	configurationExtrasLocationConstant            = "~/.gitconfig.khan"
	workingDirectoryChangeFailureTemplateConstant  = "failed to enter %s: %w"
	hooksDirectoryFailureTemplateConstant          = "failed to locate hooks directory: %w"
	emailResolutionFailureTemplateConstant         = "failed to resolve committer email: %w"
	emailConfigurationFailureTemplateConstant      = "failed to set committer email: %w"
	lintHookFailureTemplateConstant                = "failed to install lint hook: %w"
	commitTemplateLinkFailureTemplateConstant      = "failed to link commit message template: %w"
	configurationExtrasLinkFailureTemplateConstant = "failed to link configuration extras: %w"
	protectionFailureTemplateConstant              = "failed to install protection hooks: %w"
	protectionPreferenceFailureTemplateConstant    = "failed to read protection preference: %w"
)

const (
	emailConfirmationTemplateConstant               = "EMAIL: user.email set to %s\n"
	lintHookConfirmationTemplateConstant            = "LINT: installed %s hook\n"
	commitTemplateConfirmationTemplateConstant      = "MSG: commit.template linked to %s\n"
	configurationExtrasConfirmationTemplateConstant = "GITCONFIG: include.path linked to %s\n"
	protectionConfirmationTemplateConstant          = "PROTECT: installed %s and %s hooks\n"
	commitTemplateWarningTemplateConstant           = "WARNING: %s not found; commit.template not linked\n"
	configurationExtrasWarningTemplateConstant      = "WARNING: %s not found; include.path not linked\n"
)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrRepositorySourceRequired indicates no repository source was supplied outside repair mode.
var ErrRepositorySourceRequired = errors.New(repositorySourceRequiredMessageConstant)

// ErrRepairAcceptsNoArguments indicates repair mode received a source or destination.
var ErrRepairAcceptsNoArguments = errors.New(repairArgumentsMessageConstant)

// GitRepositoryManager describes the repository operations provisioning relies on.
type GitRepositoryManager interface {
	ValidateRepository(executionContext context.Context, repositoryPath string) error
	CloneRepository(executionContext context.Context, repositorySource string, destinationPath string) error
	GetLocalConfiguration(executionContext context.Context, repositoryPath string, configurationKey string) (string, bool, error)
	SetLocalConfiguration(executionContext context.Context, repositoryPath string, configurationKey string, configurationValue string) error
	ResolveHooksDirectory(executionContext context.Context, repositoryPath string) (string, error)
}

// DestinationResolver derives a local directory name from a repository source.
type DestinationResolver interface {
	Resolve(repositorySource string) string
}

// PathExpander resolves home-relative paths into absolute ones.
type PathExpander interface {
	Expand(candidatePath string) string
}

// WorkingDirectoryChanger moves the process into the provided directory.
type WorkingDirectoryChanger func(directoryPath string) error

// Dependencies enumerates external collaborators required for provisioning.
type Dependencies struct {
	RepositoryManager       GitRepositoryManager
	FileSystem              FileSystem
	DestinationResolver     DestinationResolver
	PathExpander            PathExpander
	AccountNameProvider     AccountNameProvider
	WorkingDirectoryChanger WorkingDirectoryChanger
	Output                  io.Writer
}

// Options configures a provisioning run. Values are resolved once from flags
// and configuration before the run starts and are not mutated afterwards.
type Options struct {
	RepositorySource string
	Destination      string
	Email            string
	EmailDomain      string
	SkipEmail        bool
	SkipGitConfig    bool
	SkipLintHook     bool
	SkipMessageHook  bool
	ProtectMaster    bool
	Repair           bool
	Quiet            bool
}

// Result captures the observable outcome of a provisioning run.
type Result struct {
	TargetDirectory string
}

// Service applies organizational conventions to a git working copy.
type Service struct {
	repositoryManager       GitRepositoryManager
	hookInstaller           *HookInstaller
	emailResolver           *EmailResolver
	fileSystem              FileSystem
	destinationResolver     DestinationResolver
	pathExpander            PathExpander
	workingDirectoryChanger WorkingDirectoryChanger
	output                  io.Writer
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}

	fileSystem := dependencies.FileSystem
	if fileSystem == nil {
		fileSystem = OSFileSystem{}
	}
	destinationResolver := dependencies.DestinationResolver
	if destinationResolver == nil {
		destinationResolver = pathutils.NewCloneDestinationResolver()
	}
	pathExpander := dependencies.PathExpander
	if pathExpander == nil {
		pathExpander = pathutils.NewHomeExpander()
	}
	workingDirectoryChanger := dependencies.WorkingDirectoryChanger
	if workingDirectoryChanger == nil {
		workingDirectoryChanger = os.Chdir
	}
	outputWriter := dependencies.Output
	if outputWriter == nil {
		outputWriter = io.Discard
	}

	return &Service{
		repositoryManager:       dependencies.RepositoryManager,
		hookInstaller:           NewHookInstaller(fileSystem),
		emailResolver:           NewEmailResolver(dependencies.RepositoryManager, dependencies.AccountNameProvider),
		fileSystem:              fileSystem,
		destinationResolver:     destinationResolver,
		pathExpander:            pathExpander,
		workingDirectoryChanger: workingDirectoryChanger,
		output:                  outputWriter,
	}, nil
}

// Provision acquires the target working copy and applies the requested steps
// in order: committer email, lint hook, commit message template link,
// configuration extras link, and branch protection. Every step is idempotent;
// repair mode reapplies them to the current directory without cloning.
func (service *Service) Provision(executionContext context.Context, options Options) (Result, error) {
	targetDirectory, acquisitionError := service.acquireTarget(executionContext, options)
	if acquisitionError != nil {
		return Result{}, acquisitionError
	}

	if validationError := service.repositoryManager.ValidateRepository(executionContext, currentDirectoryRelativePathConstant); validationError != nil {
		return Result{}, validationError
	}

	protectionRequested, protectionError := service.protectionRequested(executionContext, options)
	if protectionError != nil {
		return Result{}, protectionError
	}

	hooksDirectory := ""
	if !options.SkipLintHook || protectionRequested {
		resolvedHooksDirectory, hooksError := service.repositoryManager.ResolveHooksDirectory(executionContext, currentDirectoryRelativePathConstant)
		if hooksError != nil {
			return Result{}, fmt.Errorf(hooksDirectoryFailureTemplateConstant, hooksError)
		}
		hooksDirectory = resolvedHooksDirectory
	}

	if !options.SkipEmail {
		if emailError := service.applyCommitterEmail(executionContext, options); emailError != nil {
			return Result{}, emailError
		}
	}
	if !options.SkipLintHook {
		if lintError := service.installLintHook(hooksDirectory, options); lintError != nil {
			return Result{}, lintError
		}
	}
	if !options.SkipMessageHook {
		if templateError := service.linkCommitMessageTemplate(executionContext, options); templateError != nil {
			return Result{}, templateError
		}
	}
	if !options.SkipGitConfig {
		if extrasError := service.linkConfigurationExtras(executionContext, options); extrasError != nil {
			return Result{}, extrasError
		}
	}
	if protectionRequested {
		if protectError := service.installProtectionHooks(executionContext, hooksDirectory, options); protectError != nil {
			return Result{}, protectError
		}
	}

	return Result{TargetDirectory: targetDirectory}, nil
}

// acquireTarget clones the repository or, in repair mode, adopts the current
// directory. The process working directory is the target afterwards, so later
// git invocations and hook paths resolve relative to it.
func (service *Service) acquireTarget(executionContext context.Context, options Options) (string, error) {
	if options.Repair {
		if len(strings.TrimSpace(options.RepositorySource)) > 0 || len(strings.TrimSpace(options.Destination)) > 0 {
			return "", ErrRepairAcceptsNoArguments
		}
		return currentDirectoryRelativePathConstant, nil
	}

	trimmedRepositorySource := strings.TrimSpace(options.RepositorySource)
	if len(trimmedRepositorySource) == 0 {
		return "", ErrRepositorySourceRequired
	}

	destinationDirectory := strings.TrimSpace(options.Destination)
	if len(destinationDirectory) == 0 {
		destinationDirectory = service.destinationResolver.Resolve(trimmedRepositorySource)
	}

	if cloneError := service.repositoryManager.CloneRepository(executionContext, trimmedRepositorySource, destinationDirectory); cloneError != nil {
		return "", cloneError
	}

	if changeError := service.workingDirectoryChanger(destinationDirectory); changeError != nil {
		return "", fmt.Errorf(workingDirectoryChangeFailureTemplateConstant, destinationDirectory, changeError)
	}

	return destinationDirectory, nil
}

// protectionRequested reports whether protection hooks should be installed.
// Repair runs also honor the preference recorded by an earlier opt-in.
func (service *Service) protectionRequested(executionContext context.Context, options Options) (bool, error) {
	if options.ProtectMaster {
		return true, nil
	}
	if !options.Repair {
		return false, nil
	}

	storedValue, storedPresent, readError := service.repositoryManager.GetLocalConfiguration(executionContext, currentDirectoryRelativePathConstant, protectionConfigurationKeyConstant)
	if readError != nil {
		return false, fmt.Errorf(protectionPreferenceFailureTemplateConstant, readError)
	}
	return storedPresent && storedValue == protectionEnabledValueConstant, nil
}

func (service *Service) applyCommitterEmail(executionContext context.Context, options Options) error {
	resolvedEmail, resolutionError := service.emailResolver.Resolve(executionContext, currentDirectoryRelativePathConstant, options.Email, options.EmailDomain)
	if resolutionError != nil {
		return fmt.Errorf(emailResolutionFailureTemplateConstant, resolutionError)
	}

	if assignmentError := service.repositoryManager.SetLocalConfiguration(executionContext, currentDirectoryRelativePathConstant, userEmailConfigurationKeyConstant, resolvedEmail); assignmentError != nil {
		return fmt.Errorf(emailConfigurationFailureTemplateConstant, assignmentError)
	}

	// An explicitly requested address is recorded so later repairs reuse it.
	if len(strings.TrimSpace(options.Email)) > 0 {
		if preferenceError := service.repositoryManager.SetLocalConfiguration(executionContext, currentDirectoryRelativePathConstant, storedEmailConfigurationKeyConstant, resolvedEmail); preferenceError != nil {
			return fmt.Errorf(emailConfigurationFailureTemplateConstant, preferenceError)
		}
	}

	service.confirm(options, emailConfirmationTemplateConstant, resolvedEmail)
	return nil
}

func (service *Service) installLintHook(hooksDirectory string, options Options) error {
	if installError := service.hookInstaller.Install(hooksDirectory, lintHookNameConstant, lintHookNameConstant); installError != nil {
		return fmt.Errorf(lintHookFailureTemplateConstant, installError)
	}
	service.confirm(options, lintHookConfirmationTemplateConstant, lintHookNameConstant)
	return nil
}

func (service *Service) linkCommitMessageTemplate(executionContext context.Context, options Options) error {
	templatePath := service.pathExpander.Expand(commitTemplateLocationConstant)
	if _, statError := service.fileSystem.Stat(templatePath); statError != nil {
		service.warn(commitTemplateWarningTemplateConstant, commitTemplateLocationConstant)
		return nil
	}

	if assignmentError := service.repositoryManager.SetLocalConfiguration(executionContext, currentDirectoryRelativePathConstant, commitTemplateConfigurationKeyConstant, templatePath); assignmentError != nil {
		return fmt.Errorf(commitTemplateLinkFailureTemplateConstant, assignmentError)
	}
	service.confirm(options, commitTemplateConfirmationTemplateConstant, templatePath)
	return nil
}

func (service *Service) linkConfigurationExtras(executionContext context.Context, options Options) error {
	extrasPath := service.pathExpander.Expand(configurationExtrasLocationConstant)
	if _, statError := service.fileSystem.Stat(extrasPath); statError != nil {
		service.warn(configurationExtrasWarningTemplateConstant, configurationExtrasLocationConstant)
		return nil
	}

	if assignmentError := service.repositoryManager.SetLocalConfiguration(executionContext, currentDirectoryRelativePathConstant, includePathConfigurationKeyConstant, extrasPath); assignmentError != nil {
		return fmt.Errorf(configurationExtrasLinkFailureTemplateConstant, assignmentError)
	}
	service.confirm(options, configurationExtrasConfirmationTemplateConstant, extrasPath)
	return nil
}

func (service *Service) installProtectionHooks(executionContext context.Context, hooksDirectory string, options Options) error {
	for _, hookName := range []string{preCommitHookNameConstant, prePushHookNameConstant} {
		if installError := service.hookInstaller.Install(hooksDirectory, hookName, hookName); installError != nil {
			return fmt.Errorf(protectionFailureTemplateConstant, installError)
		}
	}

	if preferenceError := service.repositoryManager.SetLocalConfiguration(executionContext, currentDirectoryRelativePathConstant, protectionConfigurationKeyConstant, protectionEnabledValueConstant); preferenceError != nil {
		return fmt.Errorf(protectionFailureTemplateConstant, preferenceError)
	}

	service.confirm(options, protectionConfirmationTemplateConstant, preCommitHookNameConstant, prePushHookNameConstant)
	return nil
}

func (service *Service) confirm(options Options, messageTemplate string, messageArguments ...any) {
	if options.Quiet {
		return
	}
	fmt.Fprintf(service.output, messageTemplate, messageArguments...)
}

// warn prints even in quiet mode.
func (service *Service) warn(messageTemplate string, messageArguments ...any) {
	fmt.Fprintf(service.output, messageTemplate, messageArguments...)
}
