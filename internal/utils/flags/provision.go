// Package flags provides helpers for binding standardized provisioning flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Shared provisioning flag names and shorthands.
const (
	ProtectMasterFlagName      = "protect-master"
	ProtectMasterFlagShorthand = "p"
	RepairFlagName             = "repair"
	SkipEmailFlagName          = "no-email"
	SkipGitConfigFlagName      = "no-gitconfig"
	SkipLintHookFlagName       = "no-lint"
	SkipMessageHookFlagName    = "no-msg"
	EmailFlagName              = "email"
	QuietFlagName              = "quiet"
	QuietFlagShorthand         = "q"
)

const (
	protectMasterFlagUsageConstant   = "Install hooks that block commits and pushes to the master branch"
	repairFlagUsageConstant          = "Re-provision the repository in the current working directory"
	skipEmailFlagUsageConstant       = "Skip configuring the repository commit email"
	skipGitConfigFlagUsageConstant   = "Skip linking the shared gitconfig include"
	skipLintHookFlagUsageConstant    = "Skip installing the lint pre-commit hook"
	skipMessageHookFlagUsageConstant = "Skip linking the commit message template"
	emailFlagUsageConstant           = "Commit email to configure for the repository"
	quietFlagUsageConstant           = "Suppress per-step confirmation output"
	emptyFlagValueConstant           = ""
)

// ProvisionDefaults describes default flag values sourced from configuration.
type ProvisionDefaults struct {
	ProtectMaster   bool
	SkipEmail       bool
	SkipGitConfig   bool
	SkipLintHook    bool
	SkipMessageHook bool
	Quiet           bool
}

// ProvisionFlagValues reports provisioning flag values along with whether each flag was set explicitly.
type ProvisionFlagValues struct {
	ProtectMaster      bool
	ProtectMasterSet   bool
	Repair             bool
	RepairSet          bool
	SkipEmail          bool
	SkipEmailSet       bool
	SkipGitConfig      bool
	SkipGitConfigSet   bool
	SkipLintHook       bool
	SkipLintHookSet    bool
	SkipMessageHook    bool
	SkipMessageHookSet bool
	Email              string
	EmailSet           bool
	Quiet              bool
	QuietSet           bool
}

// BindProvisionFlags attaches the provisioning flag set to the provided command.
func BindProvisionFlags(command *cobra.Command, defaults ProvisionDefaults) {
	if command == nil {
		return
	}

	flagSet := command.Flags()

	flagSet.BoolP(ProtectMasterFlagName, ProtectMasterFlagShorthand, defaults.ProtectMaster, protectMasterFlagUsageConstant)
	flagSet.Bool(RepairFlagName, false, repairFlagUsageConstant)
	flagSet.Bool(SkipEmailFlagName, defaults.SkipEmail, skipEmailFlagUsageConstant)
	flagSet.Bool(SkipGitConfigFlagName, defaults.SkipGitConfig, skipGitConfigFlagUsageConstant)
	flagSet.Bool(SkipLintHookFlagName, defaults.SkipLintHook, skipLintHookFlagUsageConstant)
	flagSet.Bool(SkipMessageHookFlagName, defaults.SkipMessageHook, skipMessageHookFlagUsageConstant)
	flagSet.String(EmailFlagName, emptyFlagValueConstant, emailFlagUsageConstant)
	flagSet.BoolP(QuietFlagName, QuietFlagShorthand, defaults.Quiet, quietFlagUsageConstant)
}

// ResolveProvisionFlags reads the provisioning flags from the command, reporting availability.
func ResolveProvisionFlags(command *cobra.Command) (ProvisionFlagValues, bool) {
	if command == nil {
		return ProvisionFlagValues{}, false
	}

	flagSet := command.Flags()
	values := ProvisionFlagValues{}

	boolBindings := []struct {
		flagName string
		value    *bool
		changed  *bool
	}{
		{flagName: ProtectMasterFlagName, value: &values.ProtectMaster, changed: &values.ProtectMasterSet},
		{flagName: RepairFlagName, value: &values.Repair, changed: &values.RepairSet},
		{flagName: SkipEmailFlagName, value: &values.SkipEmail, changed: &values.SkipEmailSet},
		{flagName: SkipGitConfigFlagName, value: &values.SkipGitConfig, changed: &values.SkipGitConfigSet},
		{flagName: SkipLintHookFlagName, value: &values.SkipLintHook, changed: &values.SkipLintHookSet},
		{flagName: SkipMessageHookFlagName, value: &values.SkipMessageHook, changed: &values.SkipMessageHookSet},
	}

	for _, binding := range boolBindings {
		boolValue, boolAvailable := resolveBoolFlag(flagSet, binding.flagName)
		if !boolAvailable {
			return ProvisionFlagValues{}, false
		}
		*binding.value = boolValue
		*binding.changed = flagSet.Changed(binding.flagName)
	}

	emailValue, emailAvailable := resolveStringFlag(flagSet, EmailFlagName)
	if !emailAvailable {
		return ProvisionFlagValues{}, false
	}
	values.Email = emailValue
	values.EmailSet = flagSet.Changed(EmailFlagName)

	quietValue, quietAvailable := resolveBoolFlag(flagSet, QuietFlagName)
	if !quietAvailable {
		return ProvisionFlagValues{}, false
	}
	values.Quiet = quietValue
	values.QuietSet = flagSet.Changed(QuietFlagName)

	return values, true
}

func resolveBoolFlag(flagSet *pflag.FlagSet, flagName string) (bool, bool) {
	if flagSet == nil {
		return false, false
	}
	if flagSet.Lookup(flagName) == nil {
		return false, false
	}

	flagValue, flagError := flagSet.GetBool(flagName)
	if flagError != nil {
		return false, false
	}
	return flagValue, true
}

func resolveStringFlag(flagSet *pflag.FlagSet, flagName string) (string, bool) {
	if flagSet == nil {
		return emptyFlagValueConstant, false
	}
	if flagSet.Lookup(flagName) == nil {
		return emptyFlagValueConstant, false
	}

	flagValue, flagError := flagSet.GetString(flagName)
	if flagError != nil {
		return emptyFlagValueConstant, false
	}
	return flagValue, true
}
