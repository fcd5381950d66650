package provision

import "strings"

// Step identifiers accepted by the skip list.
const (
	skipStepEmailConstant       = "email"
	skipStepGitConfigConstant   = "gitconfig"
	skipStepLintHookConstant    = "lint"
	skipStepMessageHookConstant = "msg"
)

const (
	configurationKeySeparatorConstant   = "."
	configurationEmailDomainKeyConstant = "email_domain"
	configurationProtectKeyConstant     = "protect_master"
	configurationQuietKeyConstant       = "quiet"
	configurationSkipKeyConstant        = "skip"
)

// CommandConfiguration captures configuration values for the provisioning command.
type CommandConfiguration struct {
	EmailDomain   string   `mapstructure:"email_domain"`
	ProtectMaster bool     `mapstructure:"protect_master"`
	Quiet         bool     `mapstructure:"quiet"`
	Skip          []string `mapstructure:"skip"`
}

// DefaultCommandConfiguration provides baseline configuration values for provisioning.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		EmailDomain:   defaultEmailDomainConstant,
		ProtectMaster: false,
		Quiet:         false,
		Skip:          nil,
	}
}

// DefaultConfigurationValues produces Viper defaults for the provisioning command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationEmailDomainKeyConstant: defaults.EmailDomain,
		rootKey + configurationKeySeparatorConstant + configurationProtectKeyConstant:     defaults.ProtectMaster,
		rootKey + configurationKeySeparatorConstant + configurationQuietKeyConstant:       defaults.Quiet,
		rootKey + configurationKeySeparatorConstant + configurationSkipKeyConstant:        defaults.Skip,
	}
}

// Sanitize normalizes configuration values, restoring the default email domain when blank.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.EmailDomain = strings.TrimSpace(configuration.EmailDomain)
	if len(sanitized.EmailDomain) == 0 {
		sanitized.EmailDomain = defaultEmailDomainConstant
	}
	sanitized.Skip = sanitizeSkipList(configuration.Skip)

	return sanitized
}

// SkipsStep reports whether the named provisioning step appears in the skip list.
func (configuration CommandConfiguration) SkipsStep(stepName string) bool {
	for _, skippedStep := range configuration.Skip {
		if strings.EqualFold(strings.TrimSpace(skippedStep), stepName) {
			return true
		}
	}
	return false
}

func sanitizeSkipList(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.ToLower(strings.TrimSpace(candidate))
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
