package provision

import (
	"context"
	"errors"
	"os"
	"strings"
)

const (
	storedEmailConfigurationKeyConstant   = "kaclone.email"
	accountEnvironmentVariableConstant    = "USER"
	defaultEmailDomainConstant            = "khanacademy.org"
	emailAddressSeparatorConstant         = "@"
	accountNameUnavailableMessageConstant = "no account name available to derive a default email"
)

// ErrAccountNameUnavailable indicates no account name could be determined for the default email.
var ErrAccountNameUnavailable = errors.New(accountNameUnavailableMessageConstant)

// AccountNameProvider yields the local account name used to derive a default email address.
type AccountNameProvider func() string

// ConfigurationReader reads repository-local configuration values.
type ConfigurationReader interface {
	GetLocalConfiguration(executionContext context.Context, repositoryPath string, configurationKey string) (string, bool, error)
}

// EmailResolver resolves the committer email through the preference chain:
// an explicit address, the stored repository preference, then the account
// name at the organizational domain. Resolution happens at provisioning time
// so the stored preference reflects the repository being provisioned.
type EmailResolver struct {
	configurationReader ConfigurationReader
	accountNameProvider AccountNameProvider
}

// NewEmailResolver constructs an EmailResolver over the provided configuration reader.
func NewEmailResolver(configurationReader ConfigurationReader, accountNameProvider AccountNameProvider) *EmailResolver {
	if accountNameProvider == nil {
		accountNameProvider = defaultAccountNameProvider
	}
	return &EmailResolver{configurationReader: configurationReader, accountNameProvider: accountNameProvider}
}

// Resolve returns the committer email for the repository at repositoryPath.
func (resolver *EmailResolver) Resolve(executionContext context.Context, repositoryPath string, explicitEmail string, emailDomain string) (string, error) {
	trimmedExplicitEmail := strings.TrimSpace(explicitEmail)
	if len(trimmedExplicitEmail) > 0 {
		return trimmedExplicitEmail, nil
	}

	storedEmail, storedEmailPresent, readError := resolver.configurationReader.GetLocalConfiguration(executionContext, repositoryPath, storedEmailConfigurationKeyConstant)
	if readError != nil {
		return "", readError
	}
	if storedEmailPresent && len(storedEmail) > 0 {
		return storedEmail, nil
	}

	accountName := strings.TrimSpace(resolver.accountNameProvider())
	if len(accountName) == 0 {
		return "", ErrAccountNameUnavailable
	}

	trimmedEmailDomain := strings.TrimSpace(emailDomain)
	if len(trimmedEmailDomain) == 0 {
		trimmedEmailDomain = defaultEmailDomainConstant
	}

	return accountName + emailAddressSeparatorConstant + trimmedEmailDomain, nil
}

func defaultAccountNameProvider() string {
	return os.Getenv(accountEnvironmentVariableConstant)
}
