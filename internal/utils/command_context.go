package utils

import "context"

// commandContextKey scopes context values stored by the CLI so they cannot
// collide with keys installed by other packages.
type commandContextKey string

const configurationFilePathContextKeyConstant commandContextKey = "configuration_file_path"

// CommandContextAccessor reads and writes CLI values carried on command contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath returns a context carrying the loaded configuration file path.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file path carried on the context, when present.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	storedPath, pathPresent := executionContext.Value(configurationFilePathContextKeyConstant).(string)
	return storedPath, pathPresent
}
