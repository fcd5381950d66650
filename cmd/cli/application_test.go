package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/Khan/kaclone/cmd/cli"
)

func writeEmptyConfiguration(t *testing.T) string {
	t.Helper()
	configurationPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configurationPath, []byte{}, 0o644))
	return configurationPath
}

func setProcessArguments(t *testing.T, arguments []string) {
	t.Helper()
	originalArguments := os.Args
	os.Args = arguments
	t.Cleanup(func() {
		os.Args = originalArguments
	})
}

func TestExecuteShowsHelpWithoutArguments(t *testing.T) {
	setProcessArguments(t, []string{"kaclone", "--config", writeEmptyConfiguration(t)})
	require.NoError(t, cli.NewApplication().Execute())
}

func TestExecuteRejectsRepairWithArguments(t *testing.T) {
	setProcessArguments(t, []string{"kaclone", "--config", writeEmptyConfiguration(t), "--repair", "https://example.com/org/project.git"})
	executionError := cli.NewApplication().Execute()
	require.ErrorContains(t, executionError, "--repair")
}

func TestExecuteRejectsUnknownLogLevel(t *testing.T) {
	setProcessArguments(t, []string{"kaclone", "--config", writeEmptyConfiguration(t), "--log-level", "loud"})
	executionError := cli.NewApplication().Execute()
	require.ErrorContains(t, executionError, "unable to create logger")
}

func TestEmbeddedDefaultConfigurationProvidesBaseline(t *testing.T) {
	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()

	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)
	require.NoError(t, viperInstance.ReadConfig(bytes.NewReader(configurationData)))

	require.Equal(t, "info", viperInstance.GetString("common.log_level"))
	require.Equal(t, "auto", viperInstance.GetString("common.log_format"))
	require.Equal(t, "khanacademy.org", viperInstance.GetString("provision.email_domain"))
	require.False(t, viperInstance.GetBool("provision.protect_master"))
	require.False(t, viperInstance.GetBool("provision.quiet"))
	require.Empty(t, viperInstance.GetStringSlice("provision.skip"))
}
