package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Khan/kaclone/cmd/cli"
	"github.com/Khan/kaclone/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	readmeSnippetTemporaryPattern    = "readme-config-*.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
	unknownSkipStepMessageTemplate   = "unknown skip step %s"
	defaultTempDirectoryRootConstant = ""
)

var validSkipSteps = map[string]struct{}{
	"email":     {},
	"gitconfig": {},
	"lint":      {},
	"msg":       {},
}

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

type readmeApplicationConfiguration struct {
	Common    readmeCommonConfiguration    `yaml:"common"`
	Provision readmeProvisionConfiguration `yaml:"provision"`
}

type readmeCommonConfiguration struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogFile   string `yaml:"log_file"`
}

type readmeProvisionConfiguration struct {
	EmailDomain   string   `yaml:"email_domain"`
	ProtectMaster bool     `yaml:"protect_master"`
	Quiet         bool     `yaml:"quiet"`
	Skip          []string `yaml:"skip"`
}

func TestReadmeConfigurationParses(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	snippetContent := strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])

	var snippetConfiguration readmeApplicationConfiguration
	require.NoError(testInstance, yaml.Unmarshal([]byte(snippetContent), &snippetConfiguration))

	_, logLevelKnown := validLogLevels[snippetConfiguration.Common.LogLevel]
	require.True(testInstance, logLevelKnown)
	require.NotEmpty(testInstance, snippetConfiguration.Provision.EmailDomain)
	for _, skipStep := range snippetConfiguration.Provision.Skip {
		_, skipStepKnown := validSkipSteps[strings.ToLower(strings.TrimSpace(skipStep))]
		require.Truef(testInstance, skipStepKnown, unknownSkipStepMessageTemplate, skipStep)
	}

	tempFile, tempFileError := os.CreateTemp(defaultTempDirectoryRootConstant, readmeSnippetTemporaryPattern)
	require.NoError(testInstance, tempFileError)
	testInstance.Cleanup(func() {
		require.NoError(testInstance, os.Remove(tempFile.Name()))
	})

	_, writeError := tempFile.WriteString(snippetContent)
	require.NoError(testInstance, writeError)
	require.NoError(testInstance, tempFile.Close())

	configurationLoader := utils.NewConfigurationLoader("config", "yaml", "KACLONE", nil)
	var loadedConfiguration cli.ApplicationConfiguration
	_, loadError := configurationLoader.LoadConfiguration(tempFile.Name(), map[string]any{}, &loadedConfiguration)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, snippetConfiguration.Provision.EmailDomain, loadedConfiguration.Provision.EmailDomain)
	require.Equal(testInstance, snippetConfiguration.Provision.Skip, loadedConfiguration.Provision.Skip)
	require.Equal(testInstance, snippetConfiguration.Common.LogLevel, loadedConfiguration.Common.LogLevel)
}
