package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultLogLevelHighlighted",
			defaultChoice:  "info",
			choices:        []string{"debug", "info", "warn", "error"},
			description:    "Diagnostic log level.",
			expectedOutput: "`<debug|INFO|warn|error>` Diagnostic log level.",
		},
		{
			name:           "DefaultLogFormatHighlighted",
			defaultChoice:  "auto",
			choices:        []string{"structured", "console", "auto"},
			description:    "Log output format.",
			expectedOutput: "`<structured|console|AUTO>` Log output format.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "console",
			choices:        []string{"structured", "console"},
			description:    "",
			expectedOutput: "`<structured|CONSOLE>`",
		},
		{
			name:           "DuplicateChoicesCollapsed",
			defaultChoice:  "debug",
			choices:        []string{"debug", "debug", "info", "info"},
			description:    "Choose verbosity.",
			expectedOutput: "`<DEBUG|info>` Choose verbosity.",
		},
		{
			name:           "WhitespaceTrimmed",
			defaultChoice:  "warn",
			choices:        []string{" warn ", " error "},
			description:    "Report problems only.",
			expectedOutput: "`<WARN|error>` Report problems only.",
		},
		{
			name:           "UnknownDefaultLeftLowercase",
			defaultChoice:  "verbose",
			choices:        []string{"debug", "info"},
			description:    "Diagnostic log level.",
			expectedOutput: "`<debug|info>` Diagnostic log level.",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expectedOutput, FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description))
		})
	}
}
