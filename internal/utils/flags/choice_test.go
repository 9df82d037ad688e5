package flags

import (
	"testing"

	"github.com/spf13/cobra"
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
			name:           "DefaultHighlighted",
			defaultChoice:  "portrait",
			choices:        []string{"portrait", "landscape"},
			description:    "Page orientation.",
			expectedOutput: "`<PORTRAIT|landscape>` Page orientation.",
		},
		{
			name:           "NoDefault",
			defaultChoice:  "",
			choices:        []string{"draft", "normal", "high"},
			description:    "Print quality.",
			expectedOutput: "`<draft|normal|high>` Print quality.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "a4",
			choices:        []string{"a4", "letter"},
			description:    "",
			expectedOutput: "`<A4|letter>`",
		},
		{
			name:           "DuplicatesAndBlanksDropped",
			defaultChoice:  "one-sided",
			choices:        []string{" one-sided ", "ONE-SIDED", "", "two-sided-long-edge"},
			description:    "Duplex mode.",
			expectedOutput: "`<ONE-SIDED|two-sided-long-edge>` Duplex mode.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}

func TestAddChoiceFlagResolvesValues(t *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectedValue string
		expectError   bool
	}{
		{name: "NotProvided", arguments: []string{}, expectedValue: ""},
		{name: "ExactMatch", arguments: []string{"--sides", "one-sided"}, expectedValue: "one-sided"},
		{name: "CaseInsensitive", arguments: []string{"--sides=ONE-SIDED"}, expectedValue: "one-sided"},
		{name: "UniquePrefix", arguments: []string{"--sides", "one"}, expectedValue: "one-sided"},
		{name: "AmbiguousPrefix", arguments: []string{"--sides", "two"}, expectError: true},
		{name: "Unknown", arguments: []string{"--sides", "three-sided"}, expectError: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command := &cobra.Command{}
			var sides string
			AddChoiceFlag(command.Flags(), &sides, "sides", "", []string{"one-sided", "two-sided-long-edge", "two-sided-short-edge"}, "Duplex mode.")

			parseError := command.ParseFlags(testCase.arguments)
			if testCase.expectError {
				require.Error(t, parseError)
				return
			}
			require.NoError(t, parseError)
			require.Equal(t, testCase.expectedValue, sides)
		})
	}
}
