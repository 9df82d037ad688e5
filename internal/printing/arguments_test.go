package printing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/lpx/internal/printing"
)

func TestParseArguments(testInstance *testing.T) {
	testCases := []struct {
		name           string
		tokens         []string
		expectedTokens []string
		expectedError  error
	}{
		{
			name:           "separate_values",
			tokens:         []string{"-d", "office", "-o", "sides=one-sided", "-n", "2"},
			expectedTokens: []string{"-d", "office", "-o", "sides=one-sided", "-n", "2"},
		},
		{
			name:           "fused_values",
			tokens:         []string{"-doffice", "-omedia=a4", "-P1-3"},
			expectedTokens: []string{"-d", "office", "-o", "media=a4", "-P", "1-3"},
		},
		{
			name:           "repeated_flag_keeps_last_value_at_first_position",
			tokens:         []string{"-d", "office", "-o", "media=a4", "-d", "lab"},
			expectedTokens: []string{"-d", "lab", "-o", "media=a4"},
		},
		{
			name:           "repeated_option_key_replaced_in_place",
			tokens:         []string{"-o", "media=a4", "-n", "1", "-o", "media=letter"},
			expectedTokens: []string{"-o", "media=letter", "-n", "1"},
		},
		{
			name:           "blank_tokens_ignored",
			tokens:         []string{" ", "-t", "report"},
			expectedTokens: []string{"-t", "report"},
		},
		{
			name:          "positional_operand",
			tokens:        []string{"report.pdf"},
			expectedError: printing.ErrUnsupportedFlag,
		},
		{
			name:          "unknown_flag",
			tokens:        []string{"-x", "value"},
			expectedError: printing.ErrUnsupportedFlag,
		},
		{
			name:          "dangling_flag_at_end",
			tokens:        []string{"-d"},
			expectedError: printing.ErrDanglingFlag,
		},
		{
			name:          "dangling_flag_before_flag",
			tokens:        []string{"-d", "-n", "2"},
			expectedError: printing.ErrDanglingFlag,
		},
		{
			name:          "option_without_value",
			tokens:        []string{"-o", "media="},
			expectedError: printing.ErrMalformedOption,
		},
		{
			name:          "option_without_key",
			tokens:        []string{"-o", "=a4"},
			expectedError: printing.ErrMalformedOption,
		},
		{
			name:           "bare_boolean_option",
			tokens:         []string{"-o", "fit-to-page", "-o", "media=a4", "-ofit-to-page"},
			expectedTokens: []string{"-o", "fit-to-page", "-o", "media=a4"},
		},
		{
			name:           "value_starting_with_dash",
			tokens:         []string{"-t", "-draft-", "-n", "2"},
			expectedTokens: []string{"-t", "-draft-", "-n", "2"},
		},
		{
			name:           "server_moves_before_printer",
			tokens:         []string{"-d", "office", "-o", "media=a4", "-h", "remote:631"},
			expectedTokens: []string{"-h", "remote:631", "-d", "office", "-o", "media=a4"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			arguments, parseError := printing.ParseArguments(testCase.tokens)
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, parseError, testCase.expectedError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedTokens, arguments.Tokens())
		})
	}
}

func TestArgumentsSetAndRemove(testInstance *testing.T) {
	arguments := printing.NewArguments()
	require.True(testInstance, arguments.IsEmpty())

	require.NoError(testInstance, arguments.SetOption(printing.OptionKeyMedia, "a4"))
	require.NoError(testInstance, arguments.SetFlag(printing.FlagPrinter, "office"))
	require.NoError(testInstance, arguments.SetOption(printing.OptionKeySides, "two-sided-long-edge"))
	require.NoError(testInstance, arguments.SetOption(printing.OptionKeyMedia, "letter"))
	require.Equal(testInstance, "-o media=letter -d office -o sides=two-sided-long-edge", arguments.String())

	value, present := arguments.OptionValue(printing.OptionKeySides)
	require.True(testInstance, present)
	require.Equal(testInstance, "two-sided-long-edge", value)

	require.NoError(testInstance, arguments.SetOption(printing.OptionKeySides, " "))
	_, present = arguments.OptionValue(printing.OptionKeySides)
	require.False(testInstance, present)

	require.True(testInstance, arguments.RemoveFlag(printing.FlagPrinter))
	require.False(testInstance, arguments.RemoveFlag(printing.FlagPrinter))
	require.Equal(testInstance, []printing.Option{{Key: printing.OptionKeyMedia, Value: "letter"}}, arguments.Options())

	require.ErrorIs(testInstance, arguments.SetFlag("-x", "1"), printing.ErrUnsupportedFlag)
	require.ErrorIs(testInstance, arguments.SetOption("bad key", "1"), printing.ErrMalformedOption)
}

func TestArgumentsRoundTripThroughTokens(testInstance *testing.T) {
	arguments := printing.NewArguments()
	require.NoError(testInstance, arguments.SetFlag(printing.FlagTitle, "-draft-"))
	require.NoError(testInstance, arguments.SetOptionAssignment("fit-to-page"))
	require.NoError(testInstance, arguments.SetFlag(printing.FlagPrinter, "office"))
	require.NoError(testInstance, arguments.SetFlag(printing.FlagServer, "remote:631"))

	reparsed, parseError := printing.ParseArguments(arguments.Tokens())
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, arguments.Tokens(), reparsed.Tokens())
	require.Equal(testInstance, []string{"-h", "remote:631", "-t", "-draft-", "-o", "fit-to-page", "-d", "office"}, reparsed.Tokens())

	value, present := reparsed.OptionValue("fit-to-page")
	require.True(testInstance, present)
	require.Empty(testInstance, value)
}

func TestArgumentsServerReplacementStaysFirst(testInstance *testing.T) {
	arguments, parseError := printing.ParseArguments([]string{"-h", "first:631", "-d", "office"})
	require.NoError(testInstance, parseError)

	require.NoError(testInstance, arguments.SetFlag(printing.FlagServer, "second:631"))
	require.Equal(testInstance, []string{"-h", "second:631", "-d", "office"}, arguments.Tokens())

	require.NoError(testInstance, arguments.SetFlag(printing.FlagServer, ""))
	require.Equal(testInstance, []string{"-d", "office"}, arguments.Tokens())
}

func TestArgumentsCloneIsIndependent(testInstance *testing.T) {
	original, parseError := printing.ParseArguments([]string{"-d", "office"})
	require.NoError(testInstance, parseError)

	clone := original.Clone()
	require.NoError(testInstance, clone.SetFlag(printing.FlagPrinter, "lab"))

	printer, _ := original.FlagValue(printing.FlagPrinter)
	require.Equal(testInstance, "office", printer)
}

func TestArgumentsMerge(testInstance *testing.T) {
	base, baseError := printing.ParseArguments([]string{"-d", "office", "-o", "media=a4"})
	require.NoError(testInstance, baseError)
	overrides, overridesError := printing.ParseArguments([]string{"-o", "media=letter", "-n", "3"})
	require.NoError(testInstance, overridesError)

	base.Merge(overrides)
	require.Equal(testInstance, []string{"-d", "office", "-o", "media=letter", "-n", "3"}, base.Tokens())
}

func TestArgumentsValidate(testInstance *testing.T) {
	testCases := []struct {
		name          string
		tokens        []string
		expectedError error
	}{
		{name: "empty", tokens: nil},
		{name: "valid_copies", tokens: []string{"-n", "3"}},
		{name: "zero_copies", tokens: []string{"-n", "0"}, expectedError: printing.ErrInvalidCopies},
		{name: "text_copies", tokens: []string{"-n", "two"}, expectedError: printing.ErrInvalidCopies},
		{name: "single_page", tokens: []string{"-P", "4"}},
		{name: "mixed_ranges", tokens: []string{"-P", "1,3-5,8-"}},
		{name: "page_zero", tokens: []string{"-P", "0-2"}, expectedError: printing.ErrInvalidPageRanges},
		{name: "descending_range", tokens: []string{"-P", "5-3"}, expectedError: printing.ErrInvalidPageRanges},
		{name: "garbage_range", tokens: []string{"-P", "1,,2"}, expectedError: printing.ErrInvalidPageRanges},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			arguments, parseError := printing.ParseArguments(testCase.tokens)
			require.NoError(testInstance, parseError)

			validationError := arguments.Validate()
			if testCase.expectedError == nil {
				require.NoError(testInstance, validationError)
				return
			}
			require.ErrorIs(testInstance, validationError, testCase.expectedError)
		})
	}
}
