package menu_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/lpx/internal/menu"
)

func TestLinePrompterAsk(testInstance *testing.T) {
	output := &bytes.Buffer{}
	prompter := menu.NewLinePrompter(strings.NewReader(" first \nlast"), output)

	answer, askError := prompter.Ask("One: ")
	require.NoError(testInstance, askError)
	require.Equal(testInstance, "first", answer)

	answer, askError = prompter.Ask("Two: ")
	require.NoError(testInstance, askError)
	require.Equal(testInstance, "last", answer)

	_, askError = prompter.Ask("Three: ")
	require.ErrorIs(testInstance, askError, io.EOF)
	require.Equal(testInstance, "One: Two: Three: ", output.String())
}

func TestLinePrompterConfirm(testInstance *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "yes", input: "yes\n", expected: true},
		{name: "short_yes_uppercase", input: "Y\n", expected: true},
		{name: "no", input: "n\n", expected: false},
		{name: "empty", input: "\n", expected: false},
		{name: "end_of_input", input: "", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			prompter := menu.NewLinePrompter(strings.NewReader(testCase.input), nil)
			confirmed, confirmError := prompter.Confirm("Print another? ")
			require.NoError(testInstance, confirmError)
			require.Equal(testInstance, testCase.expected, confirmed)
		})
	}
}

func TestLinePrompterWithoutInput(testInstance *testing.T) {
	prompter := menu.NewLinePrompter(nil, nil)
	_, askError := prompter.Ask("Select: ")
	require.ErrorIs(testInstance, askError, io.EOF)
}
