package menu_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/lpx/internal/menu"
)

func TestComplete(testInstance *testing.T) {
	candidates := []string{"office", "Office-Color", "lab"}
	testCases := []struct {
		name     string
		answer   string
		expected string
	}{
		{name: "empty", answer: "  ", expected: ""},
		{name: "index", answer: "3", expected: "lab"},
		{name: "index_out_of_range", answer: "7", expected: "7"},
		{name: "exact_case_insensitive", answer: "OFFICE", expected: "office"},
		{name: "unique_prefix", answer: "la", expected: "lab"},
		{name: "ambiguous_prefix_kept", answer: "off", expected: "off"},
		{name: "free_text", answer: "kitchen", expected: "kitchen"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, menu.Complete(testCase.answer, candidates))
		})
	}

	require.Equal(testInstance, "kitchen", menu.Complete(" kitchen ", nil))
}
