package lp_test

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/lpx/cmd/cli/lp"
	"github.com/temirov/lpx/internal/printing"
	"github.com/temirov/lpx/internal/utils"
)

func TestPresetsCommandListsPresets(testInstance *testing.T) {
	testCases := []struct {
		name           string
		presetsFile    string
		content        string
		readError      error
		expectedOutput string
		expectedError  error
	}{
		{
			name:           "no_presets_file",
			expectedOutput: "No presets configured.\n",
		},
		{
			name:           "missing_presets_file",
			presetsFile:    "presets.yaml",
			readError:      fs.ErrNotExist,
			expectedOutput: "No presets configured.\n",
		},
		{
			name:           "presets_in_file_order",
			presetsFile:    "presets.yaml",
			content:        "presets:\n  - name: draft\n    description: Cheap proof\n    arguments: [\"-o\", \"print-quality=3\"]\n  - name: booklet\n    arguments: [\"-o\", \"number-up=2\", \"-o\", \"sides=two-sided-short-edge\"]\n",
			expectedOutput: "draft: -o print-quality=3\n  Cheap proof\nbooklet: -o number-up=2 -o sides=two-sided-short-edge\n",
		},
		{
			name:          "invalid_presets_file",
			presetsFile:   "presets.yaml",
			content:       "presets:\n  - description: nameless\n",
			expectedError: printing.ErrInvalidPreset,
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			dependencies := newTestDependencies(newStubCommandExecutor(), printing.Configuration{PresetsFile: testCase.presetsFile})
			dependencies.ReadFile = func(string) ([]byte, error) {
				if testCase.readError != nil {
					return nil, testCase.readError
				}
				return []byte(testCase.content), nil
			}
			builder := &lp.PresetsCommandBuilder{CommandDependencies: dependencies}

			outcome := executeCommand(subtest, builder, "")
			if testCase.expectedError != nil {
				require.True(subtest, errors.Is(outcome.err, testCase.expectedError))
				return
			}
			require.NoError(subtest, outcome.err)
			require.Equal(subtest, testCase.expectedOutput, outcome.standardOutput)
		})
	}
}

func TestPresetsCommandResolvesRelativeFileAgainstConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		presetsFile           string
		configurationFilePath string
		expectedPath          string
	}{
		{
			name:                  "relative_to_configuration_directory",
			presetsFile:           "presets.yaml",
			configurationFilePath: filepath.Join("/etc", "lpx", "config.yaml"),
			expectedPath:          filepath.Join("/etc", "lpx", "presets.yaml"),
		},
		{
			name:                  "absolute_path_kept",
			presetsFile:           filepath.Join("/srv", "presets.yaml"),
			configurationFilePath: filepath.Join("/etc", "lpx", "config.yaml"),
			expectedPath:          filepath.Join("/srv", "presets.yaml"),
		},
		{
			name:         "no_configuration_file",
			presetsFile:  "presets.yaml",
			expectedPath: "presets.yaml",
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			requestedPaths := []string{}
			dependencies := newTestDependencies(newStubCommandExecutor(), printing.Configuration{PresetsFile: testCase.presetsFile})
			dependencies.ReadFile = func(path string) ([]byte, error) {
				requestedPaths = append(requestedPaths, path)
				return nil, fs.ErrNotExist
			}
			builder := &lp.PresetsCommandBuilder{CommandDependencies: dependencies}

			executionContext := context.Background()
			if len(testCase.configurationFilePath) > 0 {
				executionContext = utils.NewCommandContextAccessor().WithConfigurationFilePath(executionContext, testCase.configurationFilePath)
			}
			outcome := executeCommandInContext(subtest, executionContext, builder, "")
			require.NoError(subtest, outcome.err)
			require.Equal(subtest, []string{testCase.expectedPath}, requestedPaths)
		})
	}
}
