package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/lpx/internal/utils"
)

const (
	testEnvironmentPrefixConstant                  = "TESTLPX"
	testPrinterKeyConstant                         = "printing.default_printer"
	testPrinterEnvironmentVariableConstant         = "TESTLPX_PRINTING_DEFAULT_PRINTER"
	testDefaultPrinterConstant                     = "office"
	testEmbeddedPrinterConstant                    = "lobby"
	testFilePrinterConstant                        = "library"
	testEnvironmentPrinterConstant                 = "basement"
	testConfigFileNameConstant                     = "config.yaml"
	testPrinterContentTemplateConstant             = "printing:\n  default_printer: %s\n"
	testTimeoutContentConstant                     = "printing:\n  query_timeout: 750ms\n  servers: alpha:631,beta:631\n"
	testConfigurationNameConstant                  = "config"
	testConfigurationTypeConstant                  = "yaml"
	configurationLoaderSubtestNameTemplateConstant = "%d_%s"
)

type configurationFixture struct {
	Printing printingFixture `mapstructure:"printing"`
}

type printingFixture struct {
	DefaultPrinter string        `mapstructure:"default_printer"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
	Servers        []string      `mapstructure:"servers"`
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name               string
		embeddedPrinter    string
		filePrinter        string
		environmentPrinter string
		expectedPrinter    string
	}{
		{
			name:            "embedded configuration merges",
			embeddedPrinter: testEmbeddedPrinterConstant,
			expectedPrinter: testEmbeddedPrinterConstant,
		},
		{
			name:            "defaults are applied",
			expectedPrinter: testDefaultPrinterConstant,
		},
		{
			name:            "config file overrides embedded",
			embeddedPrinter: testEmbeddedPrinterConstant,
			filePrinter:     testFilePrinterConstant,
			expectedPrinter: testFilePrinterConstant,
		},
		{
			name:               "environment overrides file",
			embeddedPrinter:    testEmbeddedPrinterConstant,
			filePrinter:        testFilePrinterConstant,
			environmentPrinter: testEnvironmentPrinterConstant,
			expectedPrinter:    testEnvironmentPrinterConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			temporaryDirectory := testInstance.TempDir()
			configurationFilePath := ""
			if len(testCase.filePrinter) > 0 {
				configurationFilePath = filepath.Join(temporaryDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testPrinterContentTemplateConstant, testCase.filePrinter)
				require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
			}

			if len(testCase.environmentPrinter) > 0 {
				testInstance.Setenv(testPrinterEnvironmentVariableConstant, testCase.environmentPrinter)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{temporaryDirectory})
			if len(testCase.embeddedPrinter) > 0 {
				configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testPrinterContentTemplateConstant, testCase.embeddedPrinter)), testConfigurationTypeConstant)
			}

			defaultValues := map[string]any{
				testPrinterKeyConstant: testDefaultPrinterConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedPrinter, loadedConfiguration.Printing.DefaultPrinter)

			if len(configurationFilePath) > 0 {
				require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
			} else {
				require.Empty(testInstance, metadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderDecodesDurationsAndLists(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(temporaryDirectory, testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(testTimeoutContentConstant), 0o600))

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{temporaryDirectory})

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration("", nil, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, 750*time.Millisecond, loadedConfiguration.Printing.QueryTimeout)
	require.Equal(testInstance, []string{"alpha:631", "beta:631"}, loadedConfiguration.Printing.Servers)
}

func TestConfigurationLoaderRejectsMissingTarget(testInstance *testing.T) {
	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{testInstance.TempDir()})

	_, loadError := configurationLoader.LoadConfiguration("", nil, nil)
	require.ErrorIs(testInstance, loadError, utils.ErrConfigurationTargetMissing)
}

func TestConfigurationLoaderReportsMalformedFile(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(temporaryDirectory, testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte("printing: [unterminated"), 0o600))

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration(configurationFilePath, nil, &loadedConfiguration)
	require.Error(testInstance, loadError)
	require.ErrorContains(testInstance, loadError, "failed to read configuration")
}
