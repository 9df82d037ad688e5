package lp

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/lpx/internal/execshell"
	"github.com/temirov/lpx/internal/printing"
	"github.com/temirov/lpx/internal/ui"
	"github.com/temirov/lpx/internal/utils"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current printing configuration.
type ConfigurationProvider func() printing.Configuration

// CommandDependencies holds the collaborators shared by the printing commands.
// Nil fields fall back to os/exec backed implementations.
type CommandDependencies struct {
	LoggerProvider               LoggerProvider
	ConsoleLoggerProvider        LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	Executor                     printing.CommandExecutor
	DefaultsStore                *printing.DefaultsStore
	ReadFile                     printing.ReadFileFunc
	// TerminalDetector reports whether a stream is an interactive terminal.
	TerminalDetector func(stream any) bool
}

func (dependencies CommandDependencies) resolveLogger() *zap.Logger {
	if dependencies.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := dependencies.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// resolveConsoleLogger returns the message-only logger for command events, or fallback.
func (dependencies CommandDependencies) resolveConsoleLogger(fallback *zap.Logger) *zap.Logger {
	if dependencies.ConsoleLoggerProvider == nil {
		return fallback
	}
	if consoleLogger := dependencies.ConsoleLoggerProvider(); consoleLogger != nil {
		return consoleLogger
	}
	return fallback
}

func (dependencies CommandDependencies) resolveConfiguration() printing.Configuration {
	if dependencies.ConfigurationProvider == nil {
		return printing.DefaultConfiguration()
	}
	return dependencies.ConfigurationProvider().Sanitize()
}

func (dependencies CommandDependencies) humanReadableLogging() bool {
	if dependencies.HumanReadableLoggingProvider == nil {
		return false
	}
	return dependencies.HumanReadableLoggingProvider()
}

func (dependencies CommandDependencies) resolveExecutor(logger *zap.Logger, configuration printing.Configuration) (printing.CommandExecutor, error) {
	var observer execshell.CommandEventObserver
	if dependencies.humanReadableLogging() {
		observer = ui.NewConsoleCommandEventLogger(dependencies.resolveConsoleLogger(logger))
	}
	return printing.ResolveCommandExecutor(dependencies.Executor, logger, observer, configuration.Executables)
}

func (dependencies CommandDependencies) resolveDefaultsStore(configuration printing.Configuration) (*printing.DefaultsStore, error) {
	if dependencies.DefaultsStore != nil {
		return dependencies.DefaultsStore, nil
	}
	initialArguments, argumentsError := configuration.InitialArguments()
	if argumentsError != nil {
		return nil, argumentsError
	}
	return printing.NewDefaultsStore(initialArguments), nil
}

// loadPresets reads the presets file. A relative presets_file is resolved
// against the directory of the configuration file it came from.
func (dependencies CommandDependencies) loadPresets(command *cobra.Command, configuration printing.Configuration) (printing.PresetCatalog, error) {
	presetsPath := configuration.PresetsFile
	if len(presetsPath) > 0 && !filepath.IsAbs(presetsPath) {
		configurationFilePath, available := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
		if available && len(configurationFilePath) > 0 {
			presetsPath = filepath.Join(filepath.Dir(configurationFilePath), presetsPath)
		}
	}
	return printing.LoadPresets(dependencies.ReadFile, presetsPath)
}

func (dependencies CommandDependencies) isTerminal(stream any) bool {
	if dependencies.TerminalDetector != nil {
		return dependencies.TerminalDetector(stream)
	}
	return isCharacterDevice(stream)
}

// statusReporter draws the transient status line on the error stream when
// logs are human readable and routes it through the logger otherwise.
func (dependencies CommandDependencies) statusReporter(command *cobra.Command, logger *zap.Logger) ui.StatusReporter {
	if !dependencies.humanReadableLogging() {
		return ui.NewLoggerStatusReporter(logger)
	}
	errorStream := command.ErrOrStderr()
	return ui.NewWriterStatusReporter(errorStream, dependencies.isTerminal(errorStream))
}

func isCharacterDevice(stream any) bool {
	file, isFile := stream.(*os.File)
	if !isFile || file == nil {
		return false
	}
	fileInfo, statError := file.Stat()
	if statError != nil {
		return false
	}
	return fileInfo.Mode()&os.ModeCharDevice != 0
}

func displayCommandHelp(command *cobra.Command) error {
	if command == nil {
		return nil
	}
	return command.Help()
}
