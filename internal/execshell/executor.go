package execshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant        = "shell executor logger not configured"
	commandRunnerNotConfiguredMessageConstant = "shell executor command runner not configured"
	commandFailedTemplateConstant             = "%s exited with code %d"
	commandFailedWithOutputTemplateConstant   = "%s exited with code %d: %s"
	commandExecutionFailedTemplateConstant    = "%s could not be started: %v"
	logFieldCommandNameConstant               = "command_name"
	logFieldExecutableConstant                = "executable"
	logFieldArgumentsConstant                 = "arguments"
	logFieldExitCodeConstant                  = "exit_code"
	logFieldStandardInputConstant             = "standard_input"
	commandLineSeparatorConstant              = " "
)

// CommandName identifies a supported printing-system executable.
type CommandName string

// Supported executables.
const (
	CommandPrint          CommandName = "lp"
	CommandPrinterStatus  CommandName = "lpstat"
	CommandPrinterOptions CommandName = "lpoptions"
)

// ErrLoggerNotConfigured indicates NewShellExecutor received a nil logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates NewShellExecutor received a nil runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// CommandDetails describes a single invocation of an executable.
type CommandDetails struct {
	Arguments []string
	// StandardInput is streamed to the process when non-nil.
	StandardInput io.Reader
}

// ShellCommand pairs a command name with its invocation details.
type ShellCommand struct {
	Name CommandName
	// Executable overrides the binary path; Name is used when empty.
	Executable string
	Details    CommandDetails
}

// ExecutablePath returns the binary the runner should start.
func (command ShellCommand) ExecutablePath() string {
	trimmedExecutable := strings.TrimSpace(command.Executable)
	if len(trimmedExecutable) > 0 {
		return trimmedExecutable
	}
	return string(command.Name)
}

// CommandLine renders the executable and arguments as a single space separated string.
func (command ShellCommand) CommandLine() string {
	parts := append([]string{command.ExecutablePath()}, command.Details.Arguments...)
	return strings.Join(parts, commandLineSeparatorConstant)
}

// ExecutionResult captures the observable outcome of a finished process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner starts processes.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a process that ran but exited with a non-zero code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error implements error.
func (failure CommandFailedError) Error() string {
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) == 0 {
		return fmt.Sprintf(commandFailedTemplateConstant, failure.Command.Name, failure.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedWithOutputTemplateConstant, failure.Command.Name, failure.Result.ExitCode, trimmedStandardError)
}

// CommandExecutionError reports a process that could not be started or was interrupted.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error implements error.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionFailedTemplateConstant, failure.Command.Name, failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutorOption customizes a ShellExecutor.
type ShellExecutorOption func(*ShellExecutor)

// WithCommandEventObserver routes lifecycle events to the provided observer.
func WithCommandEventObserver(observer CommandEventObserver) ShellExecutorOption {
	return func(executor *ShellExecutor) {
		if observer != nil {
			executor.observer = observer
		}
	}
}

// WithExecutablePath points a command name at a specific binary.
func WithExecutablePath(commandName CommandName, executablePath string) ShellExecutorOption {
	return func(executor *ShellExecutor) {
		trimmedPath := strings.TrimSpace(executablePath)
		if len(trimmedPath) == 0 {
			return
		}
		executor.executablePaths[commandName] = trimmedPath
	}
}

// ShellExecutor runs printing-system commands with structured logging.
type ShellExecutor struct {
	logger          *zap.Logger
	runner          CommandRunner
	observer        CommandEventObserver
	formatter       CommandMessageFormatter
	executablePaths map[CommandName]string
}

// NewShellExecutor constructs a ShellExecutor.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, options ...ShellExecutorOption) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	executor := &ShellExecutor{
		logger:          logger,
		runner:          runner,
		observer:        noopCommandEventObserver{},
		formatter:       CommandMessageFormatter{},
		executablePaths: map[CommandName]string{},
	}
	for _, option := range options {
		if option != nil {
			option(executor)
		}
	}
	return executor, nil
}

// Execute runs the command and converts non-zero exits into CommandFailedError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if len(strings.TrimSpace(command.Executable)) == 0 {
		command.Executable = executor.executablePaths[command.Name]
	}

	executor.logger.Info(
		executor.formatter.BuildStartedMessage(command),
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.String(logFieldExecutableConstant, command.ExecutablePath()),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.Bool(logFieldStandardInputConstant, command.Details.StandardInput != nil),
	)
	executor.observer.CommandStarted(command)

	result, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Error(executor.formatter.BuildExecutionFailureMessage(command, runError), zap.Error(runError))
		executor.observer.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, result)
	if result.ExitCode != 0 {
		executor.logger.Warn(executor.formatter.BuildFailureMessage(command, result), zap.Int(logFieldExitCodeConstant, result.ExitCode))
		return ExecutionResult{}, CommandFailedError{Command: command, Result: result}
	}

	executor.logger.Info(executor.formatter.BuildSuccessMessage(command, result), zap.Int(logFieldExitCodeConstant, result.ExitCode))
	return result, nil
}

// ExecutePrint runs lp.
func (executor *ShellExecutor) ExecutePrint(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandPrint, Details: details})
}

// ExecutePrinterStatus runs lpstat.
func (executor *ShellExecutor) ExecutePrinterStatus(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandPrinterStatus, Details: details})
}

// ExecutePrinterOptions runs lpoptions.
func (executor *ShellExecutor) ExecutePrinterOptions(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandPrinterOptions, Details: details})
}

// ResolveExecutable reports the binary configured for the command name.
func (executor *ShellExecutor) ResolveExecutable(commandName CommandName) string {
	return ShellCommand{Name: commandName, Executable: executor.executablePaths[commandName]}.ExecutablePath()
}
