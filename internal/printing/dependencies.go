package printing

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/lpx/internal/execshell"
)

// OptionsExecutor runs lpoptions.
type OptionsExecutor interface {
	ExecutePrinterOptions(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// StatusExecutor runs lpstat.
type StatusExecutor interface {
	ExecutePrinterStatus(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// PrintExecutor runs lp and reports which binary it would start.
type PrintExecutor interface {
	ExecutePrint(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ResolveExecutable(commandName execshell.CommandName) string
}

// CommandExecutor is the subset of execshell.ShellExecutor used by this package.
type CommandExecutor interface {
	OptionsExecutor
	StatusExecutor
	PrintExecutor
}

// ResolveCommandExecutor returns existing or builds an os/exec backed executor
// honoring the configured executable paths.
func ResolveCommandExecutor(existing CommandExecutor, logger *zap.Logger, observer execshell.CommandEventObserver, executables ExecutablesConfiguration) (CommandExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	options := []execshell.ShellExecutorOption{
		execshell.WithExecutablePath(execshell.CommandPrint, executables.Print),
		execshell.WithExecutablePath(execshell.CommandPrinterStatus, executables.List),
		execshell.WithExecutablePath(execshell.CommandPrinterOptions, executables.Options),
	}
	if observer != nil {
		options = append(options, execshell.WithCommandEventObserver(observer))
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), options...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}
