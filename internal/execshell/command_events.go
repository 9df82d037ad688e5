package execshell

// CommandEventObserver receives lifecycle notifications for lp, lpstat, and lpoptions invocations.
type CommandEventObserver interface {
	// CommandStarted fires before the process is spawned.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires once the process exited, whatever its exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the process could not be started.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
