package printing_test

import (
	"context"

	"github.com/temirov/lpx/internal/execshell"
)

type stubResponse struct {
	result execshell.ExecutionResult
	err    error
}

type stubCommandExecutor struct {
	responses        map[string]stubResponse
	printResponse    stubResponse
	recordedCommands []execshell.ShellCommand
	executables      map[execshell.CommandName]string
}

func newStubCommandExecutor() *stubCommandExecutor {
	return &stubCommandExecutor{responses: map[string]stubResponse{}, executables: map[execshell.CommandName]string{}}
}

func (executor *stubCommandExecutor) respond(commandName execshell.CommandName, arguments string, output string, err error) {
	executor.responses[string(commandName)+" "+arguments] = stubResponse{result: execshell.ExecutionResult{StandardOutput: output}, err: err}
}

func (executor *stubCommandExecutor) ExecutePrint(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, execshell.ShellCommand{Name: execshell.CommandPrint, Details: details})
	return executor.printResponse.result, executor.printResponse.err
}

func (executor *stubCommandExecutor) ExecutePrinterStatus(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.lookup(execshell.CommandPrinterStatus, details)
}

func (executor *stubCommandExecutor) ExecutePrinterOptions(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.lookup(execshell.CommandPrinterOptions, details)
}

func (executor *stubCommandExecutor) ResolveExecutable(commandName execshell.CommandName) string {
	return execshell.ShellCommand{Name: commandName, Executable: executor.executables[commandName]}.ExecutablePath()
}

func (executor *stubCommandExecutor) lookup(commandName execshell.CommandName, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	command := execshell.ShellCommand{Name: commandName, Details: details}
	executor.recordedCommands = append(executor.recordedCommands, command)
	response, found := executor.responses[command.CommandLine()]
	if !found {
		return execshell.ExecutionResult{}, execshell.CommandFailedError{Command: command, Result: execshell.ExecutionResult{ExitCode: 1}}
	}
	return response.result, response.err
}

func (executor *stubCommandExecutor) recordedArguments() [][]string {
	arguments := make([][]string, 0, len(executor.recordedCommands))
	for _, command := range executor.recordedCommands {
		arguments = append(arguments, command.Details.Arguments)
	}
	return arguments
}
