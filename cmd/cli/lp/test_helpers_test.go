package lp_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/lpx/cmd/cli/lp"
	"github.com/temirov/lpx/internal/execshell"
	"github.com/temirov/lpx/internal/printing"
	flagutils "github.com/temirov/lpx/internal/utils/flags"
)

const (
	testRootCommandNameConstant = "lpx"
	testDryRunFlagConstant      = "--dry-run"
)

type stubResponse struct {
	result execshell.ExecutionResult
	err    error
}

type recordedPrint struct {
	arguments     []string
	standardInput string
}

type stubCommandExecutor struct {
	responses        map[string]stubResponse
	printResponse    stubResponse
	recordedPrints   []recordedPrint
	recordedCommands []string
}

func newStubCommandExecutor() *stubCommandExecutor {
	return &stubCommandExecutor{responses: map[string]stubResponse{}}
}

func (executor *stubCommandExecutor) respond(commandName execshell.CommandName, arguments string, output string) {
	executor.responses[string(commandName)+" "+arguments] = stubResponse{result: execshell.ExecutionResult{StandardOutput: output}}
}

func (executor *stubCommandExecutor) ExecutePrint(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	record := recordedPrint{arguments: append([]string{}, details.Arguments...)}
	if details.StandardInput != nil {
		content, readError := io.ReadAll(details.StandardInput)
		if readError != nil {
			return execshell.ExecutionResult{}, readError
		}
		record.standardInput = string(content)
	}
	executor.recordedPrints = append(executor.recordedPrints, record)
	return executor.printResponse.result, executor.printResponse.err
}

func (executor *stubCommandExecutor) ExecutePrinterStatus(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.lookup(execshell.CommandPrinterStatus, details)
}

func (executor *stubCommandExecutor) ExecutePrinterOptions(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.lookup(execshell.CommandPrinterOptions, details)
}

func (executor *stubCommandExecutor) ResolveExecutable(commandName execshell.CommandName) string {
	return string(commandName)
}

func (executor *stubCommandExecutor) lookup(commandName execshell.CommandName, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	command := execshell.ShellCommand{Name: commandName, Details: details}
	executor.recordedCommands = append(executor.recordedCommands, command.CommandLine())
	response, found := executor.responses[command.CommandLine()]
	if !found {
		return execshell.ExecutionResult{}, execshell.CommandFailedError{Command: command, Result: execshell.ExecutionResult{ExitCode: 1}}
	}
	return response.result, response.err
}

type commandBuilder interface {
	Build() (*cobra.Command, error)
}

type commandOutcome struct {
	standardOutput string
	standardError  string
	err            error
}

func newTestDependencies(executor *stubCommandExecutor, configuration printing.Configuration) lp.CommandDependencies {
	return lp.CommandDependencies{
		LoggerProvider: func() *zap.Logger {
			return zap.NewNop()
		},
		ConfigurationProvider: func() printing.Configuration {
			return configuration
		},
		HumanReadableLoggingProvider: func() bool {
			return true
		},
		Executor:      executor,
		DefaultsStore: printing.NewDefaultsStore(printing.NewArguments()),
		TerminalDetector: func(any) bool {
			return false
		},
	}
}

// executeCommand mounts the built command under a root carrying the shared
// execution flags and runs it with the provided input.
func executeCommand(testInstance *testing.T, builder commandBuilder, input string, arguments ...string) commandOutcome {
	testInstance.Helper()
	return executeCommandInContext(testInstance, context.Background(), builder, input, arguments...)
}

func executeCommandInContext(testInstance *testing.T, executionContext context.Context, builder commandBuilder, input string, arguments ...string) commandOutcome {
	testInstance.Helper()

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	rootCommand := &cobra.Command{Use: testRootCommandNameConstant, SilenceUsage: true, SilenceErrors: true}
	flagutils.BindExecutionFlags(rootCommand, flagutils.ExecutionDefaults{}, flagutils.ExecutionFlagDefinitions{
		DryRun: flagutils.ExecutionFlagDefinition{Name: flagutils.DryRunFlagName, Usage: flagutils.DryRunFlagUsage, Enabled: true},
	})
	rootCommand.AddCommand(command)

	standardOutput := &bytes.Buffer{}
	standardError := &bytes.Buffer{}
	rootCommand.SetOut(standardOutput)
	rootCommand.SetErr(standardError)
	rootCommand.SetIn(strings.NewReader(input))
	rootCommand.SetArgs(append([]string{command.Name()}, arguments...))

	executionError := rootCommand.ExecuteContext(executionContext)
	return commandOutcome{standardOutput: standardOutput.String(), standardError: standardError.String(), err: executionError}
}
