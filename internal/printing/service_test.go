package printing_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/lpx/internal/execshell"
	"github.com/temirov/lpx/internal/printing"
)

type recordingStatusReporter struct {
	progress []string
	done     []string
}

func (reporter *recordingStatusReporter) Progress(message string) {
	reporter.progress = append(reporter.progress, message)
}

func (reporter *recordingStatusReporter) Done(message string) {
	reporter.done = append(reporter.done, message)
}

type stubFileResolver struct {
	resolved []string
	err      error
}

func (resolver stubFileResolver) Resolve([]string) ([]string, error) {
	return resolver.resolved, resolver.err
}

func mustParseArguments(testInstance *testing.T, tokens ...string) printing.Arguments {
	testInstance.Helper()
	arguments, parseError := printing.ParseArguments(tokens)
	require.NoError(testInstance, parseError)
	return arguments
}

func TestNewServiceRequiresExecutor(testInstance *testing.T) {
	_, creationError := printing.NewService(printing.ServiceDependencies{})
	require.ErrorIs(testInstance, creationError, printing.ErrExecutorNotConfigured)
}

func TestServicePrintFiles(testInstance *testing.T) {
	executor := newStubCommandExecutor()
	executor.printResponse = stubResponse{result: execshell.ExecutionResult{StandardOutput: "request id is office-42 (2 file(s))\n"}}
	reporter := &recordingStatusReporter{}
	defaults := printing.NewDefaultsStore(printing.NewArguments())
	observedCore, observedLogs := observer.New(zapcore.InfoLevel)

	service, creationError := printing.NewService(printing.ServiceDependencies{
		Logger:       zap.New(observedCore),
		Executor:     executor,
		FileResolver: stubFileResolver{resolved: []string{"/tmp/report.pdf", "/tmp/notes one.txt"}},
		Reporter:     reporter,
		Defaults:     defaults,
	})
	require.NoError(testInstance, creationError)

	arguments := mustParseArguments(testInstance, "-d", "office", "-o", "sides=two-sided-long-edge")
	result, printError := service.Print(context.Background(), printing.Request{
		Arguments: arguments,
		Files:     []string{"report.pdf", "notes one.txt"},
	})
	require.NoError(testInstance, printError)

	require.Equal(testInstance, "office-42", result.RequestID)
	require.Equal(testInstance, "lp -d office -o sides=two-sided-long-edge /tmp/report.pdf '/tmp/notes one.txt'", result.CommandLine)
	require.Len(testInstance, executor.recordedCommands, 1)
	require.Equal(testInstance, []string{"-d", "office", "-o", "sides=two-sided-long-edge", "/tmp/report.pdf", "/tmp/notes one.txt"}, executor.recordedCommands[0].Details.Arguments)
	require.Nil(testInstance, executor.recordedCommands[0].Details.StandardInput)

	require.Equal(testInstance, []string{"Printing report.pdf, notes one.txt…"}, reporter.progress)
	require.Equal(testInstance, []string{"Sent report.pdf, notes one.txt to office (office-42)"}, reporter.done)
	require.Equal(testInstance, arguments.Tokens(), defaults.Load().Tokens())
	require.Equal(testInstance, 1, observedLogs.FilterMessage("print request sent").Len())
}

func TestServicePrintPlacesServerBeforePrinter(testInstance *testing.T) {
	executor := newStubCommandExecutor()
	service, creationError := printing.NewService(printing.ServiceDependencies{Executor: executor})
	require.NoError(testInstance, creationError)

	arguments := printing.NewArguments()
	require.NoError(testInstance, arguments.SetFlag(printing.FlagPrinter, "office"))
	require.NoError(testInstance, arguments.SetOption(printing.OptionKeyMedia, "a4"))
	require.NoError(testInstance, arguments.SetFlag(printing.FlagServer, "remote:631"))

	result, printError := service.Print(context.Background(), printing.Request{Arguments: arguments, Files: []string{"report.pdf"}})
	require.NoError(testInstance, printError)
	require.Equal(testInstance, "lp -h remote:631 -d office -o media=a4 report.pdf", result.CommandLine)
	require.Len(testInstance, executor.recordedCommands, 1)
	require.Equal(testInstance, []string{"-h", "remote:631", "-d", "office", "-o", "media=a4", "report.pdf"}, executor.recordedCommands[0].Details.Arguments)
}

func TestServicePrintBuffer(testInstance *testing.T) {
	testCases := []struct {
		name              string
		tokens            []string
		bufferName        string
		expectedArguments []string
		expectedDone      string
	}{
		{
			name:              "buffer_name_becomes_title",
			bufferName:        "notes.md",
			expectedArguments: []string{"-t", "notes.md"},
			expectedDone:      "Sent notes.md to the default printer",
		},
		{
			name:              "explicit_title_kept",
			tokens:            []string{"-t", "Minutes"},
			bufferName:        "notes.md",
			expectedArguments: []string{"-t", "Minutes"},
			expectedDone:      "Sent notes.md to the default printer",
		},
		{
			name:              "anonymous_buffer",
			tokens:            []string{"-d", "lab"},
			expectedArguments: []string{"-d", "lab"},
			expectedDone:      "Sent standard input to lab",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := newStubCommandExecutor()
			reporter := &recordingStatusReporter{}
			service, creationError := printing.NewService(printing.ServiceDependencies{Executor: executor, Reporter: reporter})
			require.NoError(testInstance, creationError)

			buffer := strings.NewReader("hello printer\n")
			_, printError := service.Print(context.Background(), printing.Request{
				Arguments:  mustParseArguments(testInstance, testCase.tokens...),
				Buffer:     buffer,
				BufferName: testCase.bufferName,
			})
			require.NoError(testInstance, printError)

			require.Len(testInstance, executor.recordedCommands, 1)
			details := executor.recordedCommands[0].Details
			require.Equal(testInstance, testCase.expectedArguments, details.Arguments)
			streamed, readError := io.ReadAll(details.StandardInput)
			require.NoError(testInstance, readError)
			require.Equal(testInstance, "hello printer\n", string(streamed))
			require.Equal(testInstance, []string{testCase.expectedDone}, reporter.done)
		})
	}
}

func TestServicePrintFailures(testInstance *testing.T) {
	testCases := []struct {
		name         string
		response     stubResponse
		expectedDone string
	}{
		{
			name: "standard_error_reported",
			response: stubResponse{err: execshell.CommandFailedError{
				Command: execshell.ShellCommand{Name: execshell.CommandPrint},
				Result:  execshell.ExecutionResult{ExitCode: 1, StandardError: "lp: The printer or class does not exist.\n"},
			}},
			expectedDone: "Printing failed: lp: The printer or class does not exist.",
		},
		{
			name: "exit_code_reported",
			response: stubResponse{err: execshell.CommandFailedError{
				Command: execshell.ShellCommand{Name: execshell.CommandPrint},
				Result:  execshell.ExecutionResult{ExitCode: 3},
			}},
			expectedDone: "Printing failed: lp exited with code 3",
		},
		{
			name: "start_failure_reported",
			response: stubResponse{err: execshell.CommandExecutionError{
				Command: execshell.ShellCommand{Name: execshell.CommandPrint},
				Cause:   io.ErrClosedPipe,
			}},
			expectedDone: "Printing failed: " + io.ErrClosedPipe.Error(),
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := newStubCommandExecutor()
			executor.printResponse = testCase.response
			reporter := &recordingStatusReporter{}
			defaults := printing.NewDefaultsStore(printing.NewArguments())
			service, creationError := printing.NewService(printing.ServiceDependencies{Executor: executor, Reporter: reporter, Defaults: defaults})
			require.NoError(testInstance, creationError)

			_, printError := service.Print(context.Background(), printing.Request{
				Arguments: mustParseArguments(testInstance, "-d", "office"),
				Buffer:    strings.NewReader("x"),
			})
			require.ErrorContains(testInstance, printError, "print failed")
			require.Equal(testInstance, []string{testCase.expectedDone}, reporter.done)
			require.True(testInstance, defaults.Load().IsEmpty())
		})
	}
}

func TestServicePrintRejectsInvalidRequests(testInstance *testing.T) {
	testCases := []struct {
		name          string
		request       printing.Request
		resolver      printing.FileResolver
		expectedError error
	}{
		{
			name:          "nothing_to_print",
			request:       printing.Request{Files: []string{" "}},
			expectedError: printing.ErrNothingToPrint,
		},
		{
			name:          "invalid_copies",
			request:       printing.Request{Arguments: mustParseArguments(testInstance, "-n", "0"), Buffer: strings.NewReader("x")},
			expectedError: printing.ErrInvalidCopies,
		},
		{
			name:          "file_resolution_failure",
			request:       printing.Request{Files: []string{"missing.pdf"}},
			resolver:      stubFileResolver{err: io.ErrUnexpectedEOF},
			expectedError: io.ErrUnexpectedEOF,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := newStubCommandExecutor()
			service, creationError := printing.NewService(printing.ServiceDependencies{Executor: executor, FileResolver: testCase.resolver})
			require.NoError(testInstance, creationError)

			_, printError := service.Print(context.Background(), testCase.request)
			require.ErrorIs(testInstance, printError, testCase.expectedError)
			require.Empty(testInstance, executor.recordedCommands)
		})
	}
}

func TestServicePrintDryRun(testInstance *testing.T) {
	executor := newStubCommandExecutor()
	executor.executables[execshell.CommandPrint] = "/opt/cups/bin/lp"
	reporter := &recordingStatusReporter{}
	defaults := printing.NewDefaultsStore(printing.NewArguments())
	output := &bytes.Buffer{}

	service, creationError := printing.NewService(printing.ServiceDependencies{
		Executor:     executor,
		Reporter:     reporter,
		Defaults:     defaults,
		DryRunOutput: output,
	})
	require.NoError(testInstance, creationError)

	result, printError := service.Print(context.Background(), printing.Request{
		Arguments: mustParseArguments(testInstance, "-t", "it's done"),
		Files:     []string{"report.pdf"},
		DryRun:    true,
	})
	require.NoError(testInstance, printError)
	require.True(testInstance, result.DryRun)
	require.Equal(testInstance, `/opt/cups/bin/lp -t 'it'\''s done' report.pdf`+"\n", output.String())
	require.Empty(testInstance, executor.recordedCommands)
	require.Empty(testInstance, reporter.progress)
	require.True(testInstance, defaults.Load().IsEmpty())
}

func TestFormatCommandLine(testInstance *testing.T) {
	require.Equal(testInstance, "lp -o media=a4 -P 1,3-5", printing.FormatCommandLine("lp", []string{"-o", "media=a4", "-P", "1,3-5"}))
	require.Equal(testInstance, "lp '' '$HOME' 'a b'", printing.FormatCommandLine("lp", []string{"", "$HOME", "a b"}))
}
