package printing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/lpx/internal/execshell"
	"github.com/temirov/lpx/internal/ui"
)

const (
	progressTemplateConstant            = "Printing %s…"
	sentTemplateConstant                = "Sent %s to %s"
	sentWithRequestTemplateConstant     = "Sent %s to %s (%s)"
	failedTemplateConstant              = "Printing failed: %s"
	exitCodeReasonTemplateConstant      = "lp exited with code %d"
	printFailedErrorTemplateConstant    = "print failed: %w"
	invalidRequestErrorTemplateConstant = "invalid print request: %w"
	defaultPrinterDescriptionConstant   = "the default printer"
	standardInputDescriptionConstant    = "standard input"
	targetsSeparatorConstant            = ", "
	commandLineSeparatorConstant        = " "
	singleQuoteConstant                 = "'"
	escapedSingleQuoteConstant          = `'\''`
	dryRunMessageConstant               = "dry run: lp not started"
	printCompletedMessageConstant       = "print request sent"
	logFieldCommandLineConstant         = "command_line"
	logFieldPrinterConstant             = "printer"
	logFieldFileCountConstant           = "file_count"
	logFieldRequestIDConstant           = "request_id"
	logFieldStandardInputConstant       = "standard_input"
)

var unquotedArgumentPattern = regexp.MustCompile(`^[A-Za-z0-9@%+=:,./_-]+$`)

// FileResolver validates file operands before they reach lp.
type FileResolver interface {
	Resolve(candidatePaths []string) ([]string, error)
}

// ServiceDependencies describes the collaborators of Service.
type ServiceDependencies struct {
	Logger       *zap.Logger
	Executor     PrintExecutor
	FileResolver FileResolver
	Reporter     ui.StatusReporter
	Defaults     *DefaultsStore
	// DryRunOutput receives the command line when a request is a dry run.
	DryRunOutput io.Writer
}

// Request describes one lp invocation.
type Request struct {
	Arguments Arguments
	Files     []string
	// Buffer is streamed to lp's standard input when Files is empty.
	Buffer io.Reader
	// BufferName becomes the job title (-t) for buffer jobs without one.
	BufferName string
	DryRun     bool
}

// Result describes a finished or previewed invocation.
type Result struct {
	CommandLine string
	RequestID   string
	DryRun      bool
}

// Service assembles lp invocations and reports their outcome.
type Service struct {
	logger       *zap.Logger
	executor     PrintExecutor
	fileResolver FileResolver
	reporter     ui.StatusReporter
	defaults     *DefaultsStore
	dryRunOutput io.Writer
}

// NewService constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Executor == nil {
		return nil, ErrExecutorNotConfigured
	}

	service := &Service{
		logger:       dependencies.Logger,
		executor:     dependencies.Executor,
		fileResolver: dependencies.FileResolver,
		reporter:     dependencies.Reporter,
		defaults:     dependencies.Defaults,
		dryRunOutput: dependencies.DryRunOutput,
	}
	if service.logger == nil {
		service.logger = zap.NewNop()
	}
	if service.reporter == nil {
		service.reporter = ui.NewNoopStatusReporter()
	}
	if service.dryRunOutput == nil {
		service.dryRunOutput = io.Discard
	}
	return service, nil
}

// Print validates the request, runs lp, and records the arguments as the
// last-used defaults when lp succeeds.
func (service *Service) Print(executionContext context.Context, request Request) (Result, error) {
	if validationError := request.Arguments.Validate(); validationError != nil {
		return Result{}, fmt.Errorf(invalidRequestErrorTemplateConstant, validationError)
	}

	files, resolveError := service.resolveFiles(request.Files)
	if resolveError != nil {
		return Result{}, fmt.Errorf(invalidRequestErrorTemplateConstant, resolveError)
	}
	if len(files) == 0 && request.Buffer == nil {
		return Result{}, ErrNothingToPrint
	}

	invocationArguments := request.Arguments.Clone()
	trimmedBufferName := strings.TrimSpace(request.BufferName)
	if _, hasTitle := invocationArguments.FlagValue(FlagTitle); len(files) == 0 && !hasTitle && len(trimmedBufferName) > 0 {
		_ = invocationArguments.SetFlag(FlagTitle, trimmedBufferName)
	}

	commandArguments := append(invocationArguments.Tokens(), files...)
	result := Result{
		CommandLine: FormatCommandLine(service.executor.ResolveExecutable(execshell.CommandPrint), commandArguments),
		DryRun:      request.DryRun,
	}

	printer := describePrinter(request.Arguments)
	target := describeTarget(files, trimmedBufferName)

	if request.DryRun {
		if _, writeError := fmt.Fprintln(service.dryRunOutput, result.CommandLine); writeError != nil {
			return result, writeError
		}
		service.logger.Info(dryRunMessageConstant, zap.String(logFieldCommandLineConstant, result.CommandLine))
		return result, nil
	}

	details := execshell.CommandDetails{Arguments: commandArguments}
	if len(files) == 0 {
		details.StandardInput = request.Buffer
	}

	service.reporter.Progress(fmt.Sprintf(progressTemplateConstant, target))
	executionResult, executionError := service.executor.ExecutePrint(executionContext, details)
	if executionError != nil {
		service.reporter.Done(fmt.Sprintf(failedTemplateConstant, describeFailure(executionError)))
		return result, fmt.Errorf(printFailedErrorTemplateConstant, executionError)
	}

	result.RequestID = execshell.ExtractRequestID(executionResult.StandardOutput)
	if len(result.RequestID) > 0 {
		service.reporter.Done(fmt.Sprintf(sentWithRequestTemplateConstant, target, printer, result.RequestID))
	} else {
		service.reporter.Done(fmt.Sprintf(sentTemplateConstant, target, printer))
	}

	service.defaults.Record(request.Arguments)
	service.logger.Info(
		printCompletedMessageConstant,
		zap.String(logFieldPrinterConstant, printer),
		zap.Int(logFieldFileCountConstant, len(files)),
		zap.Bool(logFieldStandardInputConstant, len(files) == 0),
		zap.String(logFieldRequestIDConstant, result.RequestID),
	)
	return result, nil
}

func (service *Service) resolveFiles(candidateFiles []string) ([]string, error) {
	if service.fileResolver == nil {
		return trimBlankEntries(candidateFiles), nil
	}
	return service.fileResolver.Resolve(candidateFiles)
}

// FormatCommandLine renders an executable and arguments the way a POSIX shell would accept them.
func FormatCommandLine(executable string, arguments []string) string {
	quoted := make([]string, 0, len(arguments)+1)
	for _, argument := range append([]string{executable}, arguments...) {
		quoted = append(quoted, quoteArgument(argument))
	}
	return strings.Join(quoted, commandLineSeparatorConstant)
}

func quoteArgument(argument string) string {
	if unquotedArgumentPattern.MatchString(argument) {
		return argument
	}
	return singleQuoteConstant + strings.ReplaceAll(argument, singleQuoteConstant, escapedSingleQuoteConstant) + singleQuoteConstant
}

func describePrinter(arguments Arguments) string {
	if printer, present := arguments.FlagValue(FlagPrinter); present {
		return printer
	}
	return defaultPrinterDescriptionConstant
}

func describeTarget(files []string, bufferName string) string {
	if len(files) == 0 {
		if len(bufferName) > 0 {
			return bufferName
		}
		return standardInputDescriptionConstant
	}
	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, filepath.Base(file))
	}
	return strings.Join(names, targetsSeparatorConstant)
}

func describeFailure(executionError error) string {
	var failedError execshell.CommandFailedError
	if errors.As(executionError, &failedError) {
		if standardError := strings.TrimSpace(failedError.Result.StandardError); len(standardError) > 0 {
			return standardError
		}
		return fmt.Sprintf(exitCodeReasonTemplateConstant, failedError.Result.ExitCode)
	}
	var startError execshell.CommandExecutionError
	if errors.As(executionError, &startError) && startError.Cause != nil {
		return startError.Cause.Error()
	}
	return executionError.Error()
}

func trimBlankEntries(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		if trimmedValue := strings.TrimSpace(value); len(trimmedValue) > 0 {
			trimmed = append(trimmed, trimmedValue)
		}
	}
	return trimmed
}
