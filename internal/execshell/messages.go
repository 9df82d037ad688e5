package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	argumentTerminatorConstant              = "--"
	listSeparatorConstant                   = ", "
)

const (
	printDestinationFlagConstant    = "-d"
	printServerFlagConstant         = "-h"
	optionsPrinterFlagConstant      = "-p"
	optionsListFlagConstant         = "-l"
	statusDestinationsFlagConstant  = "-e"
	statusAcceptingFlagConstant     = "-a"
	statusDefaultFlagConstant       = "-d"
	statusServerFlagConstant        = "-H"
	defaultPrinterLabelConstant     = "the default printer"
	standardInputLabelConstant      = "standard input"
	serverSuffixTemplateConstant    = " via %s"
	requestIDSuffixTemplateConstant = " (%s)"
	requestIDPrefixConstant         = "request id is "
)

const (
	printStartTemplateConstant                     = "Printing %s on %s%s"
	printSuccessTemplateConstant                   = "Sent %s to %s%s%s"
	printFailureTemplateConstant                   = "Failed to print %s on %s%s (exit code %d%s)"
	printExecutionFailureTemplateConstant          = "Unable to print %s on %s%s: %s"
	listPrintersStartTemplateConstant              = "Listing printers%s"
	listPrintersSuccessTemplateConstant            = "Listed printers%s"
	listPrintersFailureTemplateConstant            = "Failed to list printers%s (exit code %d%s)"
	listPrintersExecutionFailureTemplateConstant   = "Unable to list printers%s: %s"
	defaultPrinterStartTemplateConstant            = "Resolving default printer%s"
	defaultPrinterSuccessTemplateConstant          = "Resolved default printer%s"
	defaultPrinterFailureTemplateConstant          = "Failed to resolve default printer%s (exit code %d%s)"
	defaultPrinterExecutionFailureTemplateConstant = "Unable to resolve default printer%s: %s"
	serverStartMessageConstant                     = "Resolving print server"
	serverSuccessMessageConstant                   = "Resolved print server"
	serverFailureTemplateConstant                  = "Failed to resolve print server (exit code %d%s)"
	serverExecutionFailureTemplateConstant         = "Unable to resolve print server: %s"
	optionsStartTemplateConstant                   = "Querying options for %s%s"
	optionsSuccessTemplateConstant                 = "Queried options for %s%s"
	optionsFailureTemplateConstant                 = "Failed to query options for %s%s (exit code %d%s)"
	optionsExecutionFailureTemplateConstant        = "Unable to query options for %s%s: %s"
)

// valueFlags lists lp flags that consume the following argument.
var valueFlags = map[string]struct{}{
	"-d": {}, "-h": {}, "-n": {}, "-o": {}, "-P": {}, "-t": {}, "-U": {}, "-H": {}, "-q": {}, "-i": {},
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandPrint:
		return formatter.describePrintMessage(command, result, failure, stage)
	case CommandPrinterStatus:
		return formatter.describeStatusMessage(command, result, failure, stage)
	case CommandPrinterOptions:
		return formatter.describeOptionsMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describePrintMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	targets := formatter.describePrintTargets(arguments)
	printer := formatter.describePrinter(findFlagValue(arguments, printDestinationFlagConstant))
	server := formatter.formatServerSuffix(findFlagValue(arguments, printServerFlagConstant))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(printStartTemplateConstant, targets, printer, server)
	case messageStageSuccess:
		return fmt.Sprintf(printSuccessTemplateConstant, targets, printer, server, formatter.formatRequestIDSuffix(result.StandardOutput))
	case messageStageFailure:
		return fmt.Sprintf(printFailureTemplateConstant, targets, printer, server, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(printExecutionFailureTemplateConstant, targets, printer, server, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) describeStatusMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	server := formatter.formatServerSuffix(findFlagValue(arguments, printServerFlagConstant))
	standardErrorSuffix := formatter.formatStandardErrorSuffix(result.StandardError)

	switch {
	case containsArgument(arguments, statusServerFlagConstant):
		switch stage {
		case messageStageStart:
			return serverStartMessageConstant
		case messageStageSuccess:
			return serverSuccessMessageConstant
		case messageStageFailure:
			return fmt.Sprintf(serverFailureTemplateConstant, result.ExitCode, standardErrorSuffix)
		case messageStageExecutionFailure:
			return fmt.Sprintf(serverExecutionFailureTemplateConstant, formatter.describeFailure(failure))
		}
	case containsArgument(arguments, statusDefaultFlagConstant):
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(defaultPrinterStartTemplateConstant, server)
		case messageStageSuccess:
			return fmt.Sprintf(defaultPrinterSuccessTemplateConstant, server)
		case messageStageFailure:
			return fmt.Sprintf(defaultPrinterFailureTemplateConstant, server, result.ExitCode, standardErrorSuffix)
		case messageStageExecutionFailure:
			return fmt.Sprintf(defaultPrinterExecutionFailureTemplateConstant, server, formatter.describeFailure(failure))
		}
	case containsArgument(arguments, statusDestinationsFlagConstant), containsArgument(arguments, statusAcceptingFlagConstant):
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(listPrintersStartTemplateConstant, server)
		case messageStageSuccess:
			return fmt.Sprintf(listPrintersSuccessTemplateConstant, server)
		case messageStageFailure:
			return fmt.Sprintf(listPrintersFailureTemplateConstant, server, result.ExitCode, standardErrorSuffix)
		case messageStageExecutionFailure:
			return fmt.Sprintf(listPrintersExecutionFailureTemplateConstant, server, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeOptionsMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if !containsArgument(arguments, optionsListFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	printer := formatter.describePrinter(findFlagValue(arguments, optionsPrinterFlagConstant))
	server := formatter.formatServerSuffix(findFlagValue(arguments, printServerFlagConstant))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(optionsStartTemplateConstant, printer, server)
	case messageStageSuccess:
		return fmt.Sprintf(optionsSuccessTemplateConstant, printer, server)
	case messageStageFailure:
		return fmt.Sprintf(optionsFailureTemplateConstant, printer, server, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(optionsExecutionFailureTemplateConstant, printer, server, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := command.CommandLine()
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) formatServerSuffix(server string) string {
	if len(server) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(serverSuffixTemplateConstant, server)
}

func (formatter CommandMessageFormatter) formatRequestIDSuffix(standardOutput string) string {
	requestID := ExtractRequestID(standardOutput)
	if len(requestID) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(requestIDSuffixTemplateConstant, requestID)
}

func (formatter CommandMessageFormatter) describePrinter(printer string) string {
	if len(printer) == 0 {
		return defaultPrinterLabelConstant
	}
	return printer
}

func (formatter CommandMessageFormatter) describePrintTargets(arguments []string) string {
	files := ExtractPrintFiles(arguments)
	if len(files) == 0 {
		return standardInputLabelConstant
	}
	return strings.Join(files, listSeparatorConstant)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

// ExtractPrintFiles returns the positional file operands of an lp argument list.
func ExtractPrintFiles(arguments []string) []string {
	files := []string{}
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == argumentTerminatorConstant {
			files = append(files, arguments[index+1:]...)
			break
		}
		if strings.HasPrefix(argument, "-") && len(argument) > 1 {
			if _, consumesValue := valueFlags[argument]; consumesValue {
				index++
			}
			continue
		}
		files = append(files, argument)
	}
	return files
}

// ExtractRequestID reads the job identifier from lp's "request id is NAME-ID (N file(s))" output.
func ExtractRequestID(standardOutput string) string {
	for _, line := range strings.Split(standardOutput, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmedLine, requestIDPrefixConstant) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(trimmedLine, requestIDPrefixConstant))
		if len(fields) > 0 {
			return fields[0]
		}
	}
	return emptyStringConstant
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
