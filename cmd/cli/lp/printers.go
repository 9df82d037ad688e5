package lp

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/lpx/internal/printing"
	flagutils "github.com/temirov/lpx/internal/utils/flags"
)

const (
	printersCommandUseConstant              = "printers"
	printersCommandShortDescriptionConstant = "List printers known to lpstat"
	printersCommandLongDescriptionConstant  = "printers lists the destinations reported by lpstat. The system default destination is marked with *. With --servers, print servers are listed instead."
	serversFlagNameConstant                 = "servers"
	serversFlagUsageConstant                = "List print servers instead of printers"
	printersUnexpectedArgumentsMessage      = "printers does not accept positional arguments"
	printersListErrorTemplateConstant       = "unable to list printers: %w"
	serversListErrorTemplateConstant        = "unable to list print servers: %w"
	destinationLineTemplateConstant         = "%s %s\n"
	defaultDestinationMarkerConstant        = "*"
	regularDestinationMarkerConstant        = " "
	defaultPrinterLookupFailedMessage       = "default printer lookup failed"
	logFieldServerConstant                  = "server"
	logFieldErrorConstant                   = "error"
)

// PrintersCommandBuilder assembles the printers command.
type PrintersCommandBuilder struct {
	CommandDependencies
}

// Build constructs the printers command.
func (builder *PrintersCommandBuilder) Build() (*cobra.Command, error) {
	var listServers bool
	command := &cobra.Command{
		Use:   printersCommandUseConstant,
		Short: printersCommandShortDescriptionConstant,
		Long:  printersCommandLongDescriptionConstant,
	}

	destinationDefinitions := flagutils.DefaultDestinationFlagDefinitions()
	destinationDefinitions.Printer.Enabled = false
	destination := flagutils.BindDestinationFlags(command, flagutils.DestinationFlagValues{}, destinationDefinitions)
	command.Flags().BoolVar(&listServers, serversFlagNameConstant, false, serversFlagUsageConstant)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		if len(arguments) > 0 {
			if helpError := displayCommandHelp(command); helpError != nil {
				return helpError
			}
			return errors.New(printersUnexpectedArgumentsMessage)
		}
		return builder.run(command, destination.Server, listServers)
	}

	return command, nil
}

func (builder *PrintersCommandBuilder) run(command *cobra.Command, server string, listServers bool) error {
	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()

	executor, executorError := builder.resolveExecutor(logger, configuration)
	if executorError != nil {
		return executorError
	}
	catalog, catalogError := printing.NewDestinationCatalog(executor, configuration.Servers, configuration.QueryTimeout)
	if catalogError != nil {
		return catalogError
	}

	output := command.OutOrStdout()
	if listServers {
		servers, serversError := catalog.Servers(command.Context())
		if serversError != nil {
			return fmt.Errorf(serversListErrorTemplateConstant, serversError)
		}
		for _, candidate := range servers {
			fmt.Fprintln(output, candidate)
		}
		return nil
	}

	printers, printersError := catalog.Printers(command.Context(), server)
	if printersError != nil {
		return fmt.Errorf(printersListErrorTemplateConstant, printersError)
	}

	defaultPrinter, defaultError := catalog.DefaultPrinter(command.Context(), server)
	if defaultError != nil {
		logger.Debug(defaultPrinterLookupFailedMessage, zap.String(logFieldServerConstant, server), zap.Error(defaultError))
	}

	for _, printer := range printers {
		marker := regularDestinationMarkerConstant
		if printer == defaultPrinter {
			marker = defaultDestinationMarkerConstant
		}
		fmt.Fprintf(output, destinationLineTemplateConstant, marker, printer)
	}
	return nil
}
