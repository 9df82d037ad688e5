package lp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/lpx/internal/printing"
	flagutils "github.com/temirov/lpx/internal/utils/flags"
)

const (
	optionsCommandUseConstant              = "options"
	optionsCommandShortDescriptionConstant = "List printer-specific options reported by lpoptions"
	optionsCommandLongDescriptionConstant  = "options runs lpoptions -l for the selected printer and lists each option with its values. The current default value is marked with *. Values can be passed to print with --option KEY=VALUE."
	optionsUnexpectedArgumentsMessage      = "options does not accept positional arguments"
	optionsDiscoveryErrorTemplateConstant  = "unable to discover printer options: %w"
	optionLineTemplateConstant             = "%s (%s): %s\n"
	optionValuesSeparatorConstant          = " "
)

// OptionsCommandBuilder assembles the options command.
type OptionsCommandBuilder struct {
	CommandDependencies
}

// Build constructs the options command.
func (builder *OptionsCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   optionsCommandUseConstant,
		Short: optionsCommandShortDescriptionConstant,
		Long:  optionsCommandLongDescriptionConstant,
	}

	destination := flagutils.BindDestinationFlags(command, flagutils.DestinationFlagValues{}, flagutils.DefaultDestinationFlagDefinitions())

	command.RunE = func(command *cobra.Command, arguments []string) error {
		if len(arguments) > 0 {
			if helpError := displayCommandHelp(command); helpError != nil {
				return helpError
			}
			return errors.New(optionsUnexpectedArgumentsMessage)
		}
		return builder.run(command, printing.DiscoveryTarget{Printer: destination.Printer, Server: destination.Server})
	}

	return command, nil
}

func (builder *OptionsCommandBuilder) run(command *cobra.Command, target printing.DiscoveryTarget) error {
	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()

	executor, executorError := builder.resolveExecutor(logger, configuration)
	if executorError != nil {
		return executorError
	}
	discoverer, discovererError := printing.NewOptionDiscoverer(executor, configuration.QueryTimeout)
	if discovererError != nil {
		return discovererError
	}

	if len(strings.TrimSpace(target.Printer)) == 0 {
		target.Printer = configuration.DefaultPrinter
	}

	options, discoveryError := discoverer.Discover(command.Context(), target)
	if discoveryError != nil {
		return fmt.Errorf(optionsDiscoveryErrorTemplateConstant, discoveryError)
	}

	output := command.OutOrStdout()
	for _, option := range options {
		fmt.Fprintf(output, optionLineTemplateConstant, option.Key, option.Label, formatOptionValues(option))
	}
	return nil
}

func formatOptionValues(option printing.DynamicOption) string {
	values := make([]string, 0, len(option.Values))
	for _, value := range option.Values {
		if value == option.Default {
			value = defaultDestinationMarkerConstant + value
		}
		values = append(values, value)
	}
	return strings.Join(values, optionValuesSeparatorConstant)
}
