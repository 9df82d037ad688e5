package lp

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	presetsCommandUseConstant              = "presets"
	presetsCommandShortDescriptionConstant = "List configured print presets"
	presetsCommandLongDescriptionConstant  = "presets lists the named argument sets from the configured presets file. Apply one with print --preset NAME or the a key of the menu."
	presetsUnexpectedArgumentsMessage      = "presets does not accept positional arguments"
	presetsEmptyMessageConstant            = "No presets configured."
	presetLineTemplateConstant             = "%s: %s\n"
	presetDescriptionTemplateConstant      = "  %s\n"
)

// PresetsCommandBuilder assembles the presets command.
type PresetsCommandBuilder struct {
	CommandDependencies
}

// Build constructs the presets command.
func (builder *PresetsCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   presetsCommandUseConstant,
		Short: presetsCommandShortDescriptionConstant,
		Long:  presetsCommandLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) > 0 {
				if helpError := displayCommandHelp(command); helpError != nil {
					return helpError
				}
				return errors.New(presetsUnexpectedArgumentsMessage)
			}
			return builder.run(command)
		},
	}
	return command, nil
}

func (builder *PresetsCommandBuilder) run(command *cobra.Command) error {
	catalog, loadError := builder.loadPresets(command, builder.resolveConfiguration())
	if loadError != nil {
		return loadError
	}

	output := command.OutOrStdout()
	presets := catalog.Presets()
	if len(presets) == 0 {
		fmt.Fprintln(output, presetsEmptyMessageConstant)
		return nil
	}

	for _, preset := range presets {
		fmt.Fprintf(output, presetLineTemplateConstant, preset.Name, preset.ParsedArguments().String())
		if len(preset.Description) > 0 {
			fmt.Fprintf(output, presetDescriptionTemplateConstant, preset.Description)
		}
	}
	return nil
}
