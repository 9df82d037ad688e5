package flags

import "github.com/spf13/cobra"

const (
	// PrinterFlagName exposes the shared printer flag name.
	PrinterFlagName = "printer"
	// PrinterFlagShorthand mirrors lp's -d.
	PrinterFlagShorthand = "d"
	// PrinterFlagUsage describes the shared printer flag purpose.
	PrinterFlagUsage = "Destination printer (defaults to the system default)"
	// ServerFlagName exposes the shared print server flag name.
	ServerFlagName = "server"
	// ServerFlagShorthand is upper case because -h is reserved for help.
	ServerFlagShorthand = "H"
	// ServerFlagUsage describes the shared print server flag purpose.
	ServerFlagUsage = "Print server as host[:port]"
)

// DestinationFlagDefinition captures configuration for a destination flag.
type DestinationFlagDefinition struct {
	Name      string
	Shorthand string
	Usage     string
	Enabled   bool
}

// DestinationFlagDefinitions groups destination flag definitions.
type DestinationFlagDefinitions struct {
	Printer DestinationFlagDefinition
	Server  DestinationFlagDefinition
}

// DestinationFlagValues stores destination flag values.
type DestinationFlagValues struct {
	Printer string
	Server  string
}

// DefaultDestinationFlagDefinitions returns the shared printer and server flags.
func DefaultDestinationFlagDefinitions() DestinationFlagDefinitions {
	return DestinationFlagDefinitions{
		Printer: DestinationFlagDefinition{Name: PrinterFlagName, Shorthand: PrinterFlagShorthand, Usage: PrinterFlagUsage, Enabled: true},
		Server:  DestinationFlagDefinition{Name: ServerFlagName, Shorthand: ServerFlagShorthand, Usage: ServerFlagUsage, Enabled: true},
	}
}

// BindDestinationFlags attaches printer and server flags to the provided command.
func BindDestinationFlags(command *cobra.Command, defaults DestinationFlagValues, definitions DestinationFlagDefinitions) *DestinationFlagValues {
	values := defaults
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	for _, binding := range []struct {
		definition DestinationFlagDefinition
		target     *string
		fallback   string
	}{
		{definition: definitions.Printer, target: &values.Printer, fallback: defaults.Printer},
		{definition: definitions.Server, target: &values.Server, fallback: defaults.Server},
	} {
		if !binding.definition.Enabled || len(binding.definition.Name) == 0 {
			continue
		}
		if flagSet.Lookup(binding.definition.Name) != nil {
			continue
		}
		flagSet.StringVarP(binding.target, binding.definition.Name, binding.definition.Shorthand, binding.fallback, binding.definition.Usage)
	}

	return &values
}
