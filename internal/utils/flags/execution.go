// Package flags provides helpers for binding standardized flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Show the lp command line without running it"
)

// ExecutionDefaults describes default flag values shared across commands.
type ExecutionDefaults struct {
	DryRun bool
}

// ExecutionFlagDefinition captures a single flag's configuration.
type ExecutionFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// ExecutionFlagDefinitions groups execution flag definitions.
type ExecutionFlagDefinitions struct {
	DryRun ExecutionFlagDefinition
}

// ExecutionFlagValues reports parsed execution flags.
type ExecutionFlagValues struct {
	DryRun    bool
	DryRunSet bool
}

// BindExecutionFlags attaches standardized execution flags to the provided command using persistent scope.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults, definitions ExecutionFlagDefinitions) {
	if command == nil {
		return
	}
	bindBoolFlag(command.PersistentFlags(), definitions.DryRun, defaults.DryRun)
}

// ReadExecutionFlags resolves execution flag values visible to command, including inherited ones.
func ReadExecutionFlags(command *cobra.Command, definitions ExecutionFlagDefinitions) ExecutionFlagValues {
	values := ExecutionFlagValues{}
	if command == nil || !definitions.DryRun.Enabled {
		return values
	}

	dryRunFlag := command.Flags().Lookup(definitions.DryRun.Name)
	if dryRunFlag == nil {
		dryRunFlag = command.InheritedFlags().Lookup(definitions.DryRun.Name)
	}
	if dryRunFlag == nil {
		return values
	}

	values.DryRun = dryRunFlag.Value.String() == toggleTrueCanonicalValue
	values.DryRunSet = dryRunFlag.Changed
	return values
}

func bindBoolFlag(flagSet *pflag.FlagSet, definition ExecutionFlagDefinition, defaultValue bool) {
	if flagSet == nil || !definition.Enabled || len(definition.Name) == 0 {
		return
	}

	if len(definition.Shorthand) > 0 {
		flagSet.BoolP(definition.Name, definition.Shorthand, defaultValue, definition.Usage)
		return
	}
	flagSet.Bool(definition.Name, defaultValue, definition.Usage)
}
