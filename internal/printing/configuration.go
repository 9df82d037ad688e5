package printing

import (
	"strings"
	"time"

	"github.com/temirov/lpx/internal/execshell"
	pathutils "github.com/temirov/lpx/internal/utils/path"
)

const (
	configurationExecutablesKeyConstant      = "executables"
	configurationPrintKeyConstant            = "print"
	configurationListKeyConstant             = "list"
	configurationOptionsKeyConstant          = "options"
	configurationDefaultPrinterKeyConstant   = "default_printer"
	configurationDefaultArgumentsKeyConstant = "default_arguments"
	configurationServersKeyConstant          = "servers"
	configurationQueryTimeoutKeyConstant     = "query_timeout"
	configurationPresetsFileKeyConstant      = "presets_file"
	configurationKeySeparatorConstant        = "."

	defaultQueryTimeout = 5 * time.Second
)

var configurationHomeExpander = pathutils.NewHomeExpander()

// ExecutablesConfiguration points each printing command at a binary.
type ExecutablesConfiguration struct {
	Print   string `mapstructure:"print"`
	List    string `mapstructure:"list"`
	Options string `mapstructure:"options"`
}

// Configuration aggregates settings for the printing commands.
type Configuration struct {
	Executables      ExecutablesConfiguration `mapstructure:"executables"`
	DefaultPrinter   string                   `mapstructure:"default_printer"`
	DefaultArguments []string                 `mapstructure:"default_arguments"`
	Servers          []string                 `mapstructure:"servers"`
	QueryTimeout     time.Duration            `mapstructure:"query_timeout"`
	PresetsFile      string                   `mapstructure:"presets_file"`
}

// DefaultConfiguration supplies baseline values for printing configuration.
func DefaultConfiguration() Configuration {
	return Configuration{
		Executables: ExecutablesConfiguration{
			Print:   string(execshell.CommandPrint),
			List:    string(execshell.CommandPrinterStatus),
			Options: string(execshell.CommandPrinterOptions),
		},
		QueryTimeout: defaultQueryTimeout,
	}
}

// DefaultConfigurationValues flattens DefaultConfiguration under rootKey for viper defaults.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	prefix := rootKey + configurationKeySeparatorConstant
	executablesPrefix := prefix + configurationExecutablesKeyConstant + configurationKeySeparatorConstant
	return map[string]any{
		executablesPrefix + configurationPrintKeyConstant:   defaults.Executables.Print,
		executablesPrefix + configurationListKeyConstant:    defaults.Executables.List,
		executablesPrefix + configurationOptionsKeyConstant: defaults.Executables.Options,
		prefix + configurationDefaultPrinterKeyConstant:     defaults.DefaultPrinter,
		prefix + configurationDefaultArgumentsKeyConstant:   []string{},
		prefix + configurationServersKeyConstant:            []string{},
		prefix + configurationQueryTimeoutKeyConstant:       defaults.QueryTimeout.String(),
		prefix + configurationPresetsFileKeyConstant:        defaults.PresetsFile,
	}
}

// Sanitize trims configured values, drops empty entries, expands home
// shortcuts, and restores defaults for blank executables and timeouts.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := configuration

	sanitized.Executables.Print = sanitizeExecutable(configuration.Executables.Print, defaults.Executables.Print)
	sanitized.Executables.List = sanitizeExecutable(configuration.Executables.List, defaults.Executables.List)
	sanitized.Executables.Options = sanitizeExecutable(configuration.Executables.Options, defaults.Executables.Options)
	sanitized.DefaultPrinter = strings.TrimSpace(configuration.DefaultPrinter)
	sanitized.DefaultArguments = sanitizeList(configuration.DefaultArguments)
	sanitized.Servers = sanitizeList(configuration.Servers)
	sanitized.PresetsFile = configurationHomeExpander.Expand(strings.TrimSpace(configuration.PresetsFile))
	if sanitized.QueryTimeout <= 0 {
		sanitized.QueryTimeout = defaults.QueryTimeout
	}

	return sanitized
}

// InitialArguments builds the argument list a fresh menu starts from.
func (configuration Configuration) InitialArguments() (Arguments, error) {
	arguments, parseError := ParseArguments(configuration.DefaultArguments)
	if parseError != nil {
		return Arguments{}, parseError
	}
	if _, present := arguments.FlagValue(FlagPrinter); !present && len(configuration.DefaultPrinter) > 0 {
		if setError := arguments.SetFlag(FlagPrinter, configuration.DefaultPrinter); setError != nil {
			return Arguments{}, setError
		}
	}
	return arguments, nil
}

func sanitizeExecutable(candidate string, fallback string) string {
	trimmedCandidate := strings.TrimSpace(candidate)
	if len(trimmedCandidate) == 0 {
		return fallback
	}
	return configurationHomeExpander.Expand(trimmedCandidate)
}

func sanitizeList(candidates []string) []string {
	sanitized := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		trimmedCandidate := strings.TrimSpace(candidate)
		if len(trimmedCandidate) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmedCandidate)
	}
	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}
