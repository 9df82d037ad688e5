package printing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/temirov/lpx/internal/execshell"
)

const (
	optionsPrinterFlagConstant        = "-p"
	optionsListFlagConstant           = "-l"
	optionsServerFlagConstant         = "-h"
	optionsKeyLabelSeparatorConstant  = "/"
	optionsKeyValuesSeparatorConstant = ":"
	optionsDefaultMarkerConstant      = "*"
	discoveryFailureTemplateConstant  = "%w: %v"
)

// DynamicOption is a printer-specific option reported by lpoptions -l.
type DynamicOption struct {
	Key     string
	Label   string
	Values  []string
	Default string
}

// DiscoveryTarget selects the printer and server to query. Empty fields use lpoptions defaults.
type DiscoveryTarget struct {
	Printer string
	Server  string
}

// OptionDiscoverer queries lpoptions for printer-specific options.
type OptionDiscoverer struct {
	executor     OptionsExecutor
	queryTimeout time.Duration
}

// NewOptionDiscoverer constructs an OptionDiscoverer. A non-positive timeout disables the deadline.
func NewOptionDiscoverer(executor OptionsExecutor, queryTimeout time.Duration) (*OptionDiscoverer, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &OptionDiscoverer{executor: executor, queryTimeout: queryTimeout}, nil
}

// Discover runs lpoptions [-h server] [-p printer] -l. A failing command or
// empty listing yields an empty list and an error matching ErrNoOptionsDiscovered.
func (discoverer *OptionDiscoverer) Discover(executionContext context.Context, target DiscoveryTarget) ([]DynamicOption, error) {
	queryContext, cancel := withQueryTimeout(executionContext, discoverer.queryTimeout)
	defer cancel()

	result, executionError := discoverer.executor.ExecutePrinterOptions(queryContext, execshell.CommandDetails{Arguments: buildOptionsArguments(target)})
	if executionError != nil {
		return []DynamicOption{}, fmt.Errorf(discoveryFailureTemplateConstant, ErrNoOptionsDiscovered, executionError)
	}

	options := ParseOptionListing(result.StandardOutput)
	if len(options) == 0 {
		return []DynamicOption{}, ErrNoOptionsDiscovered
	}
	return options, nil
}

// ParseOptionListing parses "Key/Label: v1 *v2 v3" lines. Lines without a
// colon or without values are skipped; a key without "/" doubles as its label.
func ParseOptionListing(output string) []DynamicOption {
	options := []DynamicOption{}
	for _, line := range strings.Split(output, "\n") {
		keyAndLabel, rawValues, found := strings.Cut(line, optionsKeyValuesSeparatorConstant)
		if !found {
			continue
		}

		key, label, hasLabel := strings.Cut(strings.TrimSpace(keyAndLabel), optionsKeyLabelSeparatorConstant)
		key = strings.TrimSpace(key)
		label = strings.TrimSpace(label)
		if len(key) == 0 {
			continue
		}
		if !hasLabel || len(label) == 0 {
			label = key
		}

		option := DynamicOption{Key: key, Label: label, Values: []string{}}
		for _, field := range strings.Fields(rawValues) {
			value := field
			if strings.HasPrefix(field, optionsDefaultMarkerConstant) {
				value = strings.TrimPrefix(field, optionsDefaultMarkerConstant)
				if len(value) > 0 && len(option.Default) == 0 {
					option.Default = value
				}
			}
			if len(value) > 0 {
				option.Values = append(option.Values, value)
			}
		}
		if len(option.Values) == 0 {
			continue
		}
		options = append(options, option)
	}
	return options
}

func buildOptionsArguments(target DiscoveryTarget) []string {
	arguments := []string{}
	if server := strings.TrimSpace(target.Server); len(server) > 0 {
		arguments = append(arguments, optionsServerFlagConstant, server)
	}
	if printer := strings.TrimSpace(target.Printer); len(printer) > 0 {
		arguments = append(arguments, optionsPrinterFlagConstant, printer)
	}
	return append(arguments, optionsListFlagConstant)
}

func withQueryTimeout(executionContext context.Context, queryTimeout time.Duration) (context.Context, context.CancelFunc) {
	if executionContext == nil {
		executionContext = context.Background()
	}
	if queryTimeout <= 0 {
		return context.WithCancel(executionContext)
	}
	return context.WithTimeout(executionContext, queryTimeout)
}
