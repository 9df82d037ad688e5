package flags

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue   = "true"
	toggleFalseCanonicalValue  = "false"
	toggleFlagTypeName         = "bool"
	toggleParseErrorTemplate   = "invalid toggle value %q"
	toggleTruePlaceholder      = "<YES|no>"
	toggleFalsePlaceholder     = "<yes|NO>"
	toggleUsageTemplate        = "`%s` %s"
	toggleBareUsageTemplate    = "`%s`"
	longFlagPrefix             = "--"
	shortFlagPrefix            = "-"
	flagValueSeparator         = "="
	argumentsTerminatorLiteral = "--"
)

var toggleLiterals = map[string]bool{
	"true":  true, "yes": true, "on": true, "1": true, "t": true, "y": true,
	"false": false, "no": false, "off": false, "0": false, "f": false, "n": false,
}

type toggleRegistry struct {
	mutex      sync.RWMutex
	names      map[string]struct{}
	shorthands map[string]struct{}
}

var registeredToggles = &toggleRegistry{
	names:      map[string]struct{}{},
	shorthands: map[string]struct{}{},
}

func (registry *toggleRegistry) register(name string, shorthand string) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	registry.names[name] = struct{}{}
	if len(shorthand) > 0 {
		registry.shorthands[shorthand] = struct{}{}
	}
}

func (registry *toggleRegistry) isToggle(argument string) bool {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()

	switch {
	case strings.HasPrefix(argument, longFlagPrefix):
		_, exists := registry.names[strings.TrimPrefix(argument, longFlagPrefix)]
		return exists
	case strings.HasPrefix(argument, shortFlagPrefix):
		_, exists := registry.shorthands[strings.TrimPrefix(argument, shortFlagPrefix)]
		return exists
	default:
		return false
	}
}

// AddToggleFlag registers a boolean flag that also accepts yes/no, on/off and 1/0,
// either as "--flag=value" or, after NormalizeToggleArguments, "--flag value".
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	if target != nil {
		*target = defaultValue
	}
	value := &toggleFlagValue{current: defaultValue, target: target}

	registeredFlag := flagSet.VarPF(value, name, shorthand, formatToggleUsage(usage, defaultValue))
	registeredFlag.NoOptDefVal = toggleTrueCanonicalValue

	registeredToggles.register(name, shorthand)
}

// NormalizeToggleArguments joins a registered toggle flag with a following
// toggle literal ("--interactive no" becomes "--interactive=no") so pflag does
// not treat the literal as a positional argument. Everything after "--" is kept as is.
func NormalizeToggleArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == argumentsTerminatorLiteral {
			return append(normalized, arguments[index:]...)
		}

		if index+1 < len(arguments) && !strings.Contains(current, flagValueSeparator) && registeredToggles.isToggle(current) {
			if _, isLiteral := toggleLiterals[strings.ToLower(strings.TrimSpace(arguments[index+1]))]; isLiteral {
				normalized = append(normalized, current+flagValueSeparator+arguments[index+1])
				index++
				continue
			}
		}

		normalized = append(normalized, current)
	}
	return normalized
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleFalsePlaceholder
	if defaultValue {
		placeholder = toggleTruePlaceholder
	}
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(toggleBareUsageTemplate, placeholder)
	}
	return fmt.Sprintf(toggleUsageTemplate, placeholder, trimmedDescription)
}

type toggleFlagValue struct {
	current bool
	target  *bool
}

func (value *toggleFlagValue) Set(rawValue string) error {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		normalizedValue = toggleTrueCanonicalValue
	}

	parsedValue, recognized := toggleLiterals[normalizedValue]
	if !recognized {
		return fmt.Errorf(toggleParseErrorTemplate, rawValue)
	}

	value.current = parsedValue
	if value.target != nil {
		*value.target = parsedValue
	}
	return nil
}

func (value *toggleFlagValue) String() string {
	if value != nil && value.current {
		return toggleTrueCanonicalValue
	}
	return toggleFalseCanonicalValue
}

func (value *toggleFlagValue) Type() string {
	return toggleFlagTypeName
}
