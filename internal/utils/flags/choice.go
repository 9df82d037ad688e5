package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choicePlaceholderTemplate       = "<%s>"
	choiceSeparatorLiteral          = "|"
	choiceUsageEmptyTemplate        = "`%s`"
	choiceUsageFullTemplate         = "`%s` %s"
	choiceFlagTypeName              = "choice"
	choiceUnknownErrorTemplate      = "%q is not one of %s"
	choiceAmbiguousErrorTemplate    = "%q matches more than one of %s"
	choiceListJoinSeparatorConstant = ", "
)

// FormatChoiceUsage renders "`<a|B|c>` description" with the default choice upper-cased.
// Duplicate and blank choices are dropped.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))

	displayed := make([]string, 0, len(choices))
	for _, choice := range uniqueChoices(choices) {
		if len(normalizedDefault) > 0 && strings.ToLower(choice) == normalizedDefault {
			choice = strings.ToUpper(choice)
		}
		displayed = append(displayed, choice)
	}

	placeholder := fmt.Sprintf(choicePlaceholderTemplate, strings.Join(displayed, choiceSeparatorLiteral))
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, trimmedDescription)
}

// AddChoiceFlag registers a string flag that only accepts one of choices.
// Values match case-insensitively, and a unique prefix selects the full choice.
func AddChoiceFlag(flagSet *pflag.FlagSet, target *string, name string, shorthand string, choices []string, description string) {
	if flagSet == nil || target == nil || len(name) == 0 {
		return
	}

	value := &choiceFlagValue{target: target, choices: uniqueChoices(choices)}
	usage := FormatChoiceUsage(*target, choices, description)
	if len(shorthand) > 0 {
		flagSet.VarP(value, name, shorthand, usage)
		return
	}
	flagSet.Var(value, name, usage)
}

type choiceFlagValue struct {
	target  *string
	choices []string
}

func (value *choiceFlagValue) Set(rawValue string) error {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))

	prefixMatches := make([]string, 0, 1)
	for _, choice := range value.choices {
		normalizedChoice := strings.ToLower(choice)
		if normalizedChoice == normalizedValue {
			*value.target = choice
			return nil
		}
		if len(normalizedValue) > 0 && strings.HasPrefix(normalizedChoice, normalizedValue) {
			prefixMatches = append(prefixMatches, choice)
		}
	}

	choiceList := strings.Join(value.choices, choiceListJoinSeparatorConstant)
	switch len(prefixMatches) {
	case 1:
		*value.target = prefixMatches[0]
		return nil
	case 0:
		return fmt.Errorf(choiceUnknownErrorTemplate, rawValue, choiceList)
	default:
		return fmt.Errorf(choiceAmbiguousErrorTemplate, rawValue, choiceList)
	}
}

func (value *choiceFlagValue) String() string {
	if value == nil || value.target == nil {
		return ""
	}
	return *value.target
}

func (value *choiceFlagValue) Type() string {
	return choiceFlagTypeName
}

func uniqueChoices(choices []string) []string {
	unique := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}
		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}
		unique = append(unique, trimmedChoice)
	}
	return unique
}
