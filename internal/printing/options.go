package printing

import (
	"fmt"
	"strings"
)

const (
	// OptionFlag introduces a job option for lp.
	OptionFlag = "-o"

	optionAssignmentSeparator = "="

	// Group names.
	GroupOrientation = "orientation"
	GroupQuality     = "quality"
	GroupSides       = "sides"
	GroupMedia       = "media"
	GroupNumberUp    = "number-up"

	// Option keys understood by lp.
	OptionKeyOrientation = "orientation-requested"
	OptionKeyQuality     = "print-quality"
	OptionKeySides       = "sides"
	OptionKeyMedia       = "media"
	OptionKeyNumberUp    = "number-up"

	unknownChoiceTemplateConstant   = "%w: %q is not a %s choice"
	ambiguousChoiceTemplateConstant = "%w: %q matches %s"
	choiceListSeparatorConstant     = ", "
)

// Choice is one selectable value of an option group.
type Choice struct {
	Key   string
	Label string
	Value string
}

// Fragment returns the lp arguments selecting this choice.
func (choice Choice) Fragment() []string {
	return []string{OptionFlag, choice.Key + optionAssignmentSeparator + choice.Value}
}

// Group is a static enumeration of choices for a single lp option key.
type Group struct {
	Name    string
	MenuKey string
	Title   string
	Key     string
	Choices []Choice
}

var optionGroups = []Group{
	newGroup(GroupOrientation, "o", "Orientation", OptionKeyOrientation,
		"portrait", "3", "landscape", "4", "reverse-landscape", "5", "reverse-portrait", "6"),
	newGroup(GroupQuality, "l", "Quality", OptionKeyQuality,
		"draft", "3", "normal", "4", "high", "5"),
	newGroup(GroupSides, "s", "Sides", OptionKeySides,
		"one-sided", "one-sided", "two-sided-long-edge", "two-sided-long-edge", "two-sided-short-edge", "two-sided-short-edge"),
	newGroup(GroupMedia, "m", "Paper size", OptionKeyMedia,
		"a4", "a4", "a3", "a3", "a5", "a5", "letter", "letter", "legal", "legal", "tabloid", "tabloid"),
	newGroup(GroupNumberUp, "u", "Pages per sheet", OptionKeyNumberUp,
		"1", "1", "2", "2", "4", "4", "6", "6", "9", "9", "16", "16"),
}

func newGroup(name string, menuKey string, title string, key string, labelValuePairs ...string) Group {
	choices := make([]Choice, 0, len(labelValuePairs)/2)
	for index := 0; index+1 < len(labelValuePairs); index += 2 {
		choices = append(choices, Choice{Key: key, Label: labelValuePairs[index], Value: labelValuePairs[index+1]})
	}
	return Group{Name: name, MenuKey: menuKey, Title: title, Key: key, Choices: choices}
}

// OptionGroups returns the static option groups in menu order.
func OptionGroups() []Group {
	groups := make([]Group, 0, len(optionGroups))
	for _, group := range optionGroups {
		group.Choices = append([]Choice{}, group.Choices...)
		groups = append(groups, group)
	}
	return groups
}

// LookupGroup finds a group by name, option key or menu key, ignoring case.
func LookupGroup(name string) (Group, bool) {
	normalizedName := strings.ToLower(strings.TrimSpace(name))
	if len(normalizedName) == 0 {
		return Group{}, false
	}
	for _, group := range OptionGroups() {
		if group.Name == normalizedName || group.Key == normalizedName || group.MenuKey == normalizedName {
			return group, true
		}
	}
	return Group{}, false
}

// Labels lists the choice labels in order.
func (group Group) Labels() []string {
	labels := make([]string, 0, len(group.Choices))
	for _, choice := range group.Choices {
		labels = append(labels, choice.Label)
	}
	return labels
}

// Choose resolves a choice by exact label, exact value, or a unique
// case-insensitive label prefix, in that order.
func (group Group) Choose(labelOrValue string) (Choice, error) {
	normalizedInput := strings.ToLower(strings.TrimSpace(labelOrValue))
	if len(normalizedInput) == 0 {
		return Choice{}, fmt.Errorf(unknownChoiceTemplateConstant, ErrUnknownChoice, labelOrValue, group.Name)
	}

	for _, choice := range group.Choices {
		if strings.ToLower(choice.Label) == normalizedInput {
			return choice, nil
		}
	}
	for _, choice := range group.Choices {
		if strings.ToLower(choice.Value) == normalizedInput {
			return choice, nil
		}
	}

	prefixMatches := make([]Choice, 0, 1)
	for _, choice := range group.Choices {
		if strings.HasPrefix(strings.ToLower(choice.Label), normalizedInput) {
			prefixMatches = append(prefixMatches, choice)
		}
	}
	switch len(prefixMatches) {
	case 1:
		return prefixMatches[0], nil
	case 0:
		return Choice{}, fmt.Errorf(unknownChoiceTemplateConstant, ErrUnknownChoice, labelOrValue, group.Name)
	default:
		matchedLabels := make([]string, 0, len(prefixMatches))
		for _, match := range prefixMatches {
			matchedLabels = append(matchedLabels, match.Label)
		}
		return Choice{}, fmt.Errorf(ambiguousChoiceTemplateConstant, ErrAmbiguousChoice, labelOrValue, strings.Join(matchedLabels, choiceListSeparatorConstant))
	}
}

// Current reports the choice selected for this group in arguments. The
// returned Choice has an empty Label when the value is not one of the group's
// choices.
func (group Group) Current(arguments Arguments) (Choice, bool) {
	value, present := arguments.OptionValue(group.Key)
	if !present {
		return Choice{}, false
	}
	for _, choice := range group.Choices {
		if choice.Value == value {
			return choice, true
		}
	}
	return Choice{Key: group.Key, Value: value}, true
}
