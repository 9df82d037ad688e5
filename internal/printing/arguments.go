package printing

import (
	"regexp"
	"strconv"
	"strings"
)

// Single-value lp flags managed by Arguments.
const (
	FlagPrinter    = "-d"
	FlagServer     = "-h"
	FlagPageRanges = "-P"
	FlagCopies     = "-n"
	FlagTitle      = "-t"
)

const (
	flagPrefix              = "-"
	operandLabel            = "operand"
	argumentsJoinSeparator  = " "
	pageRangeListSeparator  = ","
	pageRangeBoundSeparator = "-"
)

var (
	singleValueFlags = map[string]struct{}{
		FlagPrinter:    {},
		FlagServer:     {},
		FlagPageRanges: {},
		FlagCopies:     {},
		FlagTitle:      {},
	}
	pageRangesPattern = regexp.MustCompile(`^\d+(-\d*)?(,\d+(-\d*)?)*$`)
)

// Option is a parsed -o key=value pair. Value is empty for bare options.
type Option struct {
	Key   string
	Value string
}

// Arguments is the flat, ordered lp argument list without file operands.
// Every entry is a flag followed by its value.
type Arguments struct {
	tokens []string
}

// NewArguments returns an empty argument list.
func NewArguments() Arguments {
	return Arguments{}
}

// ParseArguments rebuilds an argument list from raw tokens. Both "-o k=v" and
// the fused "-ok=v" and "-dprinter" forms are accepted. Repeated flags and
// repeated option keys keep the last value at the first position. A separate
// value may start with a dash unless it is itself a flag name.
func ParseArguments(tokens []string) (Arguments, error) {
	arguments := NewArguments()
	for index := 0; index < len(tokens); index++ {
		token := strings.TrimSpace(tokens[index])
		if len(token) == 0 {
			continue
		}
		if !strings.HasPrefix(token, flagPrefix) || len(token) < 2 {
			return Arguments{}, InvalidArgumentError{Flag: operandLabel, Value: token, Cause: ErrUnsupportedFlag}
		}

		flag := token[:2]
		value := token[2:]
		if len(value) == 0 {
			if index+1 >= len(tokens) || isFlagName(strings.TrimSpace(tokens[index+1])) {
				return Arguments{}, InvalidArgumentError{Flag: flag, Cause: ErrDanglingFlag}
			}
			index++
			value = tokens[index]
		}

		var setError error
		if flag == OptionFlag {
			setError = arguments.SetOptionAssignment(value)
		} else {
			setError = arguments.SetFlag(flag, value)
		}
		if setError != nil {
			return Arguments{}, setError
		}
	}
	return arguments, nil
}

// Tokens returns a copy of the argument list.
func (arguments Arguments) Tokens() []string {
	return append([]string{}, arguments.tokens...)
}

// Clone returns an independent copy.
func (arguments Arguments) Clone() Arguments {
	return Arguments{tokens: arguments.Tokens()}
}

// IsEmpty reports whether no flag is set.
func (arguments Arguments) IsEmpty() bool {
	return len(arguments.tokens) == 0
}

// String joins the tokens with spaces.
func (arguments Arguments) String() string {
	return strings.Join(arguments.tokens, argumentsJoinSeparator)
}

// SetOption sets -o key=value, replacing an existing pair for key in place.
// An empty value removes the option.
func (arguments *Arguments) SetOption(key string, value string) error {
	trimmedKey := strings.TrimSpace(key)
	if len(trimmedKey) == 0 || strings.ContainsAny(trimmedKey, optionAssignmentSeparator+" \t") {
		return InvalidArgumentError{Flag: OptionFlag, Value: key, Cause: ErrMalformedOption}
	}
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		arguments.RemoveOption(trimmedKey)
		return nil
	}

	assignment := trimmedKey + optionAssignmentSeparator + trimmedValue
	arguments.replacePair(func(flag string, current string) bool {
		return flag == OptionFlag && optionKey(current) == trimmedKey
	}, OptionFlag, assignment)
	return nil
}

// RemoveOption deletes every -o pair for key and reports whether one existed.
func (arguments *Arguments) RemoveOption(key string) bool {
	trimmedKey := strings.TrimSpace(key)
	return arguments.removePairs(func(flag string, current string) bool {
		return flag == OptionFlag && optionKey(current) == trimmedKey
	})
}

// OptionValue returns the value of -o key=value.
func (arguments Arguments) OptionValue(key string) (string, bool) {
	trimmedKey := strings.TrimSpace(key)
	for _, option := range arguments.Options() {
		if option.Key == trimmedKey {
			return option.Value, true
		}
	}
	return "", false
}

// Options lists the -o pairs in order.
func (arguments Arguments) Options() []Option {
	options := make([]Option, 0, len(arguments.tokens)/2)
	for index := 0; index+1 < len(arguments.tokens); index += 2 {
		if arguments.tokens[index] != OptionFlag {
			continue
		}
		key, value, _ := strings.Cut(arguments.tokens[index+1], optionAssignmentSeparator)
		options = append(options, Option{Key: key, Value: value})
	}
	return options
}

// SetOptionAssignment sets an -o value given either as key=value or as a
// bare boolean option name such as fit-to-page.
func (arguments *Arguments) SetOptionAssignment(assignment string) error {
	trimmedAssignment := strings.TrimSpace(assignment)
	key, value, found := strings.Cut(trimmedAssignment, optionAssignmentSeparator)
	if !found {
		return arguments.setBareOption(trimmedAssignment)
	}
	if len(strings.TrimSpace(value)) == 0 {
		return InvalidArgumentError{Flag: OptionFlag, Value: assignment, Cause: ErrMalformedOption}
	}
	return arguments.SetOption(key, value)
}

// SetFlag sets a single-value flag (-d, -h, -P, -n or -t). An empty value removes it.
// The server pair is always kept first because lp resolves -d against the
// server selected before it.
func (arguments *Arguments) SetFlag(flag string, value string) error {
	if _, supported := singleValueFlags[flag]; !supported {
		return InvalidArgumentError{Flag: flag, Value: value, Cause: ErrUnsupportedFlag}
	}
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		arguments.RemoveFlag(flag)
		return nil
	}
	if flag == FlagServer {
		arguments.RemoveFlag(FlagServer)
		arguments.tokens = append([]string{FlagServer, trimmedValue}, arguments.tokens...)
		return nil
	}
	arguments.replacePair(func(current string, _ string) bool {
		return current == flag
	}, flag, trimmedValue)
	return nil
}

// RemoveFlag deletes a single-value flag and reports whether it was set.
func (arguments *Arguments) RemoveFlag(flag string) bool {
	return arguments.removePairs(func(current string, _ string) bool {
		return current == flag
	})
}

// FlagValue returns the value of a single-value flag.
func (arguments Arguments) FlagValue(flag string) (string, bool) {
	for index := 0; index+1 < len(arguments.tokens); index += 2 {
		if arguments.tokens[index] == flag {
			return arguments.tokens[index+1], true
		}
	}
	return "", false
}

// Merge applies every flag and option of overrides on top of the receiver.
func (arguments *Arguments) Merge(overrides Arguments) {
	for index := 0; index+1 < len(overrides.tokens); index += 2 {
		flag, value := overrides.tokens[index], overrides.tokens[index+1]
		if flag == OptionFlag {
			_ = arguments.SetOptionAssignment(value)
			continue
		}
		_ = arguments.SetFlag(flag, value)
	}
}

// Validate checks values lp would reject: copies must be a positive integer
// and page ranges must be a comma separated list of N, N-M or N- with 1 <= N <= M.
func (arguments Arguments) Validate() error {
	if copies, present := arguments.FlagValue(FlagCopies); present {
		parsedCopies, parseError := strconv.Atoi(copies)
		if parseError != nil || parsedCopies < 1 {
			return InvalidArgumentError{Flag: FlagCopies, Value: copies, Cause: ErrInvalidCopies}
		}
	}
	if pageRanges, present := arguments.FlagValue(FlagPageRanges); present {
		if !validPageRanges(pageRanges) {
			return InvalidArgumentError{Flag: FlagPageRanges, Value: pageRanges, Cause: ErrInvalidPageRanges}
		}
	}
	return nil
}

func (arguments *Arguments) setBareOption(name string) error {
	if len(name) == 0 || strings.ContainsAny(name, " \t") {
		return InvalidArgumentError{Flag: OptionFlag, Value: name, Cause: ErrMalformedOption}
	}
	arguments.replacePair(func(flag string, current string) bool {
		return flag == OptionFlag && optionKey(current) == name
	}, OptionFlag, name)
	return nil
}

func (arguments *Arguments) replacePair(matches func(flag string, value string) bool, flag string, value string) {
	replaced := false
	updated := make([]string, 0, len(arguments.tokens)+2)
	for index := 0; index+1 < len(arguments.tokens); index += 2 {
		currentFlag, currentValue := arguments.tokens[index], arguments.tokens[index+1]
		if matches(currentFlag, currentValue) {
			if replaced {
				continue
			}
			currentFlag, currentValue = flag, value
			replaced = true
		}
		updated = append(updated, currentFlag, currentValue)
	}
	if !replaced {
		updated = append(updated, flag, value)
	}
	arguments.tokens = updated
}

func (arguments *Arguments) removePairs(matches func(flag string, value string) bool) bool {
	removed := false
	remaining := make([]string, 0, len(arguments.tokens))
	for index := 0; index+1 < len(arguments.tokens); index += 2 {
		if matches(arguments.tokens[index], arguments.tokens[index+1]) {
			removed = true
			continue
		}
		remaining = append(remaining, arguments.tokens[index], arguments.tokens[index+1])
	}
	arguments.tokens = remaining
	return removed
}

func isFlagName(token string) bool {
	if token == OptionFlag {
		return true
	}
	_, known := singleValueFlags[token]
	return known
}

func optionKey(assignment string) string {
	key, _, _ := strings.Cut(assignment, optionAssignmentSeparator)
	return key
}

func validPageRanges(pageRanges string) bool {
	if !pageRangesPattern.MatchString(pageRanges) {
		return false
	}
	for _, pageRange := range strings.Split(pageRanges, pageRangeListSeparator) {
		lowerBound, upperBound, hasUpperBound := strings.Cut(pageRange, pageRangeBoundSeparator)
		firstPage, _ := strconv.Atoi(lowerBound)
		if firstPage < 1 {
			return false
		}
		if !hasUpperBound || len(upperBound) == 0 {
			continue
		}
		lastPage, _ := strconv.Atoi(upperBound)
		if lastPage < firstPage {
			return false
		}
	}
	return true
}
