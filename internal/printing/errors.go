package printing

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownChoice indicates a value that matches no choice of an option group.
	ErrUnknownChoice = errors.New("unknown choice")
	// ErrAmbiguousChoice indicates a prefix that matches several choices.
	ErrAmbiguousChoice = errors.New("ambiguous choice")
	// ErrUnsupportedFlag indicates an lp flag the argument list does not manage.
	ErrUnsupportedFlag = errors.New("unsupported flag")
	// ErrDanglingFlag indicates a flag at the end of a token list without its value.
	ErrDanglingFlag = errors.New("flag is missing its value")
	// ErrMalformedOption indicates an -o value that is neither key=value nor a bare option name.
	ErrMalformedOption = errors.New("option must be key=value or a bare option name")
	// ErrInvalidCopies indicates a copy count that is not a positive integer.
	ErrInvalidCopies = errors.New("copies must be a positive integer")
	// ErrInvalidPageRanges indicates a page range list lp would reject.
	ErrInvalidPageRanges = errors.New("page ranges must look like 1,3-5,8-")
	// ErrNoOptionsDiscovered indicates lpoptions failed or reported nothing.
	ErrNoOptionsDiscovered = errors.New("no printer options discovered")
	// ErrNoDestinations indicates lpstat failed or reported nothing.
	ErrNoDestinations = errors.New("no destinations discovered")
	// ErrNothingToPrint indicates a request with neither files nor a buffer.
	ErrNothingToPrint = errors.New("nothing to print: no files selected and no buffer provided")
	// ErrExecutorNotConfigured indicates a component constructed without a command executor.
	ErrExecutorNotConfigured = errors.New("printing command executor not configured")
	// ErrPresetNotFound indicates an unknown preset name.
	ErrPresetNotFound = errors.New("preset not found")
	// ErrInvalidPreset indicates a malformed preset definition.
	ErrInvalidPreset = errors.New("invalid preset")
)

const invalidArgumentTemplateConstant = "%s %q: %v"

// InvalidArgumentError reports a flag value rejected by validation or parsing.
type InvalidArgumentError struct {
	Flag  string
	Value string
	Cause error
}

// Error implements error.
func (argumentError InvalidArgumentError) Error() string {
	return fmt.Sprintf(invalidArgumentTemplateConstant, argumentError.Flag, argumentError.Value, argumentError.Cause)
}

// Unwrap exposes the sentinel cause.
func (argumentError InvalidArgumentError) Unwrap() error {
	return argumentError.Cause
}
