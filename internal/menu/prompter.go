package menu

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LinePrompter reads one answer per line from an io.Reader.
type LinePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLinePrompter constructs a prompter from the provided reader and writer.
func NewLinePrompter(input io.Reader, output io.Writer) *LinePrompter {
	if input == nil {
		input = strings.NewReader("")
	}
	if output == nil {
		output = io.Discard
	}
	return &LinePrompter{reader: bufio.NewReader(input), writer: output}
}

// Ask writes the prompt and returns the trimmed answer. io.EOF is returned
// only when the input ended before any answer was typed.
func (prompter *LinePrompter) Ask(prompt string) (string, error) {
	if _, writeError := io.WriteString(prompter.writer, prompt); writeError != nil {
		return "", writeError
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && !errors.Is(readError, io.EOF) {
		return "", readError
	}
	if errors.Is(readError, io.EOF) && len(response) == 0 {
		return "", io.EOF
	}
	return strings.TrimSpace(response), nil
}

// Confirm writes the prompt and interprets affirmative responses (y/yes).
func (prompter *LinePrompter) Confirm(prompt string) (bool, error) {
	response, askError := prompter.Ask(prompt)
	if askError != nil {
		if errors.Is(askError, io.EOF) {
			return false, nil
		}
		return false, askError
	}

	switch strings.ToLower(response) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
