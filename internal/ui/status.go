package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const (
	carriageReturnConstant    = "\r"
	clearLineSequenceConstant = "\x1b[K"
	newlineConstant           = "\n"
)

// StatusReporter displays short-lived progress messages followed by a final outcome.
type StatusReporter interface {
	// Progress shows a message that the next Progress or Done call replaces.
	Progress(message string)
	// Done replaces any pending progress message with a permanent one.
	Done(message string)
}

// WriterStatusReporter writes status messages to a stream. In transient mode
// progress messages are drawn on a single line that is cleared when replaced.
type WriterStatusReporter struct {
	writer    io.Writer
	transient bool

	mutex          sync.Mutex
	pendingMessage bool
}

// NewWriterStatusReporter constructs a WriterStatusReporter. A nil writer discards output.
func NewWriterStatusReporter(writer io.Writer, transient bool) *WriterStatusReporter {
	if writer == nil {
		writer = io.Discard
	}
	return &WriterStatusReporter{writer: writer, transient: transient}
}

// Progress implements StatusReporter.
func (reporter *WriterStatusReporter) Progress(message string) {
	if reporter == nil {
		return
	}
	trimmedMessage := strings.TrimSpace(message)
	if len(trimmedMessage) == 0 {
		return
	}

	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()

	if !reporter.transient {
		fmt.Fprint(reporter.writer, trimmedMessage+newlineConstant)
		return
	}
	fmt.Fprint(reporter.writer, carriageReturnConstant+clearLineSequenceConstant+trimmedMessage)
	reporter.pendingMessage = true
}

// Done implements StatusReporter.
func (reporter *WriterStatusReporter) Done(message string) {
	if reporter == nil {
		return
	}
	trimmedMessage := strings.TrimSpace(message)

	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()

	prefix := ""
	if reporter.pendingMessage {
		prefix = carriageReturnConstant + clearLineSequenceConstant
		reporter.pendingMessage = false
	}
	if len(trimmedMessage) == 0 {
		fmt.Fprint(reporter.writer, prefix)
		return
	}
	fmt.Fprint(reporter.writer, prefix+trimmedMessage+newlineConstant)
}

// LoggerStatusReporter forwards status messages to a zap logger: progress at
// debug level and outcomes at info level.
type LoggerStatusReporter struct {
	logger *zap.Logger
}

// NewLoggerStatusReporter constructs a LoggerStatusReporter.
func NewLoggerStatusReporter(logger *zap.Logger) *LoggerStatusReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggerStatusReporter{logger: logger}
}

// Progress implements StatusReporter.
func (reporter *LoggerStatusReporter) Progress(message string) {
	if reporter == nil || len(strings.TrimSpace(message)) == 0 {
		return
	}
	reporter.logger.Debug(strings.TrimSpace(message))
}

// Done implements StatusReporter.
func (reporter *LoggerStatusReporter) Done(message string) {
	if reporter == nil || len(strings.TrimSpace(message)) == 0 {
		return
	}
	reporter.logger.Info(strings.TrimSpace(message))
}

type noopStatusReporter struct{}

func (noopStatusReporter) Progress(string) {}

func (noopStatusReporter) Done(string) {}

// NewNoopStatusReporter returns a reporter that discards every message.
func NewNoopStatusReporter() StatusReporter {
	return noopStatusReporter{}
}
