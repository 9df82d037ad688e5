package pathutils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const (
	missingFileTemplateConstant      = "file %s does not exist"
	directoryOperandTemplateConstant = "%s is a directory"
	statFailureTemplateConstant      = "unable to inspect %s: %v"
	currentDirectoryPrefixConstant   = "./"
	optionPrefixConstant             = "-"
)

// ErrFileOperandInvalid is matched by every FileOperandError.
var ErrFileOperandInvalid = errors.New("invalid file operand")

// FileOperandError reports a file that cannot be handed to the print command.
type FileOperandError struct {
	Path    string
	Message string
}

// Error implements error.
func (operandError FileOperandError) Error() string {
	return operandError.Message
}

// Is allows errors.Is(err, ErrFileOperandInvalid).
func (operandError FileOperandError) Is(target error) bool {
	return target == ErrFileOperandInvalid
}

// StatFunc matches os.Stat.
type StatFunc func(path string) (fs.FileInfo, error)

// FileOperandResolver turns user supplied file names into paths that are safe
// to pass as positional arguments.
type FileOperandResolver struct {
	homeExpander *HomeExpander
	stat         StatFunc
}

// NewFileOperandResolver constructs a resolver. Nil collaborators fall back to
// a default HomeExpander and os.Stat.
func NewFileOperandResolver(homeExpander *HomeExpander, stat StatFunc) *FileOperandResolver {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	if stat == nil {
		stat = os.Stat
	}
	return &FileOperandResolver{homeExpander: homeExpander, stat: stat}
}

// Resolve trims blanks, expands home shortcuts, and verifies that each file
// exists and is not a directory. Names starting with "-" are prefixed with "./"
// so they cannot be mistaken for options.
func (resolver *FileOperandResolver) Resolve(candidatePaths []string) ([]string, error) {
	resolvedPaths := make([]string, 0, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		trimmedPath := strings.TrimSpace(candidatePath)
		if len(trimmedPath) == 0 {
			continue
		}

		expandedPath := resolver.homeExpander.Expand(trimmedPath)
		fileInfo, statError := resolver.stat(expandedPath)
		switch {
		case errors.Is(statError, fs.ErrNotExist):
			return nil, FileOperandError{Path: expandedPath, Message: fmt.Sprintf(missingFileTemplateConstant, expandedPath)}
		case statError != nil:
			return nil, FileOperandError{Path: expandedPath, Message: fmt.Sprintf(statFailureTemplateConstant, expandedPath, statError)}
		case fileInfo.IsDir():
			return nil, FileOperandError{Path: expandedPath, Message: fmt.Sprintf(directoryOperandTemplateConstant, expandedPath)}
		}

		if strings.HasPrefix(expandedPath, optionPrefixConstant) {
			expandedPath = currentDirectoryPrefixConstant + expandedPath
		}
		resolvedPaths = append(resolvedPaths, expandedPath)
	}
	return resolvedPaths, nil
}
