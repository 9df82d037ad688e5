package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	homeShortcutConstant        = "~"
	homeShortcutSlashConstant   = "~/"
	homeDirectoryUnresolvedPath = ""
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander rewrites "~" and "~/..." paths against the user's home directory.
// The home directory is looked up once, on first use.
type HomeExpander struct {
	provider HomeDirectoryProvider

	lookupOnce    sync.Once
	homeDirectory string
}

// NewHomeExpander constructs a HomeExpander using os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(nil)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{provider: provider}
}

// Expand resolves a leading home shortcut. Paths such as "~user/file" are
// returned unchanged, as is everything when the home directory is unknown.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, homeShortcutConstant) {
		return candidatePath
	}

	homeDirectory := expander.lookupHomeDirectory()
	if homeDirectory == homeDirectoryUnresolvedPath {
		return candidatePath
	}

	switch {
	case candidatePath == homeShortcutConstant:
		return homeDirectory
	case strings.HasPrefix(candidatePath, homeShortcutSlashConstant):
		return filepath.Join(homeDirectory, candidatePath[len(homeShortcutSlashConstant):])
	case strings.HasPrefix(candidatePath, homeShortcutConstant+string(os.PathSeparator)):
		return filepath.Join(homeDirectory, candidatePath[len(homeShortcutConstant)+1:])
	default:
		return candidatePath
	}
}

// ExpandAll expands every path in order.
func (expander *HomeExpander) ExpandAll(candidatePaths []string) []string {
	expandedPaths := make([]string, 0, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		expandedPaths = append(expandedPaths, expander.Expand(candidatePath))
	}
	return expandedPaths
}

func (expander *HomeExpander) lookupHomeDirectory() string {
	expander.lookupOnce.Do(func() {
		homeDirectory, lookupError := expander.provider()
		if lookupError != nil {
			return
		}
		expander.homeDirectory = strings.TrimSpace(homeDirectory)
	})
	return expander.homeDirectory
}
