package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const tildePrefixConstant = "~"

// HomeDirectoryProvider resolves the current user's home directory.
type HomeDirectoryProvider func() (string, error)

// HomeExpander rewrites tilde-prefixed paths against the user's home
// directory. The home lookup runs once and is reused across calls.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	lookupOnce            sync.Once
	cachedHomeDirectory   string
	cachedLookupError     error
}

// NewHomeExpander constructs a HomeExpander backed by os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom home lookup.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand resolves a leading tilde to the home directory. Paths without the
// prefix, and any path when the home lookup fails, come back unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, tildePrefixConstant) {
		return candidatePath
	}

	homeDirectory := expander.homeDirectory()
	if len(homeDirectory) == 0 {
		return candidatePath
	}

	if candidatePath == tildePrefixConstant {
		return homeDirectory
	}

	for _, separator := range []string{"/", string(os.PathSeparator)} {
		tildePrefix := tildePrefixConstant + separator
		if strings.HasPrefix(candidatePath, tildePrefix) {
			return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, tildePrefix))
		}
	}

	return candidatePath
}

func (expander *HomeExpander) homeDirectory() string {
	expander.lookupOnce.Do(func() {
		expander.cachedHomeDirectory, expander.cachedLookupError = expander.homeDirectoryProvider()
	})
	if expander.cachedLookupError != nil {
		return ""
	}
	return expander.cachedHomeDirectory
}
