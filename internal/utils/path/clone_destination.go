package pathutils

import (
	"regexp"
	"strings"
)

const (
	destinationSeparatorCutsetConstant     = `/\`
	gitDirectorySuffixConstant             = ".git"
	destinationReplacementLiteralConstant  = "-"
	unsafeDestinationCharacterClassPattern = `[^A-Za-z0-9_.-]`
)

var unsafeDestinationCharacterPattern = regexp.MustCompile(unsafeDestinationCharacterClassPattern)

// CloneDestinationResolver derives local directory names from repository sources.
type CloneDestinationResolver struct{}

// NewCloneDestinationResolver constructs a CloneDestinationResolver.
func NewCloneDestinationResolver() *CloneDestinationResolver {
	return &CloneDestinationResolver{}
}

// Resolve derives a filesystem-safe directory name from the repository source.
// Trailing separators and a .git suffix are stripped before taking the final
// path segment, and characters outside [A-Za-z0-9_.-] are replaced with dashes.
func (resolver *CloneDestinationResolver) Resolve(repositorySource string) string {
	trimmedSource := strings.TrimSpace(repositorySource)
	trimmedSource = strings.TrimRight(trimmedSource, destinationSeparatorCutsetConstant)
	trimmedSource = strings.TrimSuffix(trimmedSource, gitDirectorySuffixConstant)
	trimmedSource = strings.TrimRight(trimmedSource, destinationSeparatorCutsetConstant)

	baseName := trimmedSource
	if separatorIndex := strings.LastIndexAny(trimmedSource, destinationSeparatorCutsetConstant); separatorIndex >= 0 {
		baseName = trimmedSource[separatorIndex+1:]
	}

	return unsafeDestinationCharacterPattern.ReplaceAllString(baseName, destinationReplacementLiteralConstant)
}
