package util

import (
	"regexp"
	"strings"
)

var (
	unsafeChars    = regexp.MustCompile(`[^a-zA-Z0-9-_.]`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// SanitizeFilename strips path separators and anything else unsafe for a
// filesystem or object-store key component. Disallowed runs collapse to a
// single underscore.
func SanitizeFilename(filename string) string {
	sanitized := unsafeChars.ReplaceAllString(filename, "_")
	sanitized = underscoreRuns.ReplaceAllString(sanitized, "_")
	return strings.Trim(sanitized, "_")
}
