package core

import (
	"regexp"
	"strings"
)

var (
	headingLineRe    = regexp.MustCompile(`(?m)^#`)
	bulletRe         = regexp.MustCompile(`(?m)^-   `)
	orderedRe        = regexp.MustCompile(`(?m)^(\d)\.  `)
	subheadingRe     = regexp.MustCompile(`(?m)^## `)
	timeMarkerLineRe = regexp.MustCompile(`(?m)^t(?:\d{6}|\d{4}|\d{2}|~)(?: \S+)?$`)
)

// ReformatOneNote converts a note exported from OneNote through Obsidian's
// importer into a regular Obsidian note. Images are not supported.
func ReformatOneNote(content string) string {
	// Newlines: the export doubles every line break.
	content = strings.ReplaceAll(content, "\n\n", "\n")
	content = headingLineRe.ReplaceAllString(content, "\n#")

	// Lists
	content = bulletRe.ReplaceAllString(content, "- ")
	content = orderedRe.ReplaceAllString(content, "$1. ")

	// A note without subsections uses its headings one level too deep.
	if !subheadingRe.MatchString(content) {
		content = headingLineRe.ReplaceAllString(content, "")
	}

	// Time markers become comments.
	return timeMarkerLineRe.ReplaceAllString(content, "\n<!--$0-->")
}
