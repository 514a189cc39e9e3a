package ui

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiff renders a line-oriented diff of before and after. Unchanged lines
// are prefixed with two spaces, removed lines with "- " and added lines
// with "+ ". Returns "" when both texts are equal.
func LineDiff(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		for _, line := range splitKeepingLast(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				out.WriteString(Added.Render("+ " + line))
			case diffmatchpatch.DiffDelete:
				out.WriteString(Removed.Render("- " + line))
			default:
				out.WriteString(Muted.Render("  " + line))
			}
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// splitKeepingLast splits text into lines without producing an empty
// element for a trailing newline.
func splitKeepingLast(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
