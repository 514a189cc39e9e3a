package core

import "strings"

// listLink is a list item line whose content starts with a Markdown link:
// <indent><marker> +[<text>](<target>)<rest>
type listLink struct {
	indent string
	text   string
	target string
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isHeading matches top-level headings only; "## x" does not end a block.
func isHeading(s string) bool {
	return strings.HasPrefix(s, "# ")
}

func isListMarker(b byte) bool {
	return b == '-' || b == '*'
}

// parseListLink recognises a list item introducing a link. Link text and
// target must be non-empty; the target may not contain ')'.
func parseListLink(s string) (listLink, bool) {
	indent := leadingWhitespace(s)
	rest := s[len(indent):]
	if rest == "" || !isListMarker(rest[0]) {
		return listLink{}, false
	}
	rest = rest[1:]
	trimmed := strings.TrimLeft(rest, " ")
	if len(trimmed) == len(rest) || !strings.HasPrefix(trimmed, "[") {
		return listLink{}, false
	}
	rest = trimmed[1:]
	closeText := strings.IndexByte(rest, ']')
	if closeText <= 0 || !strings.HasPrefix(rest[closeText:], "](") {
		return listLink{}, false
	}
	text := rest[:closeText]
	rest = rest[closeText+2:]
	closeTarget := strings.IndexByte(rest, ')')
	if closeTarget <= 0 {
		return listLink{}, false
	}
	return listLink{indent: indent, text: text, target: rest[:closeTarget]}, true
}

// isTOCStart matches an unindented list item linking to a Markdown file.
func isTOCStart(s string) bool {
	ll, ok := parseListLink(s)
	return ok && ll.indent == "" && strings.HasSuffix(ll.target, ".md")
}

// isDeeper reports whether s is indented strictly deeper than indent,
// i.e. it starts with indent followed by at least one more space or tab.
func isDeeper(s, indent string) bool {
	if len(s) <= len(indent) || !strings.HasPrefix(s, indent) {
		return false
	}
	c := s[len(indent)]
	return c == ' ' || c == '\t'
}
