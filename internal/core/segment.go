package core

import "golang.org/x/text/unicode/norm"

// Segment is one list item linking to a child document plus every following
// line indented deeper than the item.
type Segment struct {
	Span
	// Indent is the item's leading whitespace. Replacement content is
	// re-indented with it.
	Indent string
}

// FindSegment finds the list item whose link target equals the encoded
// childPath. Targets are compared after NFC normalisation so that documents
// written on systems with decomposed file names still match.
// Returns false when the document has no such item yet.
func FindSegment(text, childPath string) (Segment, bool) {
	key := norm.NFC.String(EncodePath(childPath))
	lines := splitLines(text)
	for i, ln := range lines {
		ll, ok := parseListLink(ln.text)
		if !ok || norm.NFC.String(ll.target) != key {
			continue
		}
		end := ln.end
		for _, next := range lines[i+1:] {
			if !isDeeper(next.text, ll.indent) {
				break
			}
			end = next.end
		}
		return Segment{Span: Span{Start: ln.start, End: end}, Indent: ll.indent}, true
	}
	return Segment{}, false
}
