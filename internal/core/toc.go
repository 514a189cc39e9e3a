package core

// FindTOC locates the first TOC block of a document: an unindented list item
// linking to a .md file, extended through every following line up to a blank
// line, a top-level heading or the end of the text. Only the first block is
// used even if the document contains more.
func FindTOC(text string) (Span, bool) {
	lines := splitLines(text)
	for i, ln := range lines {
		if !isTOCStart(ln.text) {
			continue
		}
		end := ln.end
		for _, next := range lines[i+1:] {
			if isBlank(next.text) || isHeading(next.text) {
				break
			}
			end = next.end
		}
		return Span{Start: ln.start, End: end}, true
	}
	return Span{}, false
}
