package core

import (
	"os"
	"path/filepath"
	"strings"
)

// Span is a byte range [Start, End) of a document's text.
// End never includes the newline that terminates the last line.
type Span struct {
	Start int
	End   int
}

// textLine is one line of a document. end excludes the '\n'.
type textLine struct {
	start int
	end   int
	text  string
}

func splitLines(text string) []textLine {
	var out []textLine
	start := 0
	for {
		idx := strings.IndexByte(text[start:], '\n')
		if idx < 0 {
			out = append(out, textLine{start: start, end: len(text), text: text[start:]})
			return out
		}
		end := start + idx
		out = append(out, textLine{start: start, end: end, text: text[start:end]})
		start = end + 1
	}
}

// prefixEachLine prepends prefix to every line of s.
// A trailing newline in s is dropped.
func prefixEachLine(s, prefix string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// relSlash returns target relative to base in forward-slash form.
func relSlash(base, target string) (string, error) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// fileExists checks if a file exists at the given path.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// pathExists reports whether anything (file or directory) exists at path.
func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
