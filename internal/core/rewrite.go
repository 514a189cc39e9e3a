package core

import (
	"os"
	"strings"

	"github.com/ryotapoi/mdtoc/internal/atomicfile"
)

// RewriteLinks prepends the encoded prefix to every link target in text.
// A link target is the text between "](" and the next ")" on the same line;
// empty targets are left alone.
func RewriteLinks(text, prefix string) string {
	encoded := EncodePath(prefix)
	var out strings.Builder
	for {
		idx := strings.Index(text, "](")
		if idx < 0 {
			break
		}
		rest := text[idx+2:]
		closeIdx := strings.IndexAny(rest, ")\n")
		if closeIdx <= 0 || rest[closeIdx] != ')' {
			out.WriteString(text[:idx+2])
			text = rest
			continue
		}
		out.WriteString(text[:idx+2])
		out.WriteString(encoded)
		out.WriteString(rest[:closeIdx+1])
		text = rest[closeIdx+1:]
	}
	out.WriteString(text)
	return out.String()
}

// readDocument reads a whole document. CRLF line endings are folded to LF.
func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

// writeDocument overwrites a document in one step, keeping its permission bits.
func writeDocument(path, content string) error {
	return atomicfile.WriteFile(path, []byte(content), 0)
}
