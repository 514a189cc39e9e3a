package core

import "strings"

// Reserved characters: !#$&'()*+,/:;=?@[] %
// Legal in Windows file names: !#$&'()+,;=@[] %
// Escaping required by editors that follow links: # %
//
// The replacer runs in a single pass, so the "%25" it emits is never
// escaped again.
var pathEscaper = strings.NewReplacer(
	"%", "%25",
	" ", "%20",
	"#", "%23",
	`\`, "/",
)

// EncodePath turns a file path into a Markdown link target.
// Backslashes become forward slashes so the result is stable across platforms.
func EncodePath(path string) string {
	return pathEscaper.Replace(path)
}
