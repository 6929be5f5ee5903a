package rendering

import (
	"encoding/xml"
	"strings"
)

// EscapeXML escapes text for use inside WordprocessingML character data.
// Characters that are not legal in XML are replaced with U+FFFD.
func EscapeXML(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + len(text)/8)
	// strings.Builder never returns a write error
	_ = xml.EscapeText(&result, []byte(text))
	return result.String()
}

// splitLines splits paragraph text into the lines separated by <w:br/>.
// CRLF and CR line endings are treated as LF.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
