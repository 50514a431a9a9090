package assistant

import "regexp"

// Assistant replies embed file-search citation markers of the form
// 【<number>:<number>†<source>】 which mean nothing to chat clients.
var citationPattern = regexp.MustCompile(`【\d+:\d+†.*?】`)

// StripCitations removes every citation marker from the concatenated
// reply. Applied after stream concatenation so markers split across
// fragments are still caught.
func StripCitations(s string) string {
	return citationPattern.ReplaceAllString(s, "")
}
