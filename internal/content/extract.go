package content

import (
	"regexp"
	"strings"
)

// DefaultMaxTextLength bounds the text embedded in the model prompt.
const DefaultMaxTextLength = 3000

var (
	scriptPattern     = regexp.MustCompile(`(?is)<script[\s\S]*?</script>`)
	stylePattern      = regexp.MustCompile(`(?is)<style[\s\S]*?</style>`)
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	// RE2 \s is ASCII only; this also covers \v, Unicode space separators and BOM.
	whitespacePattern = regexp.MustCompile(`[\s\x{0B}\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
)

// ExtractText strips HTML down to readable text: script and style blocks are
// dropped, remaining tags become spaces, whitespace runs collapse and the
// result is cut to maxLen characters.
func ExtractText(html string, maxLen int) string {
	if html == "" {
		return ""
	}
	text := scriptPattern.ReplaceAllString(html, "")
	text = stylePattern.ReplaceAllString(text, "")
	text = tagPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return limitText(strings.TrimSpace(text), maxLen)
}

func limitText(text string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxTextLength
	}
	if len(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen])
}
