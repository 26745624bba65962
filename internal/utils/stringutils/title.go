package stringutils

import (
	"regexp"
	"strings"
	"unicode"
)

// Pre-compiled regex patterns for better performance
var (
	urlPattern          = regexp.MustCompile(`(?i)(https?://|ftp://|www\.)[^\s]+`)
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
	multiSpacePattern   = regexp.MustCompile(`\s+`)
)

// SanitizeTitleContent strips URLs, markdown links, and stray markup so a
// model-generated title is safe to show verbatim in the sidebar.
func SanitizeTitleContent(content string) string {
	content = urlPattern.ReplaceAllString(content, "")
	content = markdownLinkPattern.ReplaceAllString(content, "$1")

	// Keep unicode letters/numbers and basic punctuation only.
	var result strings.Builder
	for _, r := range content {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) ||
			r == '.' || r == ',' || r == '!' || r == '?' || r == '-' || r == '\'' {
			result.WriteRune(r)
		}
	}
	content = result.String()

	content = multiSpacePattern.ReplaceAllString(content, " ")
	content = strings.TrimSpace(content)
	content = strings.TrimRight(content, " .,!?-'")

	return content
}

// TruncateRunes cuts s to at most maxLen runes.
func TruncateRunes(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
