package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTitleContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "plain text unchanged",
			content: "Vacation Plans for Italy",
			want:    "Vacation Plans for Italy",
		},
		{
			name:    "strips urls",
			content: "Check https://example.com/page for details",
			want:    "Check for details",
		},
		{
			name:    "unwraps markdown links",
			content: "[Trip Ideas](https://example.com)",
			want:    "Trip Ideas",
		},
		{
			name:    "removes markup characters",
			content: "**Bold** `code` <b>tag</b>",
			want:    "Bold code btagb",
		},
		{
			name:    "collapses whitespace and trailing punctuation",
			content: "  Hello   World!!  ",
			want:    "Hello World",
		},
		{
			name:    "empty input",
			content: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeTitleContent(tt.content))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "hello", TruncateRunes("hello", 40))
	assert.Equal(t, "he", TruncateRunes("hello", 2))
	assert.Equal(t, "héllö", TruncateRunes("héllö", 5))
	assert.Equal(t, "", TruncateRunes("", 10))
}
