package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmoji(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"face", "😀", true},
		{"sun with variation selector", "☀️", true},
		{"keycap", "1️⃣", true},
		{"flag", "🇯🇵", true},
		{"zwj family", "👨‍👩‍👧", true},
		{"skin tone", "👍🏽", true},
		{"plain digit", "1", false},
		{"letter", "a", false},
		{"copyright alone", "©", false},
		{"copyright with variation selector", "©️", true},
		{"watch", "⌚", true},
		{"blood type", "🅰️", true},
		{"mahjong dragon", "🀄", true},
		{"text presentation", "☀︎", false},
		{"ballot box", "☐", false},
		{"scissors glyph", "✁", false},
		{"digit zero full stop", "🄀", false},
		{"lightning glyph", "☇", false},
		{"mahjong wind", "🀀", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isEmoji(tt.input))
		})
	}
}

func TestDecodeDrop(t *testing.T) {
	emoji, ok := decodeDrop("😀")
	assert.True(t, ok)
	assert.Equal(t, "😀", emoji)

	// only the first character counts
	emoji, ok = decodeDrop("🎉 party")
	assert.True(t, ok)
	assert.Equal(t, "🎉", emoji)

	emoji, ok = decodeDrop("  👨‍👩‍👧\n")
	assert.True(t, ok)
	assert.Equal(t, "👨‍👩‍👧", emoji)

	_, ok = decodeDrop("🀀x")
	assert.False(t, ok)
	_, ok = decodeDrop("hello 😀")
	assert.False(t, ok)
	_, ok = decodeDrop("")
	assert.False(t, ok)
}

func TestDecodeDropHTML(t *testing.T) {
	emoji, ok := decodeDrop(`<span style="font-size:20px">🐶</span>`)
	assert.True(t, ok)
	assert.Equal(t, "🐶", emoji)
}

func TestDecodeDropRTF(t *testing.T) {
	emoji, ok := decodeDrop(`{\rtf1\ansi\f0 🐶}`)
	assert.True(t, ok)
	assert.Equal(t, "🐶", emoji)

	_, ok = decodeDrop(`{\rtf1\ansi hello}`)
	assert.False(t, ok)
}

func TestSplitEmojis(t *testing.T) {
	assert.Equal(t, []string{"🏀", "🏈", "⚾️"}, splitEmojis("🏀 🏈 x ⚾️"))
	assert.Equal(t, []string{"☀️", "🃏"}, splitEmojis("☐☀️✁🃏☇"))
	assert.Empty(t, splitEmojis("abc"))
	assert.NotEmpty(t, splitEmojis(defaultPalette))
}

func TestGlyphWidth(t *testing.T) {
	assert.Equal(t, 2, glyphWidth("😀"))
	assert.Equal(t, 2, glyphWidth("☀️"))
	assert.Equal(t, 1, glyphWidth("a"))
	assert.Equal(t, 1, glyphWidth(""))
}
