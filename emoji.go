package main

import (
	"strings"
	"unicode"

	"github.com/gogpu/gg/text/emoji"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// emojiBlocks are the symbol blocks that emoji.Segment treats as emoji
// wholesale even though only some of their code points carry the Emoji
// property.
var emojiBlocks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x27bf, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1f000, Hi: 0x1f0ff, Stride: 1},
	},
}

// blockEmoji lists the code points of emojiBlocks that are emoji.
var blockEmoji = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x2604, Stride: 1},
		{Lo: 0x260e, Hi: 0x2611, Stride: 3},
		{Lo: 0x2614, Hi: 0x2615, Stride: 1},
		{Lo: 0x2618, Hi: 0x261d, Stride: 5},
		{Lo: 0x2620, Hi: 0x2620, Stride: 1},
		{Lo: 0x2622, Hi: 0x2623, Stride: 1},
		{Lo: 0x2626, Hi: 0x262a, Stride: 4},
		{Lo: 0x262e, Hi: 0x262f, Stride: 1},
		{Lo: 0x2638, Hi: 0x263a, Stride: 1},
		{Lo: 0x2640, Hi: 0x2642, Stride: 2},
		{Lo: 0x2648, Hi: 0x2653, Stride: 1},
		{Lo: 0x265f, Hi: 0x2660, Stride: 1},
		{Lo: 0x2663, Hi: 0x2663, Stride: 1},
		{Lo: 0x2665, Hi: 0x2666, Stride: 1},
		{Lo: 0x2668, Hi: 0x2668, Stride: 1},
		{Lo: 0x267b, Hi: 0x267b, Stride: 1},
		{Lo: 0x267e, Hi: 0x267f, Stride: 1},
		{Lo: 0x2692, Hi: 0x2697, Stride: 1},
		{Lo: 0x2699, Hi: 0x2699, Stride: 1},
		{Lo: 0x269b, Hi: 0x269c, Stride: 1},
		{Lo: 0x26a0, Hi: 0x26a1, Stride: 1},
		{Lo: 0x26a7, Hi: 0x26a7, Stride: 1},
		{Lo: 0x26aa, Hi: 0x26ab, Stride: 1},
		{Lo: 0x26b0, Hi: 0x26b1, Stride: 1},
		{Lo: 0x26bd, Hi: 0x26be, Stride: 1},
		{Lo: 0x26c4, Hi: 0x26c5, Stride: 1},
		{Lo: 0x26c8, Hi: 0x26c8, Stride: 1},
		{Lo: 0x26ce, Hi: 0x26cf, Stride: 1},
		{Lo: 0x26d1, Hi: 0x26d1, Stride: 1},
		{Lo: 0x26d3, Hi: 0x26d4, Stride: 1},
		{Lo: 0x26e9, Hi: 0x26ea, Stride: 1},
		{Lo: 0x26f0, Hi: 0x26f5, Stride: 1},
		{Lo: 0x26f7, Hi: 0x26fa, Stride: 1},
		{Lo: 0x26fd, Hi: 0x26fd, Stride: 1},
		{Lo: 0x2702, Hi: 0x2705, Stride: 3},
		{Lo: 0x2708, Hi: 0x270d, Stride: 1},
		{Lo: 0x270f, Hi: 0x270f, Stride: 1},
		{Lo: 0x2712, Hi: 0x2716, Stride: 2},
		{Lo: 0x271d, Hi: 0x2721, Stride: 4},
		{Lo: 0x2728, Hi: 0x2728, Stride: 1},
		{Lo: 0x2733, Hi: 0x2734, Stride: 1},
		{Lo: 0x2744, Hi: 0x2747, Stride: 3},
		{Lo: 0x274c, Hi: 0x274e, Stride: 2},
		{Lo: 0x2753, Hi: 0x2755, Stride: 1},
		{Lo: 0x2757, Hi: 0x2757, Stride: 1},
		{Lo: 0x2763, Hi: 0x2764, Stride: 1},
		{Lo: 0x2795, Hi: 0x2797, Stride: 1},
		{Lo: 0x27a1, Hi: 0x27a1, Stride: 1},
		{Lo: 0x27b0, Hi: 0x27bf, Stride: 15},
	},
	R32: []unicode.Range32{
		{Lo: 0x1f004, Hi: 0x1f004, Stride: 1},
		{Lo: 0x1f0cf, Hi: 0x1f0cf, Stride: 1},
	},
}

// extraEmoji are emoji that emoji.Segment does not know about.
var extraEmoji = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x231a, Hi: 0x231b, Stride: 1},
		{Lo: 0x2328, Hi: 0x2328, Stride: 1},
		{Lo: 0x23cf, Hi: 0x23cf, Stride: 1},
		{Lo: 0x25aa, Hi: 0x25ab, Stride: 1},
		{Lo: 0x25b6, Hi: 0x25c0, Stride: 10},
		{Lo: 0x25fb, Hi: 0x25fe, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1f170, Hi: 0x1f171, Stride: 1},
		{Lo: 0x1f17e, Hi: 0x1f17f, Stride: 1},
		{Lo: 0x1f18e, Hi: 0x1f18e, Stride: 1},
		{Lo: 0x1f191, Hi: 0x1f19a, Stride: 1},
		{Lo: 0x1f201, Hi: 0x1f202, Stride: 1},
		{Lo: 0x1f21a, Hi: 0x1f22f, Stride: 21},
		{Lo: 0x1f232, Hi: 0x1f23a, Stride: 1},
		{Lo: 0x1f250, Hi: 0x1f251, Stride: 1},
	},
}

// isEmoji reports whether the grapheme cluster is an emoji character.
// Code points below U+238D that default to text, such as digits, '#', '©'
// and the arrows, only count when they start a keycap or carry a variation
// selector.
func isEmoji(cluster string) bool {
	if cluster == "" {
		return false
	}
	runes := []rune(cluster)
	base := runes[0]
	if strings.ContainsRune(cluster, '\ufe0e') {
		return false
	}
	if unicode.Is(extraEmoji, base) {
		return true
	}
	if base < 0x238d && len(runes) == 1 {
		return false
	}
	runs := emoji.Segment(cluster)
	if len(runs) == 0 || !runs[0].IsEmoji {
		return false
	}
	if unicode.Is(emojiBlocks, base) {
		return unicode.Is(blockEmoji, base)
	}
	return true
}

// firstGrapheme returns the first user-perceived character of text.
func firstGrapheme(text string) string {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text, -1)
	return cluster
}

// decodeDrop interprets dropped text as an emoji. Only the first character
// counts; anything that is not an emoji is rejected.
func decodeDrop(text string) (string, bool) {
	text = strings.TrimSpace(cleanClipboardText(text))
	glyph := firstGrapheme(text)
	if !isEmoji(glyph) {
		return "", false
	}
	return glyph, true
}

// splitEmojis breaks a palette string into its emoji characters, skipping
// whitespace and anything else.
func splitEmojis(text string) []string {
	var glyphs []string
	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		if isEmoji(cluster) {
			glyphs = append(glyphs, cluster)
		}
	}
	return glyphs
}

// glyphWidth is the number of terminal cells a glyph occupies.
func glyphWidth(text string) int {
	w := runewidth.StringWidth(text)
	if w < 1 {
		return 1
	}
	// emoji presentation sequences render double width
	if w == 1 && strings.ContainsRune(text, '\ufe0f') {
		return 2
	}
	return w
}
