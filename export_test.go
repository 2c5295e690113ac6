package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePNGFile(t *testing.T, path string) image.Image {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	img, err := png.Decode(file)
	require.NoError(t, err)
	return img
}

func TestExportToPNG(t *testing.T) {
	doc := NewDocument()
	doc.AddEmoji("😀", 0, 0, 40)
	doc.AddEmoji("A", -40, 20, 24)

	path := filepath.Join(t.TempDir(), "art.png")
	_, err := doc.ExportToPNG(path, 160, 96, "")
	require.NoError(t, err)

	img := decodePNGFile(t, path)
	assert.Equal(t, image.Rect(0, 0, 160, 96), img.Bounds())
}

func withoutSystemEmojiFonts(t *testing.T) {
	t.Helper()
	saved := systemEmojiFonts
	systemEmojiFonts = nil
	t.Cleanup(func() { systemEmojiFonts = saved })
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestExportToPNGDrawsUnderEmojiPosition(t *testing.T) {
	withoutSystemEmojiFonts(t)
	doc := NewDocument()
	doc.AddEmoji("😀", -40, 0, 40)
	doc.AddEmoji("A", 40, 0, 40)

	path := filepath.Join(t.TempDir(), "art.png")
	placeholders, err := doc.ExportToPNG(path, 160, 96, "")
	require.NoError(t, err)
	assert.Equal(t, 1, placeholders)

	img := decodePNGFile(t, path)
	// the placeholder disc is filled
	assert.False(t, isWhite(img.At(40, 48)))

	inked := false
	for y := 32; y < 64 && !inked; y++ {
		for x := 104; x < 136; x++ {
			if !isWhite(img.At(x, y)) {
				inked = true
				break
			}
		}
	}
	assert.True(t, inked, "no ink under the letter")
	assert.True(t, isWhite(img.At(80, 4)))
}

func TestExportCoversEmojiPosition(t *testing.T) {
	doc := NewDocument()
	doc.AddEmoji("😀", 0, 0, 40)

	path := filepath.Join(t.TempDir(), "art.png")
	_, err := doc.ExportToPNG(path, 80, 80, "")
	require.NoError(t, err)
	// whichever way the glyph is drawn, something covers its position
	assert.False(t, isWhite(decodePNGFile(t, path).At(40, 40)))
}

func TestExportToPNGNothingToExport(t *testing.T) {
	doc := NewDocument()
	_, err := doc.ExportToPNG(filepath.Join(t.TempDir(), "empty.png"), 80, 80, "")
	assert.ErrorIs(t, err, errNothingToExport)
}

func TestExportToPNGDrawsBackground(t *testing.T) {
	doc := NewDocument()
	doc.SetBackground(ImageDataBackground(solidPNG(t, color.RGBA{R: 255, A: 255}, 2, 2)))
	doc.ensureBackground()

	path := filepath.Join(t.TempDir(), "bg.png")
	_, err := doc.ExportToPNG(path, 80, 80, "")
	require.NoError(t, err)

	r, g, b, _ := decodePNGFile(t, path).At(40, 40).RGBA()
	assert.Greater(t, r, uint32(0xf000))
	assert.Less(t, g, uint32(0x1000))
	assert.Less(t, b, uint32(0x1000))
}

func TestExportFallsBackFromMissingFont(t *testing.T) {
	f, err := loadOutlineFont(filepath.Join(t.TempDir(), "nope.ttf"))
	require.NoError(t, err)
	assert.NotZero(t, f.Index('A'))
}

func TestFitImageKeepsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.White)
		}
	}
	dst := fitImage(src, 40, 40)
	assert.Equal(t, image.Rect(0, 0, 40, 40), dst.Bounds())

	// letterboxed above and below
	_, _, _, a := dst.At(20, 2).RGBA()
	assert.Equal(t, uint32(0), a)
	_, _, _, a = dst.At(20, 20).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestExportVisualTXT(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a")

	path := filepath.Join(t.TempDir(), "art.txt")
	require.NoError(t, m.exportVisualTXT(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, strings.Repeat(" ", 20)+m.palette[0], lines[5])
	assert.NotContains(t, string(data), "█")
}
