package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	art := NewEmojiArt()
	art.AddEmoji("😀", 10, -5, 40)
	removed := art.AddEmoji("🐶", 0, 0, 20)
	art.AddEmoji("🇯🇵", -100, 64, 80)
	art.AddEmoji("🐝", 1, 1, 2)
	art.RemoveEmoji(removed.ID)
	art.SetBackground(URLBackground("https://example.com/bg.png?size=large,wide"))

	path := filepath.Join(t.TempDir(), "art"+fileExtension)
	require.NoError(t, art.SaveToFile(path, 3, -2))

	loaded, panX, panY, err := LoadEmojiArt(path)
	require.NoError(t, err)
	assert.Equal(t, art.Emojis(), loaded.Emojis())
	assert.Equal(t, art.Background(), loaded.Background())
	assert.Equal(t, 3, panX)
	assert.Equal(t, -2, panY)

	next := loaded.AddEmoji("🎉", 0, 0, 40)
	assert.Greater(t, next.ID, removed.ID)
}

func TestSaveLoadImageDataBackground(t *testing.T) {
	art := NewEmojiArt()
	art.SetBackground(ImageDataBackground([]byte{0x89, 'P', 'N', 'G', 0, 1, 2}))

	path := filepath.Join(t.TempDir(), "bg"+fileExtension)
	require.NoError(t, art.SaveToFile(path, 0, 0))

	loaded, _, _, err := LoadEmojiArt(path)
	require.NoError(t, err)
	assert.Equal(t, BackgroundImageData, loaded.Background().Kind)
	assert.Equal(t, art.Background().ImageData(), loaded.Background().ImageData())
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"wrong header", "FLOWCHART\n"},
		{"unknown background", "EMOJIART\nBACKGROUND:video\nNEXTID:0\nEMOJIS:0\n"},
		{"missing emoji", "EMOJIART\nBACKGROUND:blank\nNEXTID:1\nEMOJIS:1\n"},
		{"bad field", "EMOJIART\nBACKGROUND:blank\nNEXTID:1\nEMOJIS:1\nx,0,0,40,😀\n"},
		{"zero size", "EMOJIART\nBACKGROUND:blank\nNEXTID:1\nEMOJIS:1\n1,0,0,0,😀\n"},
		{"duplicate id", "EMOJIART\nBACKGROUND:blank\nNEXTID:2\nEMOJIS:2\n1,0,0,40,😀\n1,8,8,40,🐶\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+fileExtension)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, _, _, err := LoadEmojiArt(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadRaisesCounterPastStoredIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old"+fileExtension)
	content := "EMOJIART\nBACKGROUND:blank\nNEXTID:0\nEMOJIS:1\n7,0,0,40,😀\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	art, _, _, err := LoadEmojiArt(path)
	require.NoError(t, err)
	assert.Equal(t, 8, art.AddEmoji("🐶", 0, 0, 40).ID)
}
