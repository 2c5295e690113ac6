package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config := loadConfigFrom(filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, defaultConfig(), config)
	assert.True(t, config.Confirmations)
	assert.Equal(t, defaultEmojiSize, config.DefaultSize)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	saveDir := filepath.Join(dir, "art")
	path := filepath.Join(dir, ".emojiartrc")
	content := "# emojiart settings\n" +
		"savedir = " + saveDir + "\n" +
		"confirmations = false\n" +
		"start_menu = false\n" +
		"palette = 🐶 🐱 🐭\n" +
		"defaultsize = 64\n" +
		"canvascolor = #ffffff\n" +
		"loglevel = DEBUG\n" +
		"not a setting\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config := loadConfigFrom(path)
	assert.Equal(t, saveDir, config.SaveDirectory)
	assert.False(t, config.Confirmations)
	assert.False(t, config.StartMenu)
	assert.Equal(t, []string{"🐶", "🐱", "🐭"}, splitEmojis(config.Palette))
	assert.Equal(t, 64, config.DefaultSize)
	assert.Equal(t, "#ffffff", config.CanvasColor)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfigIgnoresInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".emojiartrc")
	content := "palette = abc\ndefaultsize = -3\nloglevel = loud\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config := loadConfigFrom(path)
	assert.Equal(t, defaultPalette, config.Palette)
	assert.Equal(t, defaultEmojiSize, config.DefaultSize)
	assert.Equal(t, "info", config.LogLevel)
}

func TestGetSavePath(t *testing.T) {
	config := defaultConfig()
	path, err := config.GetSavePath("a.emojiart")
	require.NoError(t, err)
	assert.Equal(t, "a.emojiart", path)

	config.SaveDirectory = filepath.Join(t.TempDir(), "nested")
	path, err = config.GetSavePath("a.emojiart")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(config.SaveDirectory, "a.emojiart"), path)
	assert.DirExists(t, config.SaveDirectory)
}

func TestGetSavePathDirectoryError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	config := defaultConfig()
	config.SaveDirectory = filepath.Join(file, "nested")
	_, err := config.GetSavePath("a.emojiart")
	assert.Error(t, err)
}

func TestResolveLogLevel(t *testing.T) {
	_, err := ResolveLogLevel("verbose")
	assert.Error(t, err)
	level, err := ResolveLogLevel("warn")
	assert.NoError(t, err)
	assert.Equal(t, "WARN", level.String())
}
