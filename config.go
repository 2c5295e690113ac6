package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
)

type Config struct {
	SaveDirectory string
	StartMenu     bool
	Confirmations bool
	Palette       string
	DefaultSize   int
	EmojiFont     string
	CanvasColor   string
	LogLevel      string
	LogFile       string
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		StartMenu:     true,
		Confirmations: true,
		Palette:       defaultPalette,
		DefaultSize:   defaultEmojiSize,
		CanvasColor:   "#ffd60a",
		LogLevel:      "info",
	}
}

func loadConfig() *Config {
	path, err := homedir.Expand("~/.emojiartrc")
	if err != nil {
		return defaultConfig()
	}
	return loadConfigFrom(path)
}

func loadConfigFrom(configPath string) *Config {
	config := defaultConfig()

	file, err := os.Open(configPath)
	if err != nil {
		return config
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value)
		case "startmenu", "start_menu":
			config.StartMenu = strings.ToLower(value) == "true"
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "palette":
			if len(splitEmojis(value)) > 0 {
				config.Palette = value
			}
		case "defaultsize", "default_size", "size":
			if size, err := strconv.Atoi(value); err == nil && size > 0 {
				config.DefaultSize = clampSize(size)
			}
		case "emojifont", "emoji_font", "font":
			config.EmojiFont = expandPath(value)
		case "canvascolor", "canvas_color":
			config.CanvasColor = value
		case "loglevel", "log_level":
			if _, err := ResolveLogLevel(strings.ToLower(value)); err == nil {
				config.LogLevel = strings.ToLower(value)
			}
		case "logfile", "log_file":
			config.LogFile = expandPath(value)
		}
	}

	return config
}

func expandPath(value string) string {
	if expanded, err := homedir.Expand(value); err == nil {
		value = expanded
	}
	if value != "" && !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// GetSavePath places filename in the save directory, creating it if needed.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.SaveDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		logger.Warn("cannot create save directory", "dir", c.SaveDirectory, "error", err)
		return "", fmt.Errorf("save directory: %w", err)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}
