package main

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (a *EmojiArt) SaveToFile(filename string, panX, panY int) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "EMOJIART\n")
	switch a.background.Kind {
	case BackgroundURL:
		fmt.Fprintf(w, "BACKGROUND:url,%s\n", a.background.URL())
	case BackgroundImageData:
		fmt.Fprintf(w, "BACKGROUND:data,%s\n", base64.StdEncoding.EncodeToString(a.background.ImageData()))
	default:
		fmt.Fprintf(w, "BACKGROUND:blank\n")
	}
	fmt.Fprintf(w, "NEXTID:%d\n", a.uniqueEmojiID)
	fmt.Fprintf(w, "EMOJIS:%d\n", len(a.emojis))
	for _, emoji := range a.emojis {
		fmt.Fprintf(w, "%d,%d,%d,%d,%s\n", emoji.ID, emoji.X, emoji.Y, emoji.Size, emoji.Text)
	}
	fmt.Fprintf(w, "PAN:%d,%d\n", panX, panY)

	if err := w.Flush(); err != nil {
		return err
	}
	return file.Close()
}

// LoadEmojiArt reads a document written by SaveToFile and returns it with the
// saved pan offset.
func LoadEmojiArt(filename string) (*EmojiArt, int, int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, 0, err
	}
	defer file.Close()

	art := NewEmojiArt()
	scanner := bufio.NewScanner(file)
	// base64 backgrounds make for long lines
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	if !scanner.Scan() || scanner.Text() != "EMOJIART" {
		return nil, 0, 0, fmt.Errorf("invalid file format")
	}

	if !scanner.Scan() || !strings.HasPrefix(scanner.Text(), "BACKGROUND:") {
		return nil, 0, 0, fmt.Errorf("missing background header")
	}
	background, err := parseBackground(strings.TrimPrefix(scanner.Text(), "BACKGROUND:"))
	if err != nil {
		return nil, 0, 0, err
	}
	art.background = background

	if !scanner.Scan() || !strings.HasPrefix(scanner.Text(), "NEXTID:") {
		return nil, 0, 0, fmt.Errorf("missing id counter")
	}
	nextID, err := strconv.Atoi(strings.TrimPrefix(scanner.Text(), "NEXTID:"))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("invalid id counter: %w", err)
	}
	art.uniqueEmojiID = nextID

	if !scanner.Scan() || !strings.HasPrefix(scanner.Text(), "EMOJIS:") {
		return nil, 0, 0, fmt.Errorf("missing emojis header")
	}
	count, err := strconv.Atoi(strings.TrimPrefix(scanner.Text(), "EMOJIS:"))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("invalid emoji count: %w", err)
	}

	seen := make(map[int]bool, count)
	for i := 0; i < count; i++ {
		if !scanner.Scan() {
			return nil, 0, 0, fmt.Errorf("missing emoji data")
		}
		emoji, err := parseEmoji(scanner.Text())
		if err != nil {
			return nil, 0, 0, fmt.Errorf("emoji %d: %w", i+1, err)
		}
		if seen[emoji.ID] {
			return nil, 0, 0, fmt.Errorf("duplicate emoji id %d", emoji.ID)
		}
		seen[emoji.ID] = true
		art.restoreEmoji(emoji, len(art.emojis))
	}

	panX, panY := 0, 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "PAN:") {
			parts := strings.Split(strings.TrimPrefix(line, "PAN:"), ",")
			if len(parts) >= 2 {
				panX, _ = strconv.Atoi(parts[0])
				panY, _ = strconv.Atoi(parts[1])
			}
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, 0, err
	}

	return art, panX, panY, nil
}

func parseBackground(value string) (Background, error) {
	kind, payload, _ := strings.Cut(value, ",")
	switch kind {
	case "blank":
		return BlankBackground(), nil
	case "url":
		return URLBackground(payload), nil
	case "data":
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return Background{}, fmt.Errorf("invalid background data: %w", err)
		}
		return ImageDataBackground(data), nil
	default:
		return Background{}, fmt.Errorf("unknown background kind %q", kind)
	}
}

func parseEmoji(line string) (Emoji, error) {
	parts := strings.SplitN(line, ",", 5)
	if len(parts) != 5 {
		return Emoji{}, fmt.Errorf("invalid emoji format")
	}
	var fields [4]int
	for i := range fields {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return Emoji{}, fmt.Errorf("invalid emoji field: %w", err)
		}
		fields[i] = n
	}
	if parts[4] == "" {
		return Emoji{}, fmt.Errorf("empty emoji text")
	}
	if fields[3] < 1 {
		return Emoji{}, fmt.Errorf("invalid emoji size %d", fields[3])
	}
	return Emoji{
		ID:   fields[0],
		X:    fields[1],
		Y:    fields[2],
		Size: fields[3],
		Text: parts[4],
	}, nil
}
