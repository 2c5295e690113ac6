package main

import "math"

type BackgroundKind int

const (
	BackgroundBlank BackgroundKind = iota
	BackgroundURL
	BackgroundImageData
)

type Background struct {
	Kind BackgroundKind
	url  string
	data []byte
}

func BlankBackground() Background {
	return Background{Kind: BackgroundBlank}
}

func URLBackground(url string) Background {
	return Background{Kind: BackgroundURL, url: url}
}

func ImageDataBackground(data []byte) Background {
	return Background{Kind: BackgroundImageData, data: data}
}

// URL returns the background URL, or "" unless the background is a URL.
func (b Background) URL() string {
	if b.Kind != BackgroundURL {
		return ""
	}
	return b.url
}

// ImageData returns the raw image bytes, or nil unless the background holds image data.
func (b Background) ImageData() []byte {
	if b.Kind != BackgroundImageData {
		return nil
	}
	return b.data
}

func (b Background) String() string {
	switch b.Kind {
	case BackgroundURL:
		return "url"
	case BackgroundImageData:
		return "image"
	default:
		return "blank"
	}
}

type Emoji struct {
	Text string
	X    int // offset from the canvas center
	Y    int // offset from the canvas center
	Size int
	ID   int
}

// EmojiArt is the document model. Slice order is z-order: the last emoji is on top.
type EmojiArt struct {
	background    Background
	emojis        []Emoji
	uniqueEmojiID int
}

func NewEmojiArt() *EmojiArt {
	return &EmojiArt{
		background: BlankBackground(),
		emojis:     make([]Emoji, 0),
	}
}

func (a *EmojiArt) AddEmoji(text string, x, y, size int) Emoji {
	a.uniqueEmojiID++
	emoji := Emoji{
		Text: text,
		X:    x,
		Y:    y,
		Size: size,
		ID:   a.uniqueEmojiID,
	}
	a.emojis = append(a.emojis, emoji)
	return emoji
}

// restoreEmoji puts a previously removed emoji back at index, keeping its id.
func (a *EmojiArt) restoreEmoji(emoji Emoji, index int) {
	if a.IndexOf(emoji.ID) != -1 {
		return
	}
	if emoji.ID > a.uniqueEmojiID {
		a.uniqueEmojiID = emoji.ID
	}
	if index < 0 || index > len(a.emojis) {
		index = len(a.emojis)
	}
	a.emojis = append(a.emojis, Emoji{})
	copy(a.emojis[index+1:], a.emojis[index:])
	a.emojis[index] = emoji
}

func (a *EmojiArt) RemoveEmoji(id int) (Emoji, int, bool) {
	index := a.IndexOf(id)
	if index == -1 {
		return Emoji{}, -1, false
	}
	emoji := a.emojis[index]
	a.emojis = append(a.emojis[:index], a.emojis[index+1:]...)
	return emoji, index, true
}

func (a *EmojiArt) MoveEmoji(id, deltaX, deltaY int) {
	if index := a.IndexOf(id); index != -1 {
		a.emojis[index].X += deltaX
		a.emojis[index].Y += deltaY
	}
}

// ScaleEmoji multiplies the size by scale, clamped to the allowed range.
// A NaN product leaves the size alone.
func (a *EmojiArt) ScaleEmoji(id int, scale float64) {
	index := a.IndexOf(id)
	if index == -1 {
		return
	}
	size := math.Round(float64(a.emojis[index].Size) * scale)
	if math.IsNaN(size) {
		return
	}
	size = math.Max(minEmojiSize, math.Min(maxEmojiSize, size))
	a.emojis[index].Size = int(size)
}

// SetEmojiSize stores size as given.
func (a *EmojiArt) SetEmojiSize(id, size int) {
	if index := a.IndexOf(id); index != -1 {
		a.emojis[index].Size = size
	}
}

func (a *EmojiArt) IndexOf(id int) int {
	for i, emoji := range a.emojis {
		if emoji.ID == id {
			return i
		}
	}
	return -1
}

func (a *EmojiArt) Emoji(id int) (Emoji, bool) {
	index := a.IndexOf(id)
	if index == -1 {
		return Emoji{}, false
	}
	return a.emojis[index], true
}

// Emojis returns a copy of the emojis in z-order.
func (a *EmojiArt) Emojis() []Emoji {
	emojis := make([]Emoji, len(a.emojis))
	copy(emojis, a.emojis)
	return emojis
}

func (a *EmojiArt) Len() int {
	return len(a.emojis)
}

func (a *EmojiArt) Background() Background {
	return a.background
}

func (a *EmojiArt) SetBackground(background Background) {
	a.background = background
}

func clampSize(size int) int {
	if size < minEmojiSize {
		return minEmojiSize
	}
	if size > maxEmojiSize {
		return maxEmojiSize
	}
	return size
}
