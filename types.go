package main

import "image"

type Document struct {
	art       *EmojiArt
	undoStack []Action
	redoStack []Action
	filename  string
	dirty     bool
	panX      int
	panY      int

	// decoded form of the current background, nil until loaded
	backgroundImage image.Image
	backgroundColor string
	loadingURL      string
}

type dragState struct {
	ids          []int
	pressedID    int
	startX       int
	startY       int
	offsetX      int
	offsetY      int
	fromPalette  bool
	paletteEmoji string
}

type model struct {
	width              int
	height             int
	cursorX            int
	cursorY            int
	zPanMode           bool
	buffers            []*Document
	currentBufferIndex int
	mode               Mode
	help               bool
	helpScroll         int
	selected           map[int]bool
	drag               *dragState
	palette            []string
	paletteIndex       int
	inputText          string
	inputCursorPos     int
	filename           string
	fileList           []string
	selectedFileIndex  int
	fileOp             FileOperation
	openInNewBuffer    bool
	confirmAction      ConfirmAction
	confirmEmojiID     int
	errorMessage       string
	successMessage     string
	fromStartup        bool
	config             *Config
	readClipboard      func() (string, error)
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

type AddEmojiData struct {
	Emoji Emoji
	Index int
}

type RemoveEmojiData struct {
	Emoji Emoji
	Index int
}

type MoveEmojisData struct {
	IDs    []int
	DeltaX int
	DeltaY int
}

type OriginalEmojiState struct {
	ID   int
	X    int
	Y    int
	Size int
}

type ScaleEmojisData struct {
	States []OriginalEmojiState
}

type BackgroundData struct {
	Background Background
}
