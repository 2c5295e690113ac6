package main

type Mode int

const (
	ModeStartup Mode = iota
	ModeNormal
	ModeDragging
	ModeTextInput
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpSaveVisualTXT
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmDeleteEmoji ConfirmAction = iota
	ConfirmDeleteSelection
	ConfirmQuit
	ConfirmNewDocument
	ConfirmCloseBuffer
	ConfirmOverwriteFile
)

type ActionType int

const (
	ActionAddEmoji ActionType = iota
	ActionRemoveEmoji
	ActionMoveEmojis
	ActionScaleEmojis
	ActionSetBackground
)

const (
	// canvas units per terminal cell
	cellWidth  = 8
	cellHeight = 16

	defaultEmojiSize = 40
	minEmojiSize     = 4
	maxEmojiSize     = 1024
	scaleStep        = 1.25

	fileExtension  = ".emojiart"
	defaultPalette = "😖👻☀️⚽️🏀🏈⚾️🥎🎾🏐🏉🥏🎱🪀🏓🏸🏒🏑🥍🏏🪃🥅⛳️🪁🏹🎣🤿🥊🥋🎽🛹🛼🛷⛸🥌🎿⛷🏂🪂"
)
