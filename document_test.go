package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentAddUndoRedo(t *testing.T) {
	doc := NewDocument()
	emoji := doc.AddEmoji("😀", 10, -5, 40)
	assert.True(t, doc.Dirty())
	assert.True(t, doc.CanUndo())

	doc.Undo()
	assert.Empty(t, doc.Emojis())
	assert.True(t, doc.CanRedo())

	doc.Redo()
	require.Len(t, doc.Emojis(), 1)
	assert.Equal(t, emoji, doc.Emojis()[0])
}

func TestDocumentRemoveUndoKeepsIdentity(t *testing.T) {
	doc := NewDocument()
	first := doc.AddEmoji("🐶", 0, 0, 40)
	second := doc.AddEmoji("🐱", 8, 0, 40)
	third := doc.AddEmoji("🐭", 16, 0, 40)

	assert.True(t, doc.RemoveEmoji(second.ID))
	assert.False(t, doc.RemoveEmoji(second.ID))
	assert.Len(t, doc.Emojis(), 2)

	doc.Undo()
	assert.Equal(t, []Emoji{first, second, third}, doc.Emojis())

	// the counter was not rolled back by the undo
	fresh := doc.AddEmoji("🐹", 0, 0, 40)
	assert.Greater(t, fresh.ID, third.ID)
}

func TestDocumentUndoAddDoesNotReuseID(t *testing.T) {
	doc := NewDocument()
	emoji := doc.AddEmoji("🐶", 0, 0, 40)
	doc.Undo()

	next := doc.AddEmoji("🐱", 0, 0, 40)
	assert.NotEqual(t, emoji.ID, next.ID)
	assert.False(t, doc.CanRedo())
}

func TestDocumentMoveEmojis(t *testing.T) {
	doc := NewDocument()
	a := doc.AddEmoji("🐶", 0, 0, 40)
	b := doc.AddEmoji("🐱", 8, 16, 40)

	doc.MoveEmojis([]int{a.ID, b.ID, 999}, 8, -16)
	movedA, _ := doc.Emoji(a.ID)
	movedB, _ := doc.Emoji(b.ID)
	assert.Equal(t, 8, movedA.X)
	assert.Equal(t, -16, movedA.Y)
	assert.Equal(t, 16, movedB.X)
	assert.Equal(t, 0, movedB.Y)

	doc.Undo()
	assert.Equal(t, []Emoji{a, b}, doc.Emojis())

	doc.Redo()
	movedA, _ = doc.Emoji(a.ID)
	assert.Equal(t, 8, movedA.X)
}

func TestDocumentMoveUnknownIsNoop(t *testing.T) {
	doc := NewDocument()
	doc.AddEmoji("🐶", 0, 0, 40)
	undoDepth := len(doc.undoStack)

	doc.MoveEmojis([]int{42}, 8, 8)
	doc.MoveEmojis(nil, 8, 8)
	doc.ScaleEmojis([]int{42}, 2)

	assert.Equal(t, undoDepth, len(doc.undoStack))
}

func TestDocumentScaleEmojis(t *testing.T) {
	doc := NewDocument()
	a := doc.AddEmoji("🐶", 0, 0, 40)
	b := doc.AddEmoji("🐱", 0, 0, 20)

	doc.ScaleEmojis([]int{a.ID, b.ID}, 2)
	scaledA, _ := doc.Emoji(a.ID)
	scaledB, _ := doc.Emoji(b.ID)
	assert.Equal(t, 80, scaledA.Size)
	assert.Equal(t, 40, scaledB.Size)

	doc.Undo()
	assert.Equal(t, []Emoji{a, b}, doc.Emojis())
}

func TestDocumentBackgroundUndo(t *testing.T) {
	doc := NewDocument()
	doc.SetBackground(URLBackground("https://example.com/a.png"))
	doc.SetBackground(ImageDataBackground([]byte{1}))

	doc.Undo()
	assert.Equal(t, "https://example.com/a.png", doc.Background().URL())
	doc.Undo()
	assert.Equal(t, BackgroundBlank, doc.Background().Kind)
	doc.Redo()
	assert.Equal(t, BackgroundURL, doc.Background().Kind)
}

func TestDocumentEmojiAtPrefersTopmost(t *testing.T) {
	doc := NewDocument()
	doc.AddEmoji("🐶", 0, 0, 40)
	top := doc.AddEmoji("🐱", 0, 0, 40)

	assert.Equal(t, top.ID, doc.emojiAt(10, 5, 20, 10))
	assert.Equal(t, top.ID, doc.emojiAt(11, 5, 20, 10))
	assert.Equal(t, -1, doc.emojiAt(12, 5, 20, 10))
	assert.Equal(t, -1, doc.emojiAt(10, 4, 20, 10))
}
