package main

// NewDocument wraps an empty EmojiArt model.
func NewDocument() *Document {
	return newDocumentWith(NewEmojiArt(), "")
}

func newDocumentWith(art *EmojiArt, filename string) *Document {
	return &Document{
		art:       art,
		undoStack: []Action{},
		redoStack: []Action{},
		filename:  filename,
	}
}

func (d *Document) Emojis() []Emoji {
	return d.art.Emojis()
}

func (d *Document) Emoji(id int) (Emoji, bool) {
	return d.art.Emoji(id)
}

func (d *Document) Background() Background {
	return d.art.Background()
}

func (d *Document) Dirty() bool {
	return d.dirty
}

func (d *Document) AddEmoji(text string, x, y, size int) Emoji {
	emoji := d.art.AddEmoji(text, x, y, size)
	data := AddEmojiData{Emoji: emoji, Index: d.art.Len() - 1}
	d.recordAction(ActionAddEmoji, data, RemoveEmojiData(data))
	logger.Debug("emoji added", "id", emoji.ID, "text", emoji.Text, "x", x, "y", y, "size", emoji.Size)
	return emoji
}

// RemoveEmoji deletes the emoji with the given id. It reports whether an
// emoji was removed; unknown ids leave the document untouched.
func (d *Document) RemoveEmoji(id int) bool {
	emoji, index, ok := d.art.RemoveEmoji(id)
	if !ok {
		return false
	}
	data := RemoveEmojiData{Emoji: emoji, Index: index}
	d.recordAction(ActionRemoveEmoji, data, AddEmojiData(data))
	logger.Debug("emoji removed", "id", id)
	return true
}

// MoveEmojis translates every listed emoji as one undoable step.
func (d *Document) MoveEmojis(ids []int, deltaX, deltaY int) {
	if deltaX == 0 && deltaY == 0 {
		return
	}
	moved := d.existing(ids)
	if len(moved) == 0 {
		return
	}
	for _, id := range moved {
		d.art.MoveEmoji(id, deltaX, deltaY)
	}
	data := MoveEmojisData{IDs: moved, DeltaX: deltaX, DeltaY: deltaY}
	inverse := MoveEmojisData{IDs: moved, DeltaX: -deltaX, DeltaY: -deltaY}
	d.recordAction(ActionMoveEmojis, data, inverse)
}

// ScaleEmojis multiplies the size of every listed emoji as one undoable step.
func (d *Document) ScaleEmojis(ids []int, scale float64) {
	var before, after []OriginalEmojiState
	for _, id := range d.existing(ids) {
		old, _ := d.art.Emoji(id)
		d.art.ScaleEmoji(id, scale)
		scaled, _ := d.art.Emoji(id)
		if old.Size == scaled.Size {
			continue
		}
		before = append(before, OriginalEmojiState{ID: id, X: old.X, Y: old.Y, Size: old.Size})
		after = append(after, OriginalEmojiState{ID: id, X: scaled.X, Y: scaled.Y, Size: scaled.Size})
	}
	if len(after) == 0 {
		return
	}
	d.recordAction(ActionScaleEmojis, ScaleEmojisData{States: after}, ScaleEmojisData{States: before})
}

func (d *Document) SetBackground(background Background) {
	old := d.art.Background()
	d.applyBackground(background)
	d.recordAction(ActionSetBackground, BackgroundData{Background: background}, BackgroundData{Background: old})
	logger.Info("background changed", "kind", background.String(), "url", background.URL())
}

func (d *Document) applyBackground(background Background) {
	d.art.SetBackground(background)
	d.backgroundImage = nil
	d.backgroundColor = ""
	d.loadingURL = ""
}

func (d *Document) existing(ids []int) []int {
	var found []int
	for _, id := range ids {
		if d.art.IndexOf(id) != -1 {
			found = append(found, id)
		}
	}
	return found
}

// emojiAt returns the id of the topmost emoji drawn over canvas cell (col,row)
// for a canvas area of the given size, or -1.
func (d *Document) emojiAt(col, row, width, height int) int {
	emojis := d.art.emojis
	for i := len(emojis) - 1; i >= 0; i-- {
		x, y := canvasToScreen(emojis[i].X, emojis[i].Y, width, height, d.panX, d.panY)
		if row == y && col >= x && col < x+glyphWidth(emojis[i].Text) {
			return emojis[i].ID
		}
	}
	return -1
}
