package main

func (d *Document) recordAction(actionType ActionType, data, inverse interface{}) {
	action := Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	}
	d.undoStack = append(d.undoStack, action)
	d.redoStack = d.redoStack[:0]
	d.dirty = true
}

func (d *Document) CanUndo() bool {
	return len(d.undoStack) > 0
}

func (d *Document) CanRedo() bool {
	return len(d.redoStack) > 0
}

func (d *Document) Undo() {
	if len(d.undoStack) == 0 {
		return
	}

	lastIndex := len(d.undoStack) - 1
	action := d.undoStack[lastIndex]
	d.undoStack = d.undoStack[:lastIndex]

	d.apply(action.Type, action.Inverse)

	d.redoStack = append(d.redoStack, action)
	d.dirty = true
}

func (d *Document) Redo() {
	if len(d.redoStack) == 0 {
		return
	}

	lastIndex := len(d.redoStack) - 1
	action := d.redoStack[lastIndex]
	d.redoStack = d.redoStack[:lastIndex]

	d.apply(action.Type, action.Data)

	d.undoStack = append(d.undoStack, action)
	d.dirty = true
}

// apply replays one side of an action. Add and remove are inverses of each
// other, so the payload type decides what happens.
func (d *Document) apply(actionType ActionType, payload interface{}) {
	switch data := payload.(type) {
	case AddEmojiData:
		d.art.restoreEmoji(data.Emoji, data.Index)
	case RemoveEmojiData:
		d.art.RemoveEmoji(data.Emoji.ID)
	case MoveEmojisData:
		for _, id := range data.IDs {
			d.art.MoveEmoji(id, data.DeltaX, data.DeltaY)
		}
	case ScaleEmojisData:
		for _, state := range data.States {
			d.art.SetEmojiSize(state.ID, state.Size)
		}
	case BackgroundData:
		d.applyBackground(data.Background)
	default:
		logger.Warn("unknown undo payload", "type", actionType)
	}
}
