package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		visibleHeight := max(1, m.height-1)
		if m.helpScroll < max(0, len(helpLines)-visibleHeight) {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}

func (m model) handleStartupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.buffers[0] = NewDocument()
		m.currentBufferIndex = 0
		m.mode = ModeNormal
		m.cursorX, m.cursorY = m.canvasCenter()
		m.errorMessage = ""
	case "o":
		m.mode = ModeFileInput
		m.fileOp = FileOpOpen
		m.filename = ""
		m.errorMessage = ""
		m.fromStartup = true
		m.openInNewBuffer = false
		m.scanDocumentFiles()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) canvasCenter() (int, int) {
	width, height := m.canvasSize()
	return width / 2, height / 2
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	doc := m.getCurrentBuffer()
	if msg.Type == tea.KeyEscape {
		m.zPanMode = false
		m.clearSelection()
		m.errorMessage = ""
		m.successMessage = ""
		return m, nil
	}

	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m.confirmOrRun(ConfirmQuit)
	case "?":
		m.help = true
		m.helpScroll = 0
	case "h", "left", "l", "right", "k", "up", "j", "down":
		m.handleNavigation(key, 1)
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		if m.zPanMode {
			m.handleNavigation(key, m.getMoveSpeed(key))
		} else {
			m.handleSelectionMove(key)
		}
	case "z":
		m.zPanMode = !m.zPanMode
	case " ", "enter":
		m.zPanMode = false
		m.toggleSelection(m.emojiUnderCursor())
	case "[":
		if len(m.palette) > 0 {
			m.paletteIndex = (m.paletteIndex - 1 + len(m.palette)) % len(m.palette)
		}
	case "]":
		if len(m.palette) > 0 {
			m.paletteIndex = (m.paletteIndex + 1) % len(m.palette)
		}
	case "a":
		m.zPanMode = false
		if len(m.palette) > 0 {
			x, y := m.cursorCanvasCoords()
			m.dropAt(m.palette[m.paletteIndex], x, y)
		}
	case "p", "ctrl+v":
		m.zPanMode = false
		text, err := m.readClipboard()
		if err != nil {
			m.errorMessage = fmt.Sprintf("clipboard: %v", err)
			return m, nil
		}
		x, y := m.cursorCanvasCoords()
		m.dropAt(text, x, y)
	case "+", "=":
		m.scaleSelection(scaleStep)
	case "-":
		m.scaleSelection(1 / scaleStep)
	case "d":
		m.zPanMode = false
		if id := m.emojiUnderCursor(); id != -1 {
			m.confirmEmojiID = id
			return m.confirmOrRun(ConfirmDeleteEmoji)
		}
	case "D":
		if len(m.selectedIDs()) > 0 {
			return m.confirmOrRun(ConfirmDeleteSelection)
		}
	case "u":
		if !doc.CanUndo() {
			m.successMessage = "Nothing to undo"
			return m, nil
		}
		doc.Undo()
		m.successMessage = ""
		return m, doc.ensureBackground()
	case "U":
		if !doc.CanRedo() {
			m.successMessage = "Nothing to redo"
			return m, nil
		}
		doc.Redo()
		m.successMessage = ""
		return m, doc.ensureBackground()
	case "b":
		m.zPanMode = false
		m.mode = ModeTextInput
		m.inputText = doc.Background().URL()
		m.inputCursorPos = len([]rune(m.inputText))
	case "B":
		if doc.Background().Kind != BackgroundBlank {
			doc.SetBackground(BlankBackground())
		}
	case "s":
		m.startFileInput(FileOpSave)
		if doc.filename != "" {
			m.filename = strings.TrimSuffix(filepath.Base(doc.filename), fileExtension)
		}
	case "S":
		m.startFileInput(FileOpSavePNG)
	case "T":
		m.startFileInput(FileOpSaveVisualTXT)
	case "o", "O":
		m.startFileInput(FileOpOpen)
		m.openInNewBuffer = key == "O"
		m.scanDocumentFiles()
	case "n":
		return m.confirmOrRun(ConfirmNewDocument)
	case "N":
		m.addNewBuffer(NewDocument())
		m.cursorX, m.cursorY = m.canvasCenter()
		m.errorMessage = ""
		m.successMessage = ""
	case "{":
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex - 1 + len(m.buffers)) % len(m.buffers)
			m.clearSelection()
		}
	case "}":
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex + 1) % len(m.buffers)
			m.clearSelection()
		}
	case "x":
		return m.confirmOrRun(ConfirmCloseBuffer)
	}
	return m, nil
}

func (m *model) startFileInput(op FileOperation) {
	m.zPanMode = false
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = ""
	m.errorMessage = ""
	m.successMessage = ""
	m.fromStartup = false
}

// dropAt adds text as a new emoji at canvas coordinates (x,y) when it
// decodes to one; other text is ignored.
func (m *model) dropAt(text string, x, y int) bool {
	emoji, ok := decodeDrop(text)
	if !ok {
		logger.Debug("drop ignored", "text", text)
		m.successMessage = "Nothing to drop"
		return false
	}
	m.getCurrentBuffer().AddEmoji(emoji, x, y, m.config.DefaultSize)
	m.successMessage = ""
	m.errorMessage = ""
	return true
}

func (m *model) scaleSelection(scale float64) {
	ids := m.selectedIDs()
	if len(ids) == 0 {
		return
	}
	m.getCurrentBuffer().ScaleEmojis(ids, scale)
}

func (m model) confirmOrRun(action ConfirmAction) (tea.Model, tea.Cmd) {
	if !m.config.Confirmations {
		return m.performConfirm(action)
	}
	m.mode = ModeConfirm
	m.confirmAction = action
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m.performConfirm(m.confirmAction)
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.confirmEmojiID = -1
	}
	return m, nil
}

func (m model) performConfirm(action ConfirmAction) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	doc := m.getCurrentBuffer()
	switch action {
	case ConfirmDeleteEmoji:
		doc.RemoveEmoji(m.confirmEmojiID)
		delete(m.selected, m.confirmEmojiID)
		m.confirmEmojiID = -1
	case ConfirmDeleteSelection:
		for _, id := range m.selectedIDs() {
			doc.RemoveEmoji(id)
		}
		m.clearSelection()
	case ConfirmQuit:
		return m, tea.Quit
	case ConfirmNewDocument:
		m.buffers[m.currentBufferIndex] = NewDocument()
		m.clearSelection()
		m.cursorX, m.cursorY = m.canvasCenter()
	case ConfirmCloseBuffer:
		m.buffers = append(m.buffers[:m.currentBufferIndex], m.buffers[m.currentBufferIndex+1:]...)
		if len(m.buffers) == 0 {
			m.buffers = []*Document{NewDocument()}
		}
		if m.currentBufferIndex >= len(m.buffers) {
			m.currentBufferIndex = len(m.buffers) - 1
		}
		m.clearSelection()
	case ConfirmOverwriteFile:
		path, err := m.config.GetSavePath(withExtension(m.filename, fileExtension))
		if err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.saveDocument(path)
	}
	return m, nil
}

func (m model) handleTextInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	runes := []rune(m.inputText)
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.inputText = ""
		return m, nil
	case tea.KeyEnter:
		m.mode = ModeNormal
		background, err := readBackgroundSource(m.inputText)
		m.inputText = ""
		if err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		doc := m.getCurrentBuffer()
		doc.SetBackground(background)
		m.errorMessage = ""
		return m, doc.ensureBackground()
	case tea.KeyBackspace:
		if m.inputCursorPos > 0 {
			runes = append(runes[:m.inputCursorPos-1], runes[m.inputCursorPos:]...)
			m.inputCursorPos--
		}
	case tea.KeyLeft:
		if m.inputCursorPos > 0 {
			m.inputCursorPos--
		}
	case tea.KeyRight:
		if m.inputCursorPos < len(runes) {
			m.inputCursorPos++
		}
	case tea.KeyCtrlV:
		text, err := m.readClipboard()
		if err == nil {
			pasted := []rune(strings.TrimSpace(cleanClipboardText(text)))
			runes = insertRunes(runes, m.inputCursorPos, pasted)
			m.inputCursorPos += len(pasted)
		}
	case tea.KeySpace:
		runes = insertRunes(runes, m.inputCursorPos, []rune{' '})
		m.inputCursorPos++
	case tea.KeyRunes:
		runes = insertRunes(runes, m.inputCursorPos, msg.Runes)
		m.inputCursorPos += len(msg.Runes)
	}
	m.inputText = string(runes)
	return m, nil
}

func insertRunes(runes []rune, pos int, insert []rune) []rune {
	result := make([]rune, 0, len(runes)+len(insert))
	result = append(result, runes[:pos]...)
	result = append(result, insert...)
	return append(result, runes[pos:]...)
}

func (m model) handleFileInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		if m.fromStartup {
			m.mode = ModeStartup
		} else {
			m.mode = ModeNormal
		}
		m.errorMessage = ""
		return m, nil
	case tea.KeyEnter:
		return m.performFileOp()
	case tea.KeyUp:
		if m.fileOp == FileOpOpen && m.selectedFileIndex > 0 {
			m.selectedFileIndex--
			m.filename = strings.TrimSuffix(m.fileList[m.selectedFileIndex], fileExtension)
		}
	case tea.KeyDown:
		if m.fileOp == FileOpOpen && m.selectedFileIndex >= 0 && m.selectedFileIndex < len(m.fileList)-1 {
			m.selectedFileIndex++
			m.filename = strings.TrimSuffix(m.fileList[m.selectedFileIndex], fileExtension)
		}
	case tea.KeyBackspace:
		if runes := []rune(m.filename); len(runes) > 0 {
			m.filename = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.filename += " "
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
	}
	return m, nil
}

var fileOpExtensions = map[FileOperation]string{
	FileOpSave:          fileExtension,
	FileOpSavePNG:       ".png",
	FileOpSaveVisualTXT: ".txt",
}

func (m model) performFileOp() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.filename)
	if name == "" {
		m.errorMessage = "filename required"
		return m, nil
	}
	doc := m.getCurrentBuffer()

	var path string
	if ext, ok := fileOpExtensions[m.fileOp]; ok {
		var err error
		path, err = m.config.GetSavePath(withExtension(name, ext))
		if err != nil {
			m.mode = ModeNormal
			m.errorMessage = err.Error()
			return m, nil
		}
	}

	switch m.fileOp {
	case FileOpSave:
		if _, err := os.Stat(path); err == nil && path != doc.filename && m.config.Confirmations {
			m.filename = name
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return m, nil
		}
		m.mode = ModeNormal
		m.saveDocument(path)
	case FileOpSavePNG:
		m.mode = ModeNormal
		placeholders, err := m.exportPNG(path)
		switch {
		case err != nil:
			m.errorMessage = err.Error()
		case placeholders > 0:
			m.successMessage = fmt.Sprintf("Exported %s (%d emoji drawn as placeholders, set emojifont to a color emoji font)", path, placeholders)
		default:
			m.successMessage = "Exported " + path
		}
	case FileOpSaveVisualTXT:
		m.mode = ModeNormal
		if err := m.exportVisualTXT(path); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "Exported " + path
		}
	case FileOpOpen:
		if err := m.openFile(name, m.openInNewBuffer); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.mode = ModeNormal
		m.fromStartup = false
		m.errorMessage = ""
		m.cursorX, m.cursorY = m.canvasCenter()
		return m, m.getCurrentBuffer().ensureBackground()
	}
	return m, nil
}

func (m *model) saveDocument(path string) {
	doc := m.getCurrentBuffer()
	if err := doc.art.SaveToFile(path, doc.panX, doc.panY); err != nil {
		logger.Error("save failed", "file", path, "error", err)
		m.errorMessage = fmt.Sprintf("save %s: %v", path, err)
		return
	}
	doc.filename = path
	doc.dirty = false
	m.errorMessage = ""
	m.successMessage = "Saved " + path
	logger.Info("document saved", "file", path, "emojis", doc.art.Len())
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.help || (m.mode != ModeNormal && m.mode != ModeDragging) {
		return m, nil
	}
	doc := m.getCurrentBuffer()
	width, height := m.canvasSize()
	top := m.canvasTop()
	col, row := msg.X, msg.Y-top
	inCanvas := col >= 0 && col < width && row >= 0 && row < height
	onPalette := msg.Y == top+height

	switch msg.Type {
	case tea.MouseLeft:
		if m.drag != nil {
			m.updateDrag(col, row)
			return m, nil
		}
		if onPalette {
			if idx := m.paletteIndexAt(msg.X); idx != -1 {
				m.paletteIndex = idx
				m.drag = &dragState{fromPalette: true, paletteEmoji: m.palette[idx]}
				m.mode = ModeDragging
			}
			return m, nil
		}
		if !inCanvas {
			return m, nil
		}
		m.zPanMode = false
		m.cursorX, m.cursorY = col, row
		id := doc.emojiAt(col, row, width, height)
		if id == -1 {
			m.clearSelection()
			return m, nil
		}
		ids := []int{id}
		if m.selected[id] {
			ids = m.selectedIDs()
		}
		m.drag = &dragState{ids: ids, pressedID: id, startX: col, startY: row}
		m.mode = ModeDragging

	case tea.MouseMotion:
		if m.drag != nil {
			m.updateDrag(col, row)
		}

	case tea.MouseRelease:
		if m.drag == nil {
			return m, nil
		}
		drag := m.drag
		m.drag = nil
		m.mode = ModeNormal
		if drag.fromPalette {
			if inCanvas {
				x, y := screenToCanvas(col, row, width, height, doc.panX, doc.panY)
				m.cursorX, m.cursorY = col, row
				m.dropAt(drag.paletteEmoji, x, y)
			}
			return m, nil
		}
		dx, dy := col-drag.startX, row-drag.startY
		if dx == 0 && dy == 0 {
			m.toggleSelection(drag.pressedID)
			return m, nil
		}
		doc.MoveEmojis(drag.ids, dx*cellWidth, dy*cellHeight)
		m.cursorX, m.cursorY = col, row
		m.ensureCursorInBounds()

	case tea.MouseWheelUp:
		if inCanvas {
			m.scaleSelection(scaleStep)
		}

	case tea.MouseWheelDown:
		if inCanvas {
			m.scaleSelection(1 / scaleStep)
		}
	}
	return m, nil
}

// updateDrag records the in-progress translation in cells; the document is
// only touched when the drag ends.
func (m *model) updateDrag(col, row int) {
	if m.drag.fromPalette {
		return
	}
	m.drag.offsetX = col - m.drag.startX
	m.drag.offsetY = row - m.drag.startY
}
