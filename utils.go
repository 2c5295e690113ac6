package main

import (
	"html"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	strip "github.com/grokify/html-strip-tags-go"
)

func (m *model) getCurrentBuffer() *Document {
	if len(m.buffers) == 0 {
		return nil
	}
	return m.buffers[m.currentBufferIndex]
}

func (m *model) getPanOffset() (int, int) {
	if doc := m.getCurrentBuffer(); doc != nil {
		return doc.panX, doc.panY
	}
	return 0, 0
}

func (m *model) addNewBuffer(doc *Document) {
	m.buffers = append(m.buffers, doc)
	m.currentBufferIndex = len(m.buffers) - 1
	m.clearSelection()
}

func (m *model) showBufferBar() bool {
	return m.mode != ModeStartup && len(m.buffers) > 1
}

// canvasTop is the screen row of the first canvas row.
func (m *model) canvasTop() int {
	if m.showBufferBar() {
		return 1
	}
	return 0
}

// canvasSize is the area left for the canvas after the buffer bar, the
// palette and the status line.
func (m *model) canvasSize() (int, int) {
	width := m.width
	if width < 1 {
		width = 1
	}
	height := m.height - 2 - m.canvasTop()
	if height < 1 {
		height = 1
	}
	return width, height
}

// cursorCanvasCoords converts the keyboard cursor to canvas coordinates.
func (m *model) cursorCanvasCoords() (int, int) {
	width, height := m.canvasSize()
	panX, panY := m.getPanOffset()
	return screenToCanvas(m.cursorX, m.cursorY, width, height, panX, panY)
}

func (m *model) emojiUnderCursor() int {
	doc := m.getCurrentBuffer()
	if doc == nil {
		return -1
	}
	width, height := m.canvasSize()
	return doc.emojiAt(m.cursorX, m.cursorY, width, height)
}

func (m *model) clearSelection() {
	m.selected = make(map[int]bool)
}

func (m *model) toggleSelection(id int) {
	if id == -1 {
		return
	}
	if m.selected[id] {
		delete(m.selected, id)
	} else {
		m.selected[id] = true
	}
}

// selectedIDs returns the selection in z-order, dropping ids that no longer
// exist in the current document.
func (m *model) selectedIDs() []int {
	doc := m.getCurrentBuffer()
	if doc == nil {
		return nil
	}
	var ids []int
	for _, emoji := range doc.Emojis() {
		if m.selected[emoji.ID] {
			ids = append(ids, emoji.ID)
		}
	}
	return ids
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func isHTML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<") &&
		(strings.Contains(text, "<html") || strings.Contains(text, "<body") ||
			strings.Contains(text, "<div") || strings.Contains(text, "<span"))
}

func extractTextFromHTML(text string) string {
	return html.UnescapeString(strip.StripTags(text))
}

// cleanClipboardText strips RTF and HTML wrappers and control characters
// from pasted text.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	text = stripRTF(text)
	if isHTML(text) {
		text = extractTextFromHTML(text)
	}
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := result.String()
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return normalized
}

func stripRTF(text string) string {
	if !strings.HasPrefix(text, "{\\rtf") && !strings.Contains(text, "\\rtf") {
		return text
	}
	var result strings.Builder
	result.Grow(len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '{' || r == '}' {
			continue
		}
		if r == '\\' {
			if i+1 < len(runes) {
				next := runes[i+1]
				if (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z') {
					i++
					for i < len(runes) {
						if runes[i] == ' ' || runes[i] == '\\' || runes[i] == '{' || runes[i] == '}' {
							if runes[i] == ' ' {
								i++
							}
							break
						}
						i++
					}
					i--
					continue
				} else if next == '\\' || next == '{' || next == '}' {
					result.WriteRune(next)
					i++
					continue
				}
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
