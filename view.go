package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cellStyle int

const (
	styleCanvas cellStyle = iota
	styleSelected
	styleDragging
	styleCursor
)

type cell struct {
	text  string
	style cellStyle
	// second half of a wide glyph
	cont bool
}

var (
	statusStyle       = lipgloss.NewStyle().Reverse(true)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	paletteStyle      = lipgloss.NewStyle().Background(lipgloss.Color("#3a3a3a"))
	paletteFocusStyle = lipgloss.NewStyle().Background(lipgloss.Color("#4aa3ff"))
	bufferBarStyle    = lipgloss.NewStyle().Faint(true)
)

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// canvasToScreen maps canvas coordinates to a cell of a width x height canvas
// area whose center is shifted by the pan offset.
func canvasToScreen(x, y, width, height, panX, panY int) (int, int) {
	return width/2 + floorDiv(x, cellWidth) - panX, height/2 + floorDiv(y, cellHeight) - panY
}

func screenToCanvas(col, row, width, height, panX, panY int) (int, int) {
	return (col - width/2 + panX) * cellWidth, (row - height/2 + panY) * cellHeight
}

// buildGrid lays out the document's emojis in z-order. Emojis being dragged
// are drawn at their offset position.
func buildGrid(doc *Document, width, height int, selected map[int]bool, drag *dragState) [][]cell {
	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
		for x := range grid[y] {
			grid[y][x] = cell{text: " "}
		}
	}

	dragging := make(map[int]bool)
	offsetX, offsetY := 0, 0
	if drag != nil && !drag.fromPalette {
		for _, id := range drag.ids {
			dragging[id] = true
		}
		offsetX, offsetY = drag.offsetX, drag.offsetY
	}

	for _, emoji := range doc.Emojis() {
		col, row := canvasToScreen(emoji.X, emoji.Y, width, height, doc.panX, doc.panY)
		style := styleCanvas
		if selected[emoji.ID] {
			style = styleSelected
		}
		if dragging[emoji.ID] {
			col += offsetX
			row += offsetY
			style = styleDragging
		}
		placeGlyph(grid, col, row, emoji.Text, style)
	}
	return grid
}

func placeGlyph(grid [][]cell, col, row int, text string, style cellStyle) {
	if row < 0 || row >= len(grid) {
		return
	}
	line := grid[row]
	w := glyphWidth(text)
	if col < 0 || col+w > len(line) {
		return
	}
	// clear any wide glyph we cut in half
	if line[col].cont && col > 0 {
		line[col-1] = cell{text: " "}
	}
	end := col + w
	if end < len(line) && line[end].cont {
		line[end] = cell{text: " "}
	}
	line[col] = cell{text: text, style: style}
	for i := col + 1; i < end; i++ {
		line[i] = cell{style: style, cont: true}
	}
}

func markCursor(grid [][]cell, col, row int) {
	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return
	}
	for col > 0 && grid[row][col].cont {
		col--
	}
	c := &grid[row][col]
	if c.text == " " {
		c.text = "█"
		return
	}
	c.style = styleCursor
	for i := col + 1; i < len(grid[row]) && grid[row][i].cont; i++ {
		grid[row][i].style = styleCursor
	}
}

func plainLines(grid [][]cell) []string {
	lines := make([]string, len(grid))
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if !c.cont {
				b.WriteString(c.text)
			}
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

func (m *model) canvasStyles(doc *Document) map[cellStyle]lipgloss.Style {
	color := m.config.CanvasColor
	if doc.backgroundColor != "" {
		color = doc.backgroundColor
	}
	base := lipgloss.NewStyle().Background(lipgloss.Color(color))
	return map[cellStyle]lipgloss.Style{
		styleCanvas:   base,
		styleSelected: base.Copy().Background(lipgloss.Color("#4aa3ff")),
		styleDragging: base.Copy().Background(lipgloss.Color("#9ad0ff")),
		styleCursor:   base.Copy().Reverse(true),
	}
}

// styledLines renders each grid row as runs of equally styled cells.
func styledLines(grid [][]cell, styles map[cellStyle]lipgloss.Style) []string {
	lines := make([]string, len(grid))
	for y, row := range grid {
		var b, run strings.Builder
		current := styleCanvas
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(styles[current].Render(run.String()))
				run.Reset()
			}
		}
		for _, c := range row {
			if c.cont {
				continue
			}
			if c.style != current {
				flush()
				current = c.style
			}
			run.WriteString(c.text)
		}
		flush()
		lines[y] = b.String()
	}
	return lines
}

func (m *model) renderCanvas(doc *Document, showCursor bool) []string {
	width, height := m.canvasSize()
	grid := buildGrid(doc, width, height, m.selected, m.drag)
	if showCursor {
		markCursor(grid, m.cursorX, m.cursorY)
	}
	return styledLines(grid, m.canvasStyles(doc))
}

func (m *model) renderBufferBar(width int) string {
	var bar strings.Builder
	bar.WriteString("Open Documents: ")

	for i, doc := range m.buffers {
		if i > 0 {
			bar.WriteString(" | ")
		}
		name := fmt.Sprintf("Buffer %d", i+1)
		if doc.filename != "" {
			name = strings.TrimSuffix(filepath.Base(doc.filename), fileExtension)
		}
		if doc.Dirty() {
			name += "*"
		}
		if i == m.currentBufferIndex {
			bar.WriteString("[" + name + "]")
		} else {
			bar.WriteString(name)
		}
	}
	return bufferBarStyle.Width(width).MaxWidth(width).Render(bar.String())
}

// paletteIndexAt returns the palette entry drawn at screen column x, or -1.
func (m *model) paletteIndexAt(x int) int {
	col := 0
	for i, emoji := range m.palette {
		w := glyphWidth(emoji) + 1
		if x >= col && x < col+w {
			return i
		}
		col += w
	}
	return -1
}

func (m *model) renderPalette(width int) string {
	var b strings.Builder
	for i, emoji := range m.palette {
		entry := emoji + " "
		if i == m.paletteIndex {
			b.WriteString(paletteFocusStyle.Render(entry))
		} else {
			b.WriteString(paletteStyle.Render(entry))
		}
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
}

func (m model) View() string {
	if m.help && m.mode != ModeStartup {
		return m.helpView()
	}
	if m.mode == ModeStartup {
		return m.startupView()
	}

	width, height := m.canvasSize()
	doc := m.getCurrentBuffer()

	var result strings.Builder
	if m.showBufferBar() {
		result.WriteString(m.renderBufferBar(width))
		result.WriteString("\n")
	}

	if m.mode == ModeFileInput && m.fileOp == FileOpOpen {
		result.WriteString(m.fileListView(width, height))
	} else {
		showCursor := m.mode != ModeFileInput && m.mode != ModeDragging
		result.WriteString(strings.Join(m.renderCanvas(doc, showCursor), "\n"))
	}
	result.WriteString("\n")
	result.WriteString(m.renderPalette(width))
	result.WriteString("\n")
	result.WriteString(m.statusLine(width))
	return result.String()
}

func (m model) startupView() string {
	lines := []string{
		"Welcome to EmojiArt!",
		"",
		"'n' New document",
		"'o' Open existing document",
		"'q' Quit",
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 3).
		Render(strings.Join(lines, "\n"))
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m model) fileListView(width, height int) string {
	var result strings.Builder
	result.WriteString("Select a saved document:\n")
	result.WriteString(strings.Repeat("─", width))
	result.WriteString("\n")

	if len(m.fileList) == 0 {
		result.WriteString("(No " + fileExtension + " files found in current directory)\n")
	} else {
		maxFiles := height - 4
		if maxFiles < 1 {
			maxFiles = 1
		}
		startIdx := 0
		if m.selectedFileIndex >= maxFiles {
			startIdx = m.selectedFileIndex - maxFiles + 1
		}
		endIdx := min(startIdx+maxFiles, len(m.fileList))
		for i := startIdx; i < endIdx; i++ {
			displayName := strings.TrimSuffix(m.fileList[i], fileExtension)
			if i == m.selectedFileIndex {
				result.WriteString("> " + displayName + " <")
			} else {
				result.WriteString("  " + displayName)
			}
			result.WriteString("\n")
		}
	}

	result.WriteString(strings.Repeat("─", width))
	result.WriteString("\n")
	result.WriteString("Filename: " + m.filename + "█")
	return result.String()
}

func withCursor(text string, cursorPos int) string {
	runes := []rune(text)
	if cursorPos < 0 || cursorPos > len(runes) {
		cursorPos = len(runes)
	}
	if cursorPos == len(runes) {
		return text + "█"
	}
	runes[cursorPos] = '█'
	return string(runes)
}

func (m model) statusLine(width int) string {
	var status string
	switch m.mode {
	case ModeTextInput:
		status = fmt.Sprintf("Mode: BACKGROUND | URL or file: %s | Enter=confirm, Esc=cancel", withCursor(m.inputText, m.inputCursorPos))
	case ModeDragging:
		if m.drag != nil && m.drag.fromPalette {
			status = fmt.Sprintf("Mode: DROP | %s | release over the canvas to add", m.drag.paletteEmoji)
		} else if m.drag != nil {
			status = fmt.Sprintf("Mode: DRAG | %d emoji(s) | offset (%d,%d)", len(m.drag.ids), m.drag.offsetX*cellWidth, m.drag.offsetY*cellHeight)
		}
	case ModeFileInput:
		var opStr string
		switch m.fileOp {
		case FileOpSave:
			opStr = "Save"
		case FileOpOpen:
			opStr = "Open"
		case FileOpSavePNG:
			opStr = "Export PNG"
		case FileOpSaveVisualTXT:
			opStr = "Export TXT"
		}
		status = fmt.Sprintf("Mode: FILE | %s filename: %s | Enter=confirm, Esc=cancel", opStr, m.filename)
		if m.fileOp == FileOpOpen {
			status += " | ↑/↓=navigate list"
		}
	case ModeConfirm:
		status = "Mode: CONFIRM | " + m.confirmMessage()
	default:
		modeStr := m.modeString()
		if m.zPanMode {
			modeStr = "PAN"
		}
		x, y := m.cursorCanvasCoords()
		status = fmt.Sprintf("Mode: %s | Cursor: (%d,%d)", modeStr, x, y)
		if ids := m.selectedIDs(); len(ids) == 1 {
			if emoji, ok := m.getCurrentBuffer().Emoji(ids[0]); ok {
				status += fmt.Sprintf(" | Selected: %s size %d", emoji.Text, emoji.Size)
			}
		} else if len(ids) > 1 {
			status += fmt.Sprintf(" | Selected: %d", len(ids))
		}
		if doc := m.getCurrentBuffer(); doc != nil {
			status += " | Background: " + doc.Background().String()
			if doc.loadingURL != "" {
				status += " (loading)"
			}
		}
		if m.successMessage != "" {
			status += " | " + m.successMessage
		}
		if m.errorMessage == "" && m.successMessage == "" {
			status += " | ? for help | q to quit"
		}
	}
	line := statusStyle.MaxWidth(width).Render(status)
	if m.errorMessage != "" {
		line += errorStyle.Render(" ERROR: " + m.errorMessage)
	}
	return line
}

func (m model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmDeleteEmoji:
		return "Delete this emoji? (y/n)"
	case ConfirmDeleteSelection:
		return fmt.Sprintf("Delete %d selected emoji(s)? (y/n)", len(m.selectedIDs()))
	case ConfirmQuit:
		return "Quit EmojiArt? (y/n)"
	case ConfirmNewDocument:
		return "Create new document? Unsaved changes will be lost. (y/n)"
	case ConfirmCloseBuffer:
		return "Close current buffer? Unsaved changes will be lost. (y/n)"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
	}
	return ""
}

func (m model) modeString() string {
	switch m.mode {
	case ModeStartup:
		return "STARTUP"
	case ModeNormal:
		return "NORMAL"
	case ModeDragging:
		return "DRAG"
	case ModeTextInput:
		return "BACKGROUND"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"EmojiArt Help",
	"=============",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor around the canvas",
	"  z                Toggle pan mode (direction keys pan the canvas)",
	"",
	"Emojis:",
	"-------",
	"  [ / ]            Pick previous/next palette emoji",
	"  a                Add the palette emoji at the cursor",
	"  p / Ctrl+V       Drop the clipboard emoji at the cursor",
	"  Space / Enter    Select/deselect the emoji under the cursor",
	"  Shift+h/j/k/l    Move selected emojis (moves the cursor 2x without a selection)",
	"  + / -            Scale selected emojis up/down",
	"  d                Delete the emoji under the cursor",
	"  D                Delete all selected emojis",
	"  Esc              Clear selection",
	"",
	"Mouse:",
	"------",
	"  Click            Select/deselect an emoji, click empty canvas to clear",
	"  Drag             Move the emoji, or the whole selection when it is selected",
	"  Drag palette     Drop a palette emoji onto the canvas",
	"  Wheel            Scale selected emojis",
	"",
	"Background:",
	"-----------",
	"  b                Set background from a URL or image file",
	"  B                Clear background",
	"",
	"File Operations:",
	"----------------",
	"  s                Save document",
	"  S                Export as PNG image",
	"  T                Export as text",
	"  o                Open a saved document in current buffer",
	"  O                Open a saved document in new buffer",
	"",
	"Buffer Operations:",
	"------------------",
	"  {                Switch to previous buffer",
	"  }                Switch to next buffer",
	"  n                New document in current buffer",
	"  N                New document in new buffer",
	"  x                Close current buffer",
	"",
	"General:",
	"  u                Undo last action",
	"  U                Redo last undone action",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = len(helpLines)
	}
	start := min(m.helpScroll, max(0, len(helpLines)-1))
	end := min(start+visibleHeight, len(helpLines))
	return strings.Join(helpLines[start:end], "\n")
}
