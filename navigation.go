package main

func (m *model) handleNavigation(key string, speed int) {
	if m.zPanMode {
		m.handlePan(key, speed)
		return
	}
	m.handleCursorMove(key, speed)
}

func (m *model) handlePan(key string, speed int) {
	doc := m.getCurrentBuffer()
	if doc == nil {
		return
	}
	switch key {
	case "h", "left", "H", "shift+left":
		doc.panX -= speed
	case "l", "right", "L", "shift+right":
		doc.panX += speed
	case "k", "up", "K", "shift+up":
		doc.panY -= speed
	case "j", "down", "J", "shift+down":
		doc.panY += speed
	}
}

func (m *model) handleCursorMove(key string, speed int) {
	dx, dy := direction(key)
	m.cursorX += dx * speed
	m.cursorY += dy * speed
	m.ensureCursorInBounds()
}

// handleSelectionMove nudges the selected emojis one cell per key press.
func (m *model) handleSelectionMove(key string) {
	ids := m.selectedIDs()
	doc := m.getCurrentBuffer()
	if len(ids) == 0 || doc == nil {
		m.handleNavigation(key, m.getMoveSpeed(key))
		return
	}
	dx, dy := direction(key)
	doc.MoveEmojis(ids, dx*cellWidth, dy*cellHeight)
	m.successMessage = ""
}

func direction(key string) (int, int) {
	switch key {
	case "h", "left", "H", "shift+left":
		return -1, 0
	case "l", "right", "L", "shift+right":
		return 1, 0
	case "k", "up", "K", "shift+up":
		return 0, -1
	case "j", "down", "J", "shift+down":
		return 0, 1
	}
	return 0, 0
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m *model) ensureCursorInBounds() {
	width, height := m.canvasSize()
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.cursorX >= width {
		m.cursorX = width - 1
	}
	if m.cursorY >= height {
		m.cursorY = height - 1
	}
}
