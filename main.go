package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	config := loadConfig()
	logFile, err := InitLogger(config.LogFile, config.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	m := initialModel(config)
	if len(os.Args) > 1 {
		if err := m.openFile(os.Args[1], false); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		m.mode = ModeNormal
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "error", err)
		log.Fatal(err)
	}
}

func initialModel(config *Config) model {
	if config == nil {
		config = defaultConfig()
	}
	palette := splitEmojis(config.Palette)
	if len(palette) == 0 {
		palette = splitEmojis(defaultPalette)
	}
	mode := ModeStartup
	if !config.StartMenu {
		mode = ModeNormal
	}
	return model{
		buffers:        []*Document{NewDocument()},
		mode:           mode,
		selected:       make(map[int]bool),
		palette:        palette,
		config:         config,
		confirmEmojiID: -1,
		readClipboard:  readClipboardText,
	}
}

func (m model) Init() tea.Cmd {
	if doc := m.getCurrentBuffer(); doc != nil {
		return doc.ensureBackground()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case backgroundLoadedMsg:
		if err := msg.doc.applyLoadedBackground(msg); err != nil {
			m.errorMessage = fmt.Sprintf("background: %v", err)
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help && m.mode != ModeStartup {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeStartup:
			return m.handleStartupKey(msg)
		case ModeNormal:
			return m.handleNormalKey(msg)
		case ModeDragging:
			if msg.Type == tea.KeyEscape {
				m.drag = nil
				m.mode = ModeNormal
			}
			return m, nil
		case ModeTextInput:
			return m.handleTextInputKey(msg)
		case ModeFileInput:
			return m.handleFileInputKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		}
	}
	return m, nil
}

func (m *model) scanDocumentFiles() {
	m.fileList = []string{}

	dir, err := os.Getwd()
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), fileExtension) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = strings.TrimSuffix(m.fileList[0], fileExtension)
	} else {
		m.selectedFileIndex = -1
	}
}

func withExtension(filename, ext string) string {
	if strings.HasSuffix(strings.ToLower(filename), ext) {
		return filename
	}
	return filename + ext
}

// openFile loads a document into the current buffer, or a new one.
func (m *model) openFile(filename string, newBuffer bool) error {
	path := filename
	if _, err := os.Stat(path); err != nil {
		path = withExtension(filename, fileExtension)
	}
	art, panX, panY, err := LoadEmojiArt(path)
	if err != nil {
		logger.Warn("open failed", "file", path, "error", err)
		return fmt.Errorf("open %s: %w", path, err)
	}
	doc := newDocumentWith(art, path)
	doc.panX, doc.panY = panX, panY
	if newBuffer || len(m.buffers) == 0 {
		m.addNewBuffer(doc)
	} else {
		m.buffers[m.currentBufferIndex] = doc
		m.clearSelection()
	}
	logger.Info("document opened", "file", path, "emojis", art.Len())
	return nil
}
