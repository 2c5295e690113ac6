package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/gogpu/gg/text/emoji"
)

// systemEmojiFonts are tried after the configured font.
var systemEmojiFonts = []string{
	"/usr/share/fonts/truetype/noto/NotoColorEmoji.ttf",
	"/usr/share/fonts/noto/NotoColorEmoji.ttf",
	"/usr/share/fonts/google-noto-emoji/NotoColorEmoji.ttf",
	"/usr/share/fonts/noto-emoji/NotoColorEmoji.ttf",
	"/usr/local/share/fonts/NotoColorEmoji.ttf",
}

var errNoColorTables = errors.New("font has no CBDT/CBLC tables")

// colorEmojiFont draws emoji from the embedded bitmaps of a CBDT font.
type colorEmojiFont struct {
	extractor *emoji.CBDTExtractor
	cmap      map[rune]uint16
	ppem      uint16
}

// findColorEmojiFont returns the first usable color font, or nil.
func findColorEmojiFont(configured string) *colorEmojiFont {
	paths := systemEmojiFonts
	if configured != "" {
		paths = append([]string{configured}, paths...)
	}
	for _, path := range paths {
		f, err := loadColorEmojiFont(path)
		if err == nil {
			logger.Debug("using color emoji font", "font", path, "ppem", f.ppem)
			return f
		}
		if !errors.Is(err, os.ErrNotExist) {
			logger.Debug("not a color emoji font", "font", path, "error", err)
		}
	}
	return nil
}

func loadColorEmojiFont(path string) (*colorEmojiFont, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseColorEmojiFont(data)
}

func parseColorEmojiFont(data []byte) (*colorEmojiFont, error) {
	cbdt := fontTable(data, "CBDT")
	cblc := fontTable(data, "CBLC")
	if cbdt == nil || cblc == nil {
		return nil, errNoColorTables
	}
	extractor, err := emoji.NewCBDTExtractor(cbdt, cblc)
	if err != nil {
		return nil, err
	}
	var ppem uint16
	for _, p := range extractor.AvailablePPEMs() {
		ppem = max(ppem, p)
	}
	if ppem == 0 {
		return nil, errNoColorTables
	}
	cmap, err := parseCmap(fontTable(data, "cmap"))
	if err != nil {
		return nil, err
	}
	return &colorEmojiFont{extractor: extractor, cmap: cmap, ppem: ppem}, nil
}

// glyph returns the bitmap for the base character of text. Sequences
// joined by ZWJ draw as their first component.
func (f *colorEmojiFont) glyph(text string) (image.Image, error) {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, fmt.Errorf("empty glyph")
	}
	glyphID, ok := f.cmap[runes[0]]
	if !ok {
		return nil, fmt.Errorf("no glyph for %U", runes[0])
	}
	bitmap, err := f.extractor.GetGlyph(glyphID, f.ppem)
	if err != nil {
		return nil, err
	}
	return bitmap.Decode()
}

// fontTable returns the named table from an sfnt font, or nil.
func fontTable(data []byte, tag string) []byte {
	if len(data) < 12 {
		return nil
	}
	numTables := int(binary.BigEndian.Uint16(data[4:6]))
	for i := 0; i < numTables; i++ {
		record := 12 + i*16
		if record+16 > len(data) {
			return nil
		}
		if string(data[record:record+4]) != tag {
			continue
		}
		offset := binary.BigEndian.Uint32(data[record+8:])
		length := binary.BigEndian.Uint32(data[record+12:])
		if uint64(offset)+uint64(length) > uint64(len(data)) {
			return nil
		}
		return data[offset : offset+length]
	}
	return nil
}

// parseCmap reads the character map, preferring a format 12 subtable over
// format 4.
func parseCmap(data []byte) (map[rune]uint16, error) {
	if len(data) < 4 {
		return nil, errors.New("cmap: table too short")
	}
	numTables := int(binary.BigEndian.Uint16(data[2:4]))
	var format4 []byte
	for i := 0; i < numTables; i++ {
		record := 4 + i*8
		if record+8 > len(data) {
			break
		}
		offset := int(binary.BigEndian.Uint32(data[record+4:]))
		if offset+2 > len(data) {
			continue
		}
		switch binary.BigEndian.Uint16(data[offset:]) {
		case 12:
			return parseCmap12(data[offset:])
		case 4:
			if format4 == nil {
				format4 = data[offset:]
			}
		}
	}
	if format4 != nil {
		return parseCmap4(format4)
	}
	return nil, errors.New("cmap: no supported subtable")
}

func parseCmap12(data []byte) (map[rune]uint16, error) {
	if len(data) < 16 {
		return nil, errors.New("cmap: format 12 header truncated")
	}
	numGroups := int(binary.BigEndian.Uint32(data[12:16]))
	if 16+numGroups*12 > len(data) {
		return nil, errors.New("cmap: format 12 groups truncated")
	}
	cmap := make(map[rune]uint16)
	for i := 0; i < numGroups; i++ {
		group := data[16+i*12:]
		start := binary.BigEndian.Uint32(group[0:4])
		end := binary.BigEndian.Uint32(group[4:8])
		glyph := binary.BigEndian.Uint32(group[8:12])
		if end < start || end > 0x10ffff {
			continue
		}
		for c := start; c <= end; c++ {
			cmap[rune(c)] = uint16(glyph + c - start)
		}
	}
	return cmap, nil
}

func parseCmap4(data []byte) (map[rune]uint16, error) {
	if len(data) < 14 {
		return nil, errors.New("cmap: format 4 header truncated")
	}
	segCount := int(binary.BigEndian.Uint16(data[6:8])) / 2
	endCodes := 14
	startCodes := endCodes + segCount*2 + 2
	deltas := startCodes + segCount*2
	rangeOffsets := deltas + segCount*2
	if rangeOffsets+segCount*2 > len(data) {
		return nil, errors.New("cmap: format 4 segments truncated")
	}
	u16 := func(at int) uint16 { return binary.BigEndian.Uint16(data[at:]) }

	cmap := make(map[rune]uint16)
	for i := 0; i < segCount; i++ {
		start, end := u16(startCodes+i*2), u16(endCodes+i*2)
		delta, rangeOffset := u16(deltas+i*2), u16(rangeOffsets+i*2)
		if start == 0xffff || end < start {
			continue
		}
		for c := uint32(start); c <= uint32(end); c++ {
			var glyph uint16
			if rangeOffset == 0 {
				glyph = uint16(c) + delta
			} else {
				at := rangeOffsets + i*2 + int(rangeOffset) + int(c-uint32(start))*2
				if at+2 > len(data) {
					continue
				}
				if glyph = u16(at); glyph != 0 {
					glyph += delta
				}
			}
			if glyph != 0 {
				cmap[rune(c)] = glyph
			}
		}
	}
	return cmap, nil
}
