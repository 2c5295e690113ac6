package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var errNothingToExport = errors.New("nothing to export")

func (m *model) exportVisualTXT(filename string) error {
	doc := m.getCurrentBuffer()
	if doc == nil {
		return fmt.Errorf("no document available")
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	// Render the canvas exactly as it appears, without cursor or selection
	width, height := m.canvasSize()
	for _, line := range plainLines(buildGrid(doc, width, height, nil, nil)) {
		fmt.Fprintln(file, line)
	}
	return nil
}

func (m *model) exportPNG(filename string) (int, error) {
	doc := m.getCurrentBuffer()
	if doc == nil {
		return 0, fmt.Errorf("no document available")
	}
	width, height := m.canvasSize()
	placeholders, err := doc.ExportToPNG(filename, width*cellWidth, height*cellHeight, m.config.EmojiFont)
	if err != nil {
		logger.Warn("png export failed", "file", filename, "error", err)
		return 0, fmt.Errorf("export %s: %w", filename, err)
	}
	logger.Info("png exported", "file", filename, "placeholders", placeholders)
	return placeholders, nil
}

// ExportToPNG draws the document onto an imageWidth x imageHeight image whose
// center is the canvas origin, shifted by the pan offset. It returns how many
// emoji had no glyph in any available font and were drawn as placeholders.
func (d *Document) ExportToPNG(filename string, imageWidth, imageHeight int, fontPath string) (int, error) {
	if d.art.Len() == 0 && d.backgroundImage == nil {
		return 0, errNothingToExport
	}
	if imageWidth < 1 || imageHeight < 1 {
		return 0, fmt.Errorf("invalid image size %dx%d", imageWidth, imageHeight)
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()

	if d.backgroundImage != nil {
		dc.DrawImage(fitImage(d.backgroundImage, imageWidth, imageHeight), 0, 0)
	}

	originX := float64(imageWidth/2 - d.panX*cellWidth)
	originY := float64(imageHeight/2 - d.panY*cellHeight)

	painter, err := newGlyphPainter(fontPath)
	if err != nil {
		return 0, err
	}
	for _, emoji := range d.art.Emojis() {
		painter.draw(dc, emoji, originX+float64(emoji.X), originY+float64(emoji.Y))
	}

	return painter.placeholders, dc.SavePNG(filename)
}

// glyphPainter draws emoji with a color bitmap font when one is available,
// then with an outline font, and as a placeholder disc when neither has
// the glyph.
type glyphPainter struct {
	color        *colorEmojiFont
	outline      *truetype.Font
	faces        map[int]font.Face
	placeholders int
}

func newGlyphPainter(fontPath string) (*glyphPainter, error) {
	outline, err := loadOutlineFont(fontPath)
	if err != nil {
		return nil, err
	}
	return &glyphPainter{
		color:   findColorEmojiFont(fontPath),
		outline: outline,
		faces:   make(map[int]font.Face),
	}, nil
}

func (p *glyphPainter) draw(dc *gg.Context, emoji Emoji, x, y float64) {
	size := max(emoji.Size, 1)
	if p.color != nil {
		img, err := p.color.glyph(emoji.Text)
		if err == nil {
			dc.DrawImageAnchored(scaleToHeight(img, size), int(x), int(y), 0.5, 0.5)
			return
		}
		logger.Debug("no color glyph", "emoji", emoji.Text, "error", err)
	}

	if r := []rune(emoji.Text); len(r) == 0 || p.outline.Index(r[0]) == 0 {
		p.placeholders++
		drawPlaceholder(dc, x, y, float64(size))
		return
	}
	face, ok := p.faces[size]
	if !ok {
		face = truetype.NewFace(p.outline, &truetype.Options{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		p.faces[size] = face
	}
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(emoji.Text, x, y, 0.5, 0.5)
}

func drawPlaceholder(dc *gg.Context, x, y, size float64) {
	dc.DrawCircle(x, y, size*0.4)
	dc.SetRGB255(255, 214, 10)
	dc.FillPreserve()
	dc.SetColor(color.Black)
	dc.SetLineWidth(max(1, size/16))
	dc.Stroke()
}

// scaleToHeight resizes img to the given height, keeping its aspect.
func scaleToHeight(img image.Image, height int) image.Image {
	bounds := img.Bounds()
	if bounds.Dy() == 0 {
		return img
	}
	width := max(1, bounds.Dx()*height/bounds.Dy())
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// fitImage scales img to fit inside width x height, centered on a
// transparent canvas of that size.
func fitImage(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return image.NewRGBA(image.Rect(0, 0, width, height))
	}
	scale := min(float64(width)/float64(bounds.Dx()), float64(height)/float64(bounds.Dy()))
	w := int(float64(bounds.Dx()) * scale)
	h := int(float64(bounds.Dy()) * scale)
	x := (width - w) / 2
	y := (height - h) / 2

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), img, bounds, draw.Over, nil)
	return dst
}

// loadOutlineFont prefers the configured font and falls back to Go Mono.
func loadOutlineFont(fontPath string) (*truetype.Font, error) {
	if fontPath != "" {
		data, err := os.ReadFile(fontPath)
		if err == nil {
			var f *truetype.Font
			if f, err = truetype.Parse(data); err == nil {
				return f, nil
			}
		}
		logger.Warn("outline font unusable, falling back to Go Mono", "font", fontPath, "error", err)
	}
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return f, nil
}
