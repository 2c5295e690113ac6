package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h2non/filetype"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	backgroundFetchTimeout = 20 * time.Second
	maxBackgroundBytes     = 32 << 20
)

type backgroundLoadedMsg struct {
	doc *Document
	url string
	img image.Image
	err error
}

var httpClient = &http.Client{}

func fetchBackground(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBackgroundBytes))
}

func loadBackgroundCmd(doc *Document, url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundFetchTimeout)
		defer cancel()
		data, err := fetchBackground(ctx, url)
		if err != nil {
			return backgroundLoadedMsg{doc: doc, url: url, err: err}
		}
		img, err := decodeImage(data)
		return backgroundLoadedMsg{doc: doc, url: url, img: img, err: err}
	}
}

func decodeImage(data []byte) (image.Image, error) {
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return nil, fmt.Errorf("decode background: not an image")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode background %s: %w", kind.MIME.Value, err)
	}
	logger.Debug("background decoded", "type", kind.MIME.Value, "bounds", img.Bounds().String())
	return img, nil
}

// readBackgroundSource turns user input into a background: web addresses
// stay URLs, anything else is read from disk.
func readBackgroundSource(input string) (Background, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return BlankBackground(), nil
	}
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return URLBackground(input), nil
	}
	data, err := os.ReadFile(expandPath(input))
	if err != nil {
		return Background{}, fmt.Errorf("read background: %w", err)
	}
	if _, err := decodeImage(data); err != nil {
		return Background{}, err
	}
	return ImageDataBackground(data), nil
}

// ensureBackground decodes image data in place and returns a command for
// URL backgrounds that still need fetching.
func (d *Document) ensureBackground() tea.Cmd {
	if d.backgroundImage != nil {
		return nil
	}
	background := d.art.Background()
	switch background.Kind {
	case BackgroundImageData:
		img, err := decodeImage(background.ImageData())
		if err != nil {
			logger.Warn("background image unreadable", "error", err)
			return nil
		}
		d.setBackgroundImage(img)
	case BackgroundURL:
		if d.loadingURL == background.URL() {
			return nil
		}
		d.loadingURL = background.URL()
		logger.Info("fetching background", "url", background.URL())
		return loadBackgroundCmd(d, background.URL())
	}
	return nil
}

// applyLoadedBackground stores a fetched image if the document still shows
// that URL.
func (d *Document) applyLoadedBackground(msg backgroundLoadedMsg) error {
	if d.art.Background().URL() != msg.url {
		logger.Debug("dropping stale background", "url", msg.url)
		return nil
	}
	d.loadingURL = ""
	if msg.err != nil {
		logger.Warn("background fetch failed", "url", msg.url, "error", msg.err)
		return msg.err
	}
	d.setBackgroundImage(msg.img)
	return nil
}

func (d *Document) setBackgroundImage(img image.Image) {
	d.backgroundImage = img
	d.backgroundColor = averageColor(img)
}

// averageColor samples img on a coarse grid and returns the mean as hex.
func averageColor(img image.Image) string {
	bounds := img.Bounds()
	if bounds.Empty() {
		return ""
	}
	stepX := max(1, bounds.Dx()/64)
	stepY := max(1, bounds.Dy()/64)
	var r, g, b float64
	n := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			r += c.R
			g += c.G
			b += c.B
			n++
		}
	}
	if n == 0 {
		return ""
	}
	return colorful.Color{R: r / float64(n), G: g / float64(n), B: b / float64(n)}.Clamped().Hex()
}
