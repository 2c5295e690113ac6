package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidPNG(t *testing.T, c color.Color, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestReadBackgroundSource(t *testing.T) {
	background, err := readBackgroundSource("https://example.com/sky.jpg")
	require.NoError(t, err)
	assert.Equal(t, URLBackground("https://example.com/sky.jpg"), background)

	background, err = readBackgroundSource("  ")
	require.NoError(t, err)
	assert.Equal(t, BackgroundBlank, background.Kind)

	data := solidPNG(t, color.RGBA{R: 255, A: 255}, 4, 4)
	path := filepath.Join(t.TempDir(), "red.png")
	require.NoError(t, os.WriteFile(path, data, 0644))
	background, err = readBackgroundSource(path)
	require.NoError(t, err)
	assert.Equal(t, data, background.ImageData())

	notImage := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(notImage, []byte("hello"), 0644))
	_, err = readBackgroundSource(notImage)
	assert.Error(t, err)

	_, err = readBackgroundSource(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestAverageColor(t *testing.T) {
	img, err := decodeImage(solidPNG(t, color.RGBA{R: 255, A: 255}, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", averageColor(img))

	assert.Equal(t, "", averageColor(image.NewRGBA(image.Rect(0, 0, 0, 0))))
}

func TestEnsureBackgroundDecodesImageData(t *testing.T) {
	doc := NewDocument()
	doc.SetBackground(ImageDataBackground(solidPNG(t, color.RGBA{B: 255, A: 255}, 2, 2)))

	assert.Nil(t, doc.ensureBackground())
	require.NotNil(t, doc.backgroundImage)
	assert.Equal(t, "#0000ff", doc.backgroundColor)
}

func TestLoadBackgroundFromURL(t *testing.T) {
	data := solidPNG(t, color.RGBA{G: 255, A: 255}, 3, 3)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bg.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	doc := NewDocument()
	doc.SetBackground(URLBackground(srv.URL + "/bg.png"))

	cmd := doc.ensureBackground()
	require.NotNil(t, cmd)
	assert.Nil(t, doc.ensureBackground(), "fetch already in flight")

	msg, ok := cmd().(backgroundLoadedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	require.NoError(t, doc.applyLoadedBackground(msg))
	assert.NotNil(t, doc.backgroundImage)
	assert.Equal(t, "#00ff00", doc.backgroundColor)
	assert.Equal(t, "", doc.loadingURL)
}

func TestLoadBackgroundErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	doc := NewDocument()
	doc.SetBackground(URLBackground(srv.URL + "/missing.png"))
	msg := doc.ensureBackground()().(backgroundLoadedMsg)
	assert.Error(t, msg.err)
	assert.Error(t, doc.applyLoadedBackground(msg))
	assert.Nil(t, doc.backgroundImage)
}

func TestStaleBackgroundIsDropped(t *testing.T) {
	doc := NewDocument()
	doc.SetBackground(URLBackground("https://example.com/new.png"))

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	err := doc.applyLoadedBackground(backgroundLoadedMsg{doc: doc, url: "https://example.com/old.png", img: img})
	assert.NoError(t, err)
	assert.Nil(t, doc.backgroundImage)
}
