package gallery

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"terminalcanvas/domain"
)

const (
	previewWidth  = 14
	previewHeight = 5
)

// previewState caches rendered ANSI thumbnails, keyed by image URL.
type previewState struct {
	previews       map[string]string
	previewLoading map[string]bool
}

type previewLoadedMsg struct {
	URL     string
	Preview string
	Err     error
}

// previewURL picks the image to thumbnail, preferring the improved render.
func previewURL(a domain.Artwork) string {
	if u := strings.TrimSpace(a.ImprovedURL); u != "" {
		return u
	}
	return strings.TrimSpace(a.OriginalURL)
}

// ensurePreviewCmd queues thumbnail fetches for artworks near the cursor
// that have no cached preview and no fetch in flight.
func (m *Model) ensurePreviewCmd() tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	end := m.startIndex + m.visibleCount()
	if end > len(m.items) {
		end = len(m.items)
	}
	var cmds []tea.Cmd
	for i := m.startIndex; i < end; i++ {
		url := previewURL(m.items[i])
		if url == "" {
			continue
		}
		if _, ok := m.previews[url]; ok {
			continue
		}
		if m.previewLoading[url] {
			continue
		}
		m.previewLoading[url] = true
		cmds = append(cmds, fetchPreview(url, previewWidth, previewHeight))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) handlePreviewMsg(msg previewLoadedMsg) (Model, tea.Cmd) {
	delete(m.previewLoading, msg.URL)
	if msg.Err != nil {
		// Cache the miss so we don't hammer a dead URL every tick.
		m.previews[msg.URL] = ""
		return m, nil
	}
	m.previews[msg.URL] = msg.Preview
	return m, nil
}

func fetchPreview(url string, w, h int) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 6 * time.Second}
		resp, err := client.Get(url)
		if err != nil {
			return previewLoadedMsg{URL: url, Err: err}
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return previewLoadedMsg{URL: url, Err: fmt.Errorf("preview status %d", resp.StatusCode)}
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
		if err != nil {
			return previewLoadedMsg{URL: url, Err: err}
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return previewLoadedMsg{URL: url, Err: err}
		}
		return previewLoadedMsg{URL: url, Preview: renderANSIThumbnail(img, w, h)}
	}
}

// renderANSIThumbnail downsamples an image to w x h colored cells using
// truecolor background escapes, two spaces per cell to keep the aspect
// roughly square.
func renderANSIThumbnail(img image.Image, w, h int) string {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}
	if w < 4 {
		w = 4
	}
	if h < 2 {
		h = 2
	}
	var out strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx := b.Min.X + x*b.Dx()/w
			sy := b.Min.Y + y*b.Dy()/h
			c := color.NRGBAModel.Convert(img.At(sx, sy)).(color.NRGBA)
			fmt.Fprintf(&out, "\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
		}
		if y < h-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
