package dotgrid

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Snapshotter is implemented by surfaces that can read back their pixels.
type Snapshotter interface {
	Snapshot() image.Image
}

// Screenshot queues a labeled capture of the next drawn frame. The PNG is
// written to ScreenshotDir with a timestamped filename. Surfaces that
// cannot snapshot drop the request.
func (e *Effect) Screenshot(label string) {
	e.screenshotQueue = append(e.screenshotQueue, label)
}

// flushScreenshots writes every queued capture. Called at the end of Draw.
func (e *Effect) flushScreenshots() {
	if len(e.screenshotQueue) == 0 {
		return
	}
	defer func() { e.screenshotQueue = e.screenshotQueue[:0] }()

	snap, ok := e.surface.(Snapshotter)
	if !ok {
		Logger().Warn("dotgrid: screenshot: surface cannot snapshot")
		return
	}
	img := snap.Snapshot()
	if img == nil {
		return
	}
	if err := os.MkdirAll(e.ScreenshotDir, 0o755); err != nil {
		Logger().Warn("dotgrid: screenshot", "err", fmt.Errorf("mkdir %s: %w", e.ScreenshotDir, err))
		return
	}

	stamp := time.Now().Format("20060102_150405")
	for _, label := range e.screenshotQueue {
		path := filepath.Join(e.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			Logger().Warn("dotgrid: screenshot", "err", err)
		}
	}
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
