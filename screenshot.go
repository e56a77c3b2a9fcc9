package catalog

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// Screenshot queues a labeled capture of the frame drawn by the next Draw.
// Files land in ScreenshotDir as <catalog>_<timestamp>_<label>.png.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots runs at the end of Draw. The frame is read back once and
// shared by every queued label.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()
	if n := 4 * w * h; cap(s.pixelBuf) < n {
		s.pixelBuf = make([]byte, n)
	} else {
		s.pixelBuf = s.pixelBuf[:n]
	}
	screen.ReadPixels(s.pixelBuf)

	if err := s.saveFrame(s.pixelBuf, w, h, time.Now()); err != nil {
		s.log.Error("screenshot", "catalog", s.catalog.cfg.Name, "err", err)
	}
}

// saveFrame encodes premultiplied RGBA pixels as PNG and writes one file per
// queued label.
func (s *Scene) saveFrame(pixels []byte, w, h int, at time.Time) error {
	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		return errors.Wrapf(err, "mkdir %s", s.ScreenshotDir)
	}
	data, err := encodeFrame(pixels, w, h)
	if err != nil {
		return err
	}
	stamp := at.Format("20060102_150405")
	for _, label := range s.screenshotQueue {
		name := sanitizeLabel(s.catalog.cfg.Name) + "_" + stamp + "_" + sanitizeLabel(label) + ".png"
		path := filepath.Join(s.ScreenshotDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrapf(err, "write %s", path)
		}
	}
	return nil
}

// encodeFrame converts ebiten's premultiplied pixels to straight alpha and
// returns the PNG bytes.
func encodeFrame(pixels []byte, w, h int) ([]byte, error) {
	if len(pixels) != 4*w*h {
		return nil, errors.Wrapf(ErrPreconditionViolated, "frame %dx%d with %d bytes", w, h, len(pixels))
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pixels)
	for i := 0; i < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := i; c < i+3; c++ {
			img.Pix[c] = uint8(min(int(img.Pix[c])*255/a, 255))
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encode png")
	}
	return buf.Bytes(), nil
}

// sanitizeLabel keeps file names portable. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
