package catalog

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-click", "after-click"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	s := newTestScene(t)
	s.Screenshot("a")
	s.Screenshot("b")
	s.Screenshot("c")
	if len(s.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(s.screenshotQueue))
	}
	if s.screenshotQueue[0] != "a" || s.screenshotQueue[1] != "b" || s.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", s.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	s := newTestScene(t)
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", s.ScreenshotDir, "screenshots")
	}
}

func decodeFrame(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestEncodeFrameStraightAlpha(t *testing.T) {
	// One opaque red pixel, one half-transparent premultiplied gray pixel.
	pixels := []byte{
		255, 0, 0, 255,
		64, 64, 64, 128,
	}
	data, err := encodeFrame(pixels, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	img := decodeFrame(t, data)

	if got := nrgbaAt(img, 0, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("opaque pixel = %v", got)
	}
	if got := nrgbaAt(img, 1, 0); got != (color.NRGBA{127, 127, 127, 128}) {
		t.Errorf("translucent pixel = %v, want {127 127 127 128}", got)
	}
	// The caller's buffer is reused across frames and must stay untouched.
	if pixels[4] != 64 {
		t.Errorf("input pixels modified: %v", pixels)
	}
}

func TestEncodeFrameSizeMismatch(t *testing.T) {
	if _, err := encodeFrame(make([]byte, 4), 2, 2); !errors.Is(err, ErrPreconditionViolated) {
		t.Errorf("err = %v, want ErrPreconditionViolated", err)
	}
}

func TestSaveFrameWritesEveryLabel(t *testing.T) {
	s := NewScene(Config{Name: "hud"})
	s.ScreenshotDir = filepath.Join(t.TempDir(), "shots")
	s.Screenshot("before")
	s.Screenshot("after click")

	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	pixels := []byte{10, 20, 30, 255}
	if err := s.saveFrame(pixels, 1, 1, at); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"hud_20240506_070809_before.png", "hud_20240506_070809_after_click.png"} {
		data, err := os.ReadFile(filepath.Join(s.ScreenshotDir, name))
		if err != nil {
			t.Fatal(err)
		}
		if got := nrgbaAt(decodeFrame(t, data), 0, 0); got != (color.NRGBA{10, 20, 30, 255}) {
			t.Errorf("%s pixel = %v", name, got)
		}
	}
}

func TestSaveFrameBadDir(t *testing.T) {
	s := newTestScene(t)
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	s.ScreenshotDir = filepath.Join(file, "shots")
	s.Screenshot("x")
	if err := s.saveFrame([]byte{0, 0, 0, 0}, 1, 1, time.Now()); err == nil {
		t.Error("expected error when the directory cannot be created")
	}
}
