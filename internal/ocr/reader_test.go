package ocr

import (
	"fmt"
	"image"
	"testing"

	"snapbuy/internal/models"
	"snapbuy/pkg/logger"
)

type fakeCapturer struct{}

func (fakeCapturer) Capture(roi models.ROI) (image.Image, error) {
	return image.NewGray(image.Rect(0, 0, roi.Width, roi.Height)), nil
}

// scriptedBackend returns one scripted result per attempt, in order.
// An empty string simulates an unreadable frame.
type scriptedBackend struct {
	results []string
	calls   int
}

func (b *scriptedBackend) Recognize(image.Image) (string, error) {
	if b.calls >= len(b.results) {
		return "", fmt.Errorf("no more scripted results")
	}
	r := b.results[b.calls]
	b.calls++
	if r == "" {
		return "", fmt.Errorf("unreadable frame")
	}
	return r, nil
}

var priceROI = models.ROI{Name: "price", X: 10, Y: 10, Width: 80, Height: 20}

func TestReadAveragesReadableAttempts(t *testing.T) {
	backend := &scriptedBackend{results: []string{"120", "", "124"}}
	r := NewReader(fakeCapturer{}, backend, logger.NewNop())

	got := r.Read(priceROI, 3)
	if !got.Success {
		t.Fatal("Read failed, want success with 2 of 3 readable attempts")
	}
	if got.Value != 122 {
		t.Errorf("Read value = %v, want 122 (mean of 120 and 124)", got.Value)
	}
	if backend.calls != 3 {
		t.Errorf("backend called %d times, want 3", backend.calls)
	}
}

func TestReadFailsWhenAllAttemptsUnreadable(t *testing.T) {
	backend := &scriptedBackend{results: []string{"", "", ""}}
	r := NewReader(fakeCapturer{}, backend, logger.NewNop())

	got := r.Read(priceROI, 3)
	if got.Success {
		t.Errorf("Read = %+v, want failure when 3/3 attempts are unreadable", got)
	}
}

func TestReadSingleAttempt(t *testing.T) {
	backend := &scriptedBackend{results: []string{"17,929K"}}
	r := NewReader(fakeCapturer{}, backend, logger.NewNop())

	got := r.Read(priceROI, 1)
	if !got.Success || got.Value != 17929000 {
		t.Errorf("Read = %+v, want success with value 17929000", got)
	}
	if backend.calls != 1 {
		t.Errorf("backend called %d times, want exactly 1", backend.calls)
	}
}

func TestReadToleratesGarbageText(t *testing.T) {
	backend := &scriptedBackend{results: []string{"...", "200", "..."}}
	r := NewReader(fakeCapturer{}, backend, logger.NewNop())

	got := r.Read(priceROI, 3)
	if !got.Success || got.Value != 200 {
		t.Errorf("Read = %+v, want success with value 200", got)
	}
}
