// Package ocr reads numeric values out of screen regions.
package ocr

import (
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"

	"snapbuy/internal/models"
	"snapbuy/internal/screen"
	"snapbuy/pkg/logger"
)

// Tesseract tuned for a single line of digits with optional K suffix.
const (
	pageSegSingleLine = "7"
	charWhitelist     = "0123456789Kk,."
)

// Backend turns a captured frame into raw text. An error counts as one
// unreadable attempt.
type Backend interface {
	Recognize(img image.Image) (string, error)
}

// Capturer produces the current pixels of an ROI.
type Capturer interface {
	Capture(roi models.ROI) (image.Image, error)
}

// TesseractBackend runs recognition through a local tesseract install.
type TesseractBackend struct{}

func NewTesseractBackend() *TesseractBackend {
	return &TesseractBackend{}
}

func (b *TesseractBackend) Recognize(img image.Image) (string, error) {
	processed, err := screen.Preprocess(img)
	if err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetVariable("tessedit_char_whitelist", charWhitelist); err != nil {
		return "", fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := client.SetVariable("tessedit_pageseg_mode", pageSegSingleLine); err != nil {
		return "", fmt.Errorf("failed to set page segmentation: %w", err)
	}
	if err := client.SetImageFromBytes(processed); err != nil {
		return "", fmt.Errorf("failed to load frame: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognition failed: %w", err)
	}
	return text, nil
}

// Reader implements the read-and-validate protocol: up to n independent
// capture+recognize attempts per read, averaging the readable ones.
type Reader struct {
	capture Capturer
	backend Backend
	log     *logger.Logger
}

func NewReader(capture Capturer, backend Backend, log *logger.Logger) *Reader {
	return &Reader{
		capture: capture,
		backend: backend,
		log:     log,
	}
}

// Read captures the ROI up to attempts times and returns the arithmetic
// mean of the attempts that parsed to a non-negative number. The reading
// fails only when every attempt was unreadable.
func (r *Reader) Read(roi models.ROI, attempts int) models.PriceReading {
	if attempts < 1 {
		attempts = 1
	}

	var values []float64
	for i := 0; i < attempts; i++ {
		img, err := r.capture.Capture(roi)
		if err != nil {
			r.log.Debug("capture attempt failed", "roi", roi.Name, "attempt", i+1, "error", err)
			continue
		}
		text, err := r.backend.Recognize(img)
		if err != nil {
			r.log.Debug("recognize attempt failed", "roi", roi.Name, "attempt", i+1, "error", err)
			continue
		}
		value, err := ParseNumeric(text)
		if err != nil {
			r.log.Debug("unreadable attempt", "roi", roi.Name, "attempt", i+1, "text", text)
			continue
		}
		values = append(values, value)
	}

	if len(values) == 0 {
		return models.PriceReading{}
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return models.PriceReading{
		Value:   sum / float64(len(values)),
		Success: true,
	}
}
