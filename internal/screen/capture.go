// Package screen captures ROI images and prepares them for OCR.
package screen

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/kbinani/screenshot"
	"gocv.io/x/gocv"

	"snapbuy/internal/models"
)

// Grabber captures the current screen content of a region. It holds no
// state; every call reads the live screen.
type Grabber struct{}

func NewGrabber() *Grabber {
	return &Grabber{}
}

// Capture returns the pixels currently inside the ROI.
func (g *Grabber) Capture(roi models.ROI) (image.Image, error) {
	if !roi.Valid() {
		return nil, fmt.Errorf("invalid ROI %s", roi)
	}
	rect := image.Rect(roi.X, roi.Y, roi.X+roi.Width, roi.Y+roi.Height)
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("failed to capture %s: %w", roi, err)
	}
	return img, nil
}

// Preprocess binarizes a captured frame for recognition: grayscale, then
// Otsu thresholding. Returns PNG bytes ready for the OCR backend.
func Preprocess(img image.Image) ([]byte, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	bin := gocv.NewMat()
	defer bin.Close()
	gocv.Threshold(gray, &bin, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	out, err := bin.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert binarized frame: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	return buf.Bytes(), nil
}
