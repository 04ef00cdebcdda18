package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

const noImageText = "No text detected in image."

// ProgressFunc observes OCR progress as a fraction in [0,1]. It is a side
// channel only; the recognized text is the return value.
type ProgressFunc func(fraction float64)

// ImageExtractor runs Tesseract OCR over the full image.
type ImageExtractor struct {
	// Language is the Tesseract language code. Empty means "eng".
	Language string
	Progress ProgressFunc
}

func (e *ImageExtractor) Extract(ctx context.Context, f File) (string, error) {
	e.report(0)

	client := gosseract.NewClient()
	defer client.Close()

	lang := e.Language
	if lang == "" {
		lang = "eng"
	}
	if err := client.SetLanguage(lang); err != nil {
		return "", fmt.Errorf("set ocr language: %w", err)
	}
	if err := client.SetImageFromBytes(f.Data); err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}
	e.report(0.5)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	e.report(1)

	if strings.TrimSpace(text) == "" {
		return noImageText, nil
	}
	return text, nil
}

func (e *ImageExtractor) report(fraction float64) {
	if e.Progress != nil {
		e.Progress(fraction)
	}
}
