package extractor

import "context"

// TextExtractor reads plain-text files verbatim as UTF-8.
type TextExtractor struct{}

func (e *TextExtractor) Extract(ctx context.Context, f File) (string, error) {
	return string(f.Data), nil
}
