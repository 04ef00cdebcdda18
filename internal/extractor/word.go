package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
)

const noWordText = "No text found in Word document."

// WordExtractor pulls the raw text out of word-processor containers. Legacy
// binary .doc files fail at parse time and surface as a per-file error.
type WordExtractor struct{}

func (e *WordExtractor) Extract(ctx context.Context, f File) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(f.Data), int64(len(f.Data)))
	if err != nil {
		return "", fmt.Errorf("parse word document: %w", err)
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := paragraphText(para); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	if len(paragraphs) == 0 {
		return noWordText, nil
	}
	return strings.Join(paragraphs, "\n"), nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
