package extractor

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// Page text tokens closer than sameLineGap units are on the same line; gaps
// beyond paragraphGap start a new paragraph.
const (
	sameLineGap  = 5.0
	paragraphGap = 20.0
	maxJoinLen   = 100
)

const (
	noPDFText     = "No text found in PDF."
	pageSeparator = "\n\n═══════════════════════\n\n"
)

// PDFExtractor reconstructs readable prose from the positioned text tokens
// of each PDF page.
type PDFExtractor struct{}

func (e *PDFExtractor) Extract(ctx context.Context, f File) (text string, err error) {
	// The pdf library panics on corrupt content streams instead of
	// returning an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf content: %v", r)
		}
	}()

	r, err := pdflib.NewReader(bytes.NewReader(f.Data), int64(len(f.Data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var pages []string
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content := p.Content()
		tokens := make([]textToken, 0, len(content.Text))
		for _, t := range content.Text {
			tokens = append(tokens, textToken{s: t.S, y: t.Y})
		}
		if page := reconstructPage(tokens); page != "" {
			pages = append(pages, page)
		}
	}

	if len(pages) == 0 {
		return noPDFText, nil
	}
	return strings.Join(pages, pageSeparator), nil
}

// textToken is one positioned string from a page's content stream. y is the
// text baseline in page units.
type textToken struct {
	s string
	y float64
}

var (
	terminalPunct   = regexp.MustCompile(`[.!?:]\s*$`)
	startsUpperOrNo = regexp.MustCompile(`^\s*[A-Z\d]`)
	startsLower     = regexp.MustCompile(`^[a-z]`)
)

// reconstructPage walks tokens in stream order, joining same-line tokens
// with spaces and deciding at each baseline jump whether the next token
// continues the current paragraph or starts a new line.
func reconstructPage(tokens []textToken) string {
	var text strings.Builder
	var line strings.Builder
	lastY := math.NaN()

	for _, tk := range tokens {
		s := strings.TrimSpace(tk.s)
		if s == "" {
			continue
		}

		switch {
		case !math.IsNaN(lastY) && math.Abs(tk.y-lastY) > sameLineGap:
			if continuesParagraph(line.String(), s) {
				line.WriteByte(' ')
				line.WriteString(s)
				break
			}
			if line.Len() > 0 {
				text.WriteString(line.String())
				if math.Abs(tk.y-lastY) > paragraphGap {
					text.WriteString("\n\n")
				} else {
					text.WriteByte('\n')
				}
			}
			line.Reset()
			line.WriteString(s)
		default:
			if line.Len() > 0 {
				line.WriteByte(' ')
			}
			line.WriteString(s)
		}

		lastY = tk.y
	}

	text.WriteString(line.String())
	return text.String()
}

// continuesParagraph decides whether next belongs to the sentence
// accumulated in line despite the baseline jump: the line must look
// unfinished (no terminal punctuation, not a heading or numbered item, short
// enough) and the next token must start lowercase.
func continuesParagraph(line, next string) bool {
	return line != "" &&
		!terminalPunct.MatchString(line) &&
		!startsUpperOrNo.MatchString(line) &&
		startsLower.MatchString(next) &&
		len(line) < maxJoinLen
}
