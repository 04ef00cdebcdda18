package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestReconstructPage_SameLineJoin(t *testing.T) {
	tokens := []textToken{
		{s: "The", y: 700},
		{s: "quick", y: 700},
		{s: "fox", y: 702}, // within the same-line gap
	}
	got := reconstructPage(tokens)
	if got != "The quick fox" {
		t.Errorf("expected joined line, got %q", got)
	}
}

func TestReconstructPage_ContinuesBrokenSentence(t *testing.T) {
	// A line that ends mid-sentence flows into the next baseline when the
	// next token starts lowercase.
	tokens := []textToken{
		{s: "the cell membrane regulates what", y: 700},
		{s: "enters and leaves the cell.", y: 688},
	}
	got := reconstructPage(tokens)
	want := "the cell membrane regulates what enters and leaves the cell."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestReconstructPage_TerminalPunctuationBreaksLine(t *testing.T) {
	tokens := []textToken{
		{s: "photosynthesis produces oxygen.", y: 700},
		{s: "it also produces glucose.", y: 688},
	}
	got := reconstructPage(tokens)
	want := "photosynthesis produces oxygen.\nit also produces glucose."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestReconstructPage_ParagraphBreakOnLargeGap(t *testing.T) {
	tokens := []textToken{
		{s: "first paragraph ends here.", y: 700},
		{s: "second paragraph starts here.", y: 650},
	}
	got := reconstructPage(tokens)
	want := "first paragraph ends here.\n\nsecond paragraph starts here."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestReconstructPage_HeadingNotContinued(t *testing.T) {
	// A line starting with an uppercase letter is treated as a heading or
	// sentence start, never merged into by the next line.
	tokens := []textToken{
		{s: "Chapter 3", y: 700},
		{s: "mitochondria are organelles.", y: 688},
	}
	got := reconstructPage(tokens)
	want := "Chapter 3\nmitochondria are organelles."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestReconstructPage_LongLineNotContinued(t *testing.T) {
	long := strings.Repeat("a", 120) // over the join limit, no terminal punct
	tokens := []textToken{
		{s: long, y: 700},
		{s: "continues", y: 688},
	}
	got := reconstructPage(tokens)
	if !strings.Contains(got, "\n") {
		t.Errorf("expected line break after over-long line, got %q", got)
	}
}

func TestReconstructPage_SkipsEmptyTokens(t *testing.T) {
	tokens := []textToken{
		{s: "  ", y: 700},
		{s: "kept", y: 700},
		{s: "", y: 650},
	}
	if got := reconstructPage(tokens); got != "kept" {
		t.Errorf("expected %q, got %q", "kept", got)
	}
}

func TestReconstructPage_EmptyInput(t *testing.T) {
	if got := reconstructPage(nil); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestReconstructPage_IdempotentOnOwnOutput(t *testing.T) {
	// Feeding reconstructed lines back in, one token per output line with a
	// plausible line spacing, must not move paragraph boundaries.
	tokens := []textToken{
		{s: "alpha ends the thought.", y: 700},
		{s: "beta follows on a new line.", y: 688},
		{s: "gamma opens a new paragraph.", y: 640},
	}
	first := reconstructPage(tokens)

	var again []textToken
	y := 700.0
	for _, line := range strings.Split(first, "\n") {
		if strings.TrimSpace(line) == "" {
			y -= paragraphGap + 10
			continue
		}
		again = append(again, textToken{s: line, y: y})
		y -= sameLineGap + 7
	}
	second := reconstructPage(again)

	if first != second {
		t.Errorf("reconstruction not idempotent:\nfirst:  %q\nsecond: %q", first, second)
	}
}

// corruptContentPDF builds a structurally valid single-page PDF whose
// content stream holds a bare TL operator, which the pdf library rejects
// by panicking rather than returning an error.
func corruptContentPDF() []byte {
	var buf bytes.Buffer
	offsets := make([]int, 5)
	buf.WriteString("%PDF-1.4\n")
	writeObj := func(n int, body string) {
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, body)
	}
	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /Contents 4 0 R /MediaBox [0 0 612 792] /Resources << >> >>")
	writeObj(4, "<< /Length 3 >>\nstream\nTL\nendstream")
	xref := buf.Len()
	buf.WriteString("xref\n0 5\n0000000000 65535 f \n")
	for n := 1; n <= 4; n++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[n])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 5 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}

func TestPDFExtractor_CorruptContentStreamReturnsError(t *testing.T) {
	e := &PDFExtractor{}
	_, err := e.Extract(context.Background(), File{
		Name: "corrupt.pdf",
		MIME: "application/pdf",
		Data: corruptContentPDF(),
	})
	if err == nil {
		t.Fatal("expected an error for a corrupt content stream")
	}
}
