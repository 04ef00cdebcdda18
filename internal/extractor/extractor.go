package extractor

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// ErrUnsupportedType is returned when a file cannot be classified.
var ErrUnsupportedType = errors.New("unsupported file type")

// ExtractionError wraps a per-file extraction failure with the file name.
type ExtractionError struct {
	FileName string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %s", e.FileName, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// File is one uploaded file: raw bytes plus the declared MIME type and name.
// It is owned by the caller for the duration of one extraction call.
type File struct {
	Name string
	MIME string
	Data []byte
}

// FileType classifies an uploaded file.
type FileType string

const (
	TypePDF      FileType = "pdf"
	TypeImage    FileType = "image"
	TypeText     FileType = "text"
	TypeMarkdown FileType = "markdown"
	TypeHTML     FileType = "html"
	TypeDOCX     FileType = "docx"
	TypeDOC      FileType = "doc"
	TypeUnknown  FileType = "unknown"
)

const mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Classify maps a declared MIME type and filename to a FileType. The MIME
// type wins; the filename extension is the fallback. Pure function of its
// inputs.
func Classify(mimeType, filename string) FileType {
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = mt
	}
	switch {
	case mimeType == "application/pdf":
		return TypePDF
	case strings.HasPrefix(mimeType, "image/"):
		return TypeImage
	case mimeType == "text/markdown":
		return TypeMarkdown
	case mimeType == "text/html":
		return TypeHTML
	case strings.HasPrefix(mimeType, "text/"):
		return TypeText
	case mimeType == mimeDOCX:
		return TypeDOCX
	case mimeType == "application/msword":
		return TypeDOC
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return TypePDF
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp":
		return TypeImage
	case ".txt":
		return TypeText
	case ".md", ".markdown":
		return TypeMarkdown
	case ".html", ".htm":
		return TypeHTML
	case ".docx":
		return TypeDOCX
	case ".doc":
		return TypeDOC
	}
	return TypeUnknown
}

// IsSupported reports whether a file with the given MIME type and name can
// be extracted.
func IsSupported(mimeType, filename string) bool {
	return Classify(mimeType, filename) != TypeUnknown
}

// Extractor converts one file's raw bytes into plain text.
type Extractor interface {
	Extract(ctx context.Context, f File) (string, error)
}

// Registry dispatches a file to the extractor matching its type.
type Registry struct {
	pdf      *PDFExtractor
	image    *ImageExtractor
	text     *TextExtractor
	markdown *MarkdownExtractor
	html     *HTMLExtractor
	word     *WordExtractor
}

// NewRegistry builds a registry with all format extractors. ocrLang is the
// Tesseract language code for image files (empty means eng).
func NewRegistry(ocrLang string, ocrProgress ProgressFunc) *Registry {
	return &Registry{
		pdf:      &PDFExtractor{},
		image:    &ImageExtractor{Language: ocrLang, Progress: ocrProgress},
		text:     &TextExtractor{},
		markdown: &MarkdownExtractor{},
		html:     &HTMLExtractor{},
		word:     &WordExtractor{},
	}
}

// ForType returns the extractor for a file type, or ErrUnsupportedType.
func (r *Registry) ForType(t FileType) (Extractor, error) {
	switch t {
	case TypePDF:
		return r.pdf, nil
	case TypeImage:
		return r.image, nil
	case TypeText:
		return r.text, nil
	case TypeMarkdown:
		return r.markdown, nil
	case TypeHTML:
		return r.html, nil
	case TypeDOCX, TypeDOC:
		return r.word, nil
	}
	return nil, ErrUnsupportedType
}

// Extract classifies f and runs the matching extractor. Failures other than
// classification are wrapped in *ExtractionError carrying the file name.
func (r *Registry) Extract(ctx context.Context, f File) (string, error) {
	ex, err := r.ForType(Classify(f.MIME, f.Name))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, f.Name)
	}
	text, err := ex.Extract(ctx, f)
	if err != nil {
		return "", &ExtractionError{FileName: f.Name, Err: err}
	}
	return text, nil
}
