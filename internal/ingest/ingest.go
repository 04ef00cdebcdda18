// Package ingest turns a batch of uploaded files into one plain-text
// document, running extraction for every file concurrently and keeping
// per-file failures out of the batch result's way.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"recallify/internal/extractor"
)

// PastedContentName labels documents created from pasted text rather than
// file uploads.
const PastedContentName = "Pasted Content"

// textSeparator joins the text of successfully extracted files.
const textSeparator = "\n\n"

// FailedFile records one file that could not be extracted.
type FailedFile struct {
	FileName string `json:"fileName"`
	Error    string `json:"error"`
}

// Result is the outcome of one batch ingestion. Success reports whether the
// coordinator itself ran; per-file failures live in FailedFiles. When every
// file failed, Text is empty and the caller treats that as an error state.
type Result struct {
	Text        string       `json:"text"`
	FileName    string       `json:"fileName"`
	FailedFiles []FailedFile `json:"failedFiles"`
	Success     bool         `json:"success"`
}

// Extractor converts one uploaded file into plain text.
type Extractor interface {
	Extract(ctx context.Context, f extractor.File) (string, error)
}

// Coordinator fans extraction out over a batch of files.
type Coordinator struct {
	registry Extractor
	log      *slog.Logger
}

func NewCoordinator(registry Extractor, log *slog.Logger) *Coordinator {
	return &Coordinator{registry: registry, log: log}
}

// fileOutcome is one file's result slot. Each extraction writes only its
// own slot; slots are read after the join.
type fileOutcome struct {
	fileName string
	text     string
	err      error
}

// Ingest extracts every file concurrently and concatenates the successful
// text in input order, separated by a blank line. One failure never aborts
// the batch.
func (c *Coordinator) Ingest(ctx context.Context, files []extractor.File) (Result, error) {
	if len(files) == 0 {
		return Result{}, errors.New("no files provided")
	}

	outcomes := make([]fileOutcome, len(files))
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f extractor.File) {
			defer wg.Done()
			// A panicking extractor fails its own file, never the batch
			// or the process.
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = fileOutcome{
						fileName: f.Name,
						err:      fmt.Errorf("extraction panic: %v", r),
					}
				}
			}()
			text, err := c.registry.Extract(ctx, f)
			outcomes[i] = fileOutcome{fileName: f.Name, text: text, err: err}
		}(i, f)
	}
	wg.Wait()

	var parts []string
	result := Result{
		FileName:    files[0].Name,
		FailedFiles: []FailedFile{},
		Success:     true,
	}
	for _, o := range outcomes {
		if o.err != nil {
			c.log.Warn("file extraction failed", "file", o.fileName, "error", o.err)
			result.FailedFiles = append(result.FailedFiles, FailedFile{
				FileName: o.fileName,
				Error:    o.err.Error(),
			})
			continue
		}
		if o.text != "" {
			parts = append(parts, o.text)
		}
	}
	result.Text = strings.Join(parts, textSeparator)

	return result, nil
}
