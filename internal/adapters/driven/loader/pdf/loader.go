// Package pdf provides a document loader that extracts text from PDF
// files using the pdftotext tool from poppler-utils.
package pdf

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/docnav/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Loader extracts per-page text from the PDF files in a directory.
type Loader struct {
	runner driven.CommandRunner
}

// New creates a PDF loader that shells out to pdftotext.
func New() *Loader {
	return &Loader{runner: execRunner{}}
}

// NewWithRunner creates a PDF loader with a custom command runner.
// Used in tests to avoid requiring pdftotext on the machine.
func NewWithRunner(runner driven.CommandRunner) *Loader {
	return &Loader{runner: runner}
}

// Load extracts text from every *.pdf file directly under dir, one
// entry per non-empty page with its zero-based page index. Source
// names are base file names so the index does not leak local paths.
// Files are processed in lexical order for reproducible builds.
func (l *Loader) Load(ctx context.Context, dir string) ([]driven.PageText, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	sort.Strings(paths)

	var pages []driven.PageText
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// pdftotext emits a form feed between pages on stdout
		out, err := l.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", path, "-")
		if err != nil {
			return nil, fmt.Errorf("extracting text from %s: %w", filepath.Base(path), err)
		}

		name := filepath.Base(path)
		for i, page := range strings.Split(string(out), "\f") {
			page = strings.TrimSpace(page)
			if page == "" {
				continue
			}
			pages = append(pages, driven.PageText{
				SourceName: name,
				Page:       i,
				Text:       page,
			})
		}
	}

	return pages, nil
}
