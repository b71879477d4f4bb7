package driven

import "context"

// PageText is one page of extracted document text with provenance.
type PageText struct {
	// SourceName is the base filename of the origin document.
	SourceName string

	// Page is the zero-based page index.
	Page int

	// Text is the extracted plain text for that page.
	Text string
}

// DocumentLoader yields ordered text fragments from source documents.
// Parsing is deliberately outside the retrieval core; the loader is a
// thin wrapper over an extraction tool.
type DocumentLoader interface {
	// Load extracts page texts from every supported document under
	// dir, in filename order.
	Load(ctx context.Context, dir string) ([]PageText, error)
}

// CommandRunner executes an external command and returns its combined
// output. Exists so extraction tools (pdftotext) can be mocked in tests.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
