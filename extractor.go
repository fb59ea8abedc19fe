package ersdoc

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar) removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	Extract(markup string) (*ExtractResult, error)
}

// Converter converts clean content HTML to plain markdown text.
type Converter interface {
	Convert(contentHTML string) (string, error)
}

// LinkExtractor returns the in-scope outbound links of a page.
type LinkExtractor interface {
	// ExtractLinks parses anchor elements in markup, resolves each href
	// against baseURL, and returns the normalized in-scope targets,
	// deduplicated in document order. Malformed anchors are skipped
	// rather than failing the extraction.
	ExtractLinks(markup string, baseURL string) ([]string, error)
}
