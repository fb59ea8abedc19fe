package ersdoc

import "context"

// Retriever returns the chunks most relevant to a query. The vector index
// behind it is an external collaborator; this pipeline's obligation ends
// at producing the (text, metadata) pairs it ingests.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]*Chunk, error)
}

// Citation points an answer back at the manual.
type Citation struct {
	Section   string `json:"section"`
	SourceURL string `json:"source_url"`
	Title     string `json:"title,omitempty"`
}

// Answer is a question answered from retrieved manual chunks.
type Answer struct {
	Text    string     `json:"answer"`
	Sources []Citation `json:"sources"`
}

// Asker answers natural language questions about the ingested manual.
type Asker interface {
	Ask(ctx context.Context, question string) (*Answer, error)
}
