package ersdoc

import "time"

// Document represents one ingested manual page. Documents are immutable
// once loaded; chunking copies their metadata rather than mutating them.
type Document struct {
	SourceURL      string    `json:"source_url"`
	Title          string    `json:"title"`
	Section        string    `json:"section"`
	Content        string    `json:"content"`
	ContentHash    string    `json:"content_hash"`
	DiscoveryDepth int       `json:"discovery_depth"`
	RetrievedAt    time.Time `json:"retrieved_at"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}
