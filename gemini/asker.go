// Package gemini implements question answering over retrieved chunks
// using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/taxdocs/ersdoc"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// defaultTopK is how many chunks are retrieved as context per question.
const defaultTopK = 5

// Ensure Asker implements ersdoc.Asker at compile time.
var _ ersdoc.Asker = (*Asker)(nil)

// Asker implements ersdoc.Asker using Google Gemini, grounding every
// answer in chunks supplied by a Retriever.
type Asker struct {
	client    *genai.Client
	retriever ersdoc.Retriever
	topK      int
}

// Option configures an Asker.
type Option func(*Asker)

// WithTopK sets how many chunks are retrieved per question.
// Defaults to defaultTopK (5) if not specified.
func WithTopK(k int) Option {
	return func(a *Asker) {
		a.topK = k
	}
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, retriever ersdoc.Retriever, opts ...Option) *Asker {
	a := &Asker{client: client, retriever: retriever, topK: defaultTopK}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ask answers a natural language question about the ingested manual.
// The answer cites the chunks it was grounded in.
func (a *Asker) Ask(ctx context.Context, question string) (*ersdoc.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ersdoc.Errorf(ersdoc.EINVALID, "question required")
	}

	chunks, err := a.retriever.Retrieve(ctx, question, a.topK)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, ersdoc.Errorf(ersdoc.ENOTFOUND, "no relevant content found for question")
	}

	prompt := BuildUserPrompt(chunks, question)
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ersdoc.Errorf(ersdoc.EINTERNAL, "gemini returned nil result")
	}

	return &ersdoc.Answer{
		Text:    result.Text(),
		Sources: Citations(chunks),
	}, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about the HMRC Employment Related Securities manual. Answer based only on the manual extracts provided. If the answer is not in the extracts, say so. Cite the section identifiers you relied on.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the retrieved
// manual extracts and the question.
func BuildUserPrompt(chunks []*ersdoc.Chunk, question string) string {
	var sb strings.Builder
	sb.WriteString("<documents>\n")
	for i, c := range chunks {
		title := c.Title
		if title == "" {
			title = c.SourceURL
		}
		sb.WriteString("<document>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
		fmt.Fprintf(&sb, "<section>%s</section>\n", c.Section)
		fmt.Fprintf(&sb, "<source>%s</source>\n", c.SourceURL)
		fmt.Fprintf(&sb, "<content>%s</content>\n", c.Content)
		sb.WriteString("</document>\n")
	}
	sb.WriteString("</documents>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}

// Citations derives the unique source list from the retrieved chunks,
// in retrieval order.
func Citations(chunks []*ersdoc.Chunk) []ersdoc.Citation {
	seen := make(map[string]struct{})
	var sources []ersdoc.Citation
	for _, c := range chunks {
		if _, ok := seen[c.SourceURL]; ok {
			continue
		}
		seen[c.SourceURL] = struct{}{}
		sources = append(sources, ersdoc.Citation{
			Section:   c.Section,
			SourceURL: c.SourceURL,
			Title:     c.Title,
		})
	}
	return sources
}
