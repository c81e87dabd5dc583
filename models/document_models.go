package models

// Document is a static knowledge entry used for citation and keyword scoring
type Document struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"` // Lowercase topic keywords
}

// ScoredDocument is a Document ranked against a single query
type ScoredDocument struct {
	Document
	Score int `json:"score"`
}

// SourceCitation references the document a response was drawn from
type SourceCitation struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	Section    string `json:"section"`
}

// Response is the text produced for one query plus its citations.
// Sources is empty, never nil, when nothing is cited.
type Response struct {
	Text    string           `json:"text"`
	Sources []SourceCitation `json:"sources"`
}

// HasSources reports whether the response cites any document.
func (r Response) HasSources() bool {
	return len(r.Sources) > 0
}
