package entity

import (
	"time"
)

// FAQDocument is one question variant mapping to an answer. Many variants
// may share the same answer and metadata; the embedding is per-variant.
type FAQDocument struct {
	Id        int64
	Question  string
	Answer    string
	Metadata  map[string]interface{}
	Embedding []float32
	CreatedAt time.Time
}

// ScoredFAQDocument pairs a document with its similarity to a query,
// where similarity = 1 - cosine distance (higher is better).
type ScoredFAQDocument struct {
	Document   *FAQDocument
	Similarity float64
}
