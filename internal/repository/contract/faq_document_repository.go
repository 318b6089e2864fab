package contract

import (
	"context"

	"store-assistant-be/internal/entity"
)

type FAQDocumentRepository interface {
	CreateBulk(ctx context.Context, documents []*entity.FAQDocument) error
	Count(ctx context.Context) (int64, error)

	// SearchSimilarWithScore runs a nearest-neighbor search over question
	// variants, bounded to limit, keeping only results whose similarity
	// (1 - cosine distance) is at least threshold. metadataFilter, when
	// non-nil, restricts to documents whose metadata is a JSONB superset of
	// the filter. Results come back best match first.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, metadataFilter map[string]interface{}) ([]*entity.ScoredFAQDocument, error)
}
