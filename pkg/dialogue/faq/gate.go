// Package faq is the retrieval gate: a cheap semantic check that can
// short-circuit the full classify/route/dispatch path with a cached answer.
package faq

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"store-assistant-be/internal/pkg/logger"
	"store-assistant-be/internal/repository/contract"
	"store-assistant-be/pkg/embedding"

	"github.com/redis/go-redis/v9"
)

// Result of one gate check. Similarity is 1 - cosine distance.
type Result struct {
	Found      bool    `json:"found"`
	Answer     string  `json:"answer"`
	Similarity float64 `json:"similarity"`
}

type Gate struct {
	embedder  embedding.EmbeddingProvider
	documents contract.FAQDocumentRepository
	cache     *redis.Client // nil disables the answer cache
	floor     float64
	topK      int
	cacheTTL  time.Duration
	logger    logger.ILogger
}

func NewGate(
	embedder embedding.EmbeddingProvider,
	documents contract.FAQDocumentRepository,
	cache *redis.Client,
	floor float64,
	topK int,
	cacheTTL time.Duration,
	logger logger.ILogger,
) *Gate {
	if topK <= 0 {
		topK = 3
	}
	return &Gate{
		embedder:  embedder,
		documents: documents,
		cache:     cache,
		floor:     floor,
		topK:      topK,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Floor returns the configured similarity floor. The orchestrator compares
// a hit's similarity strictly against it before short-circuiting.
func (g *Gate) Floor() float64 {
	return g.floor
}

// Answer checks the FAQ index for the query. Every failure along the way
// (embedding, search, cache) degrades to found=false; the gate never raises.
func (g *Gate) Answer(ctx context.Context, query string) Result {
	if cached, ok := g.cachedAnswer(ctx, query); ok {
		return cached
	}

	vectors, err := g.embedder.Embed(ctx, []string{query})
	if err != nil || len(vectors) == 0 || len(vectors[0]) == 0 {
		if err != nil {
			g.logger.Warn("faq", "query embedding failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return Result{Found: false}
	}

	matches, err := g.documents.SearchSimilarWithScore(ctx, vectors[0], g.topK, g.floor, nil)
	if err != nil {
		g.logger.Warn("faq", "similarity search failed", map[string]interface{}{
			"error": err.Error(),
		})
		return Result{Found: false}
	}
	if len(matches) == 0 {
		return Result{Found: false}
	}

	best := matches[0]
	result := Result{
		Found:      true,
		Answer:     best.Document.Answer,
		Similarity: best.Similarity,
	}

	// Only confident hits (the ones the orchestrator will short-circuit on)
	// are worth caching
	if result.Similarity > g.floor {
		g.storeAnswer(ctx, query, result)
	}

	return result
}

func cacheKey(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return "faq:answer:" + hex.EncodeToString(sum[:])
}

func (g *Gate) cachedAnswer(ctx context.Context, query string) (Result, bool) {
	if g.cache == nil {
		return Result{}, false
	}
	payload, err := g.cache.Get(ctx, cacheKey(query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			g.logger.Warn("faq", "answer cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return Result{}, false
	}
	var result Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return Result{}, false
	}
	return result, true
}

func (g *Gate) storeAnswer(ctx context.Context, query string, result Result) {
	if g.cache == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := g.cache.Set(ctx, cacheKey(query), payload, g.cacheTTL).Err(); err != nil {
		g.logger.Warn("faq", "answer cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
