package implementation

import (
	"context"
	"encoding/json"

	"store-assistant-be/internal/entity"
	"store-assistant-be/internal/mapper"
	"store-assistant-be/internal/model"
	"store-assistant-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type FAQDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FAQDocumentMapper
}

func NewFAQDocumentRepository(db *gorm.DB) contract.FAQDocumentRepository {
	return &FAQDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewFAQDocumentMapper(),
	}
}

func (r *FAQDocumentRepositoryImpl) CreateBulk(ctx context.Context, documents []*entity.FAQDocument) error {
	models := make([]*model.FAQDocument, len(documents))
	for i, d := range documents {
		models[i] = r.mapper.ToModel(d)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*documents[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *FAQDocumentRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FAQDocument{}).Count(&count).Error
	return count, err
}

func (r *FAQDocumentRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, metadataFilter map[string]interface{}) ([]*entity.ScoredFAQDocument, error) {
	if limit <= 0 {
		limit = 3
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding <=> query_vector) = cosine_similarity.
	type result struct {
		model.FAQDocument
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("faq_documents").
		Select("faq_documents.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold)

	if metadataFilter != nil {
		filterJSON, err := json.Marshal(metadataFilter)
		if err != nil {
			return nil, err
		}
		query = query.Where("metadata @> ?::jsonb", string(filterJSON))
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredFAQDocument, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredFAQDocument{
			Document:   r.mapper.ToEntity(&res.FAQDocument),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
