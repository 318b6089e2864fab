package mapper

import (
	"encoding/json"

	"store-assistant-be/internal/entity"
	"store-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type FAQDocumentMapper struct{}

func NewFAQDocumentMapper() *FAQDocumentMapper {
	return &FAQDocumentMapper{}
}

func (m *FAQDocumentMapper) ToEntity(d *model.FAQDocument) *entity.FAQDocument {
	if d == nil {
		return nil
	}
	var metadata map[string]interface{}
	_ = json.Unmarshal(d.Metadata, &metadata)
	return &entity.FAQDocument{
		Id:        d.Id,
		Question:  d.Question,
		Answer:    d.Answer,
		Metadata:  metadata,
		Embedding: d.Embedding.Slice(),
		CreatedAt: d.CreatedAt,
	}
}

func (m *FAQDocumentMapper) ToModel(d *entity.FAQDocument) *model.FAQDocument {
	if d == nil {
		return nil
	}
	metadata, _ := json.Marshal(d.Metadata)
	return &model.FAQDocument{
		Id:        d.Id,
		Question:  d.Question,
		Answer:    d.Answer,
		Metadata:  metadata,
		Embedding: pgvector.NewVector(d.Embedding),
		CreatedAt: d.CreatedAt,
	}
}
