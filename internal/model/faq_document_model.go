package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type FAQDocument struct {
	Id        int64           `gorm:"primaryKey;autoIncrement"`
	Question  string          `gorm:"type:text;not null"`
	Answer    string          `gorm:"type:text;not null"`
	Metadata  datatypes.JSON  `gorm:"type:jsonb"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small dimensions
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (FAQDocument) TableName() string {
	return "faq_documents"
}
