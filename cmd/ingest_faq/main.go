package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"store-assistant-be/internal/config"
	"store-assistant-be/internal/entity"
	"store-assistant-be/internal/repository/implementation"
	"store-assistant-be/pkg/database"
	"store-assistant-be/pkg/embedding"
)

// Loads an enriched FAQ file into the vector store. Each document carries
// an answer plus phrasing variations of its question; every variation is
// embedded and stored as its own searchable row pointing at the shared
// answer.

type faqDocument struct {
	Question   string                 `json:"question"`
	Answer     string                 `json:"answer"`
	Variations []string               `json:"variations"`
	Metadata   map[string]interface{} `json:"metadata"`
}

func main() {
	path := flag.String("file", "faq_enriched.json", "path to the enriched FAQ JSON file")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("Error: Failed to read %s: %v", *path, err)
	}

	var docs []faqDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		log.Fatalf("Error: Failed to parse %s: %v", *path, err)
	}
	log.Printf("Loaded %d documents from %s", len(docs), *path)

	var embedder embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embedder = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	} else {
		embedder = embedding.NewOpenAIProvider(cfg.Ai.OpenAIBaseURL, cfg.Ai.OpenAIAPIKey, cfg.Ai.EmbeddingModel)
	}

	repo := implementation.NewFAQDocumentRepository(db)
	ctx := context.Background()

	total := 0
	for _, doc := range docs {
		questions := doc.Variations
		if doc.Question != "" {
			questions = append([]string{doc.Question}, questions...)
		}
		if len(questions) == 0 {
			log.Printf("Warn: Skipping document with no questions (answer: %.40q)", doc.Answer)
			continue
		}

		vectors, err := embedder.Embed(ctx, questions)
		if err != nil {
			log.Fatalf("Error: Failed to embed variations: %v", err)
		}

		rows := make([]*entity.FAQDocument, 0, len(questions))
		for i, question := range questions {
			rows = append(rows, &entity.FAQDocument{
				Question:  question,
				Answer:    doc.Answer,
				Metadata:  doc.Metadata,
				Embedding: vectors[i],
			})
		}

		if err := repo.CreateBulk(ctx, rows); err != nil {
			log.Fatalf("Error: Failed to insert documents: %v", err)
		}
		total += len(rows)
	}

	log.Printf("Ingested %d rows", total)
}
