package bootstrap

import (
	"context"
	"log"
	"time"

	"store-assistant-be/internal/config"
	"store-assistant-be/internal/controller"
	"store-assistant-be/internal/pkg/logger"
	"store-assistant-be/internal/repository/implementation"
	"store-assistant-be/internal/repository/memory"
	"store-assistant-be/internal/service"
	"store-assistant-be/pkg/dialogue/faq"
	"store-assistant-be/pkg/dialogue/flow"
	"store-assistant-be/pkg/dialogue/format"
	"store-assistant-be/pkg/dialogue/intent"
	"store-assistant-be/pkg/dialogue/slot"
	"store-assistant-be/pkg/dialogue/tools"
	"store-assistant-be/pkg/embedding"
	"store-assistant-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIBaseURL, cfg.Ai.OpenAIAPIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	// LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Redis backs the confident-answer cache of the retrieval gate. A
	// missing Redis only disables caching, never the gate itself.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v (answer cache disabled)", err)
			rdb = nil
		}
	}

	// Repositories
	orderRepo := implementation.NewOrderRepository(db)
	faqRepo := implementation.NewFAQDocumentRepository(db)
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Dialogue.SessionTTLMinutes) * time.Minute)

	// Dialogue components
	publisherService := service.NewPublisherService(pubSub)
	dispatcher := tools.NewDispatcher(orderRepo, publisherService, sysLogger)
	classifier := intent.NewClassifier(llmProvider, sysLogger)
	extractor := slot.NewExtractor(llmProvider, sysLogger)
	flowManager := flow.NewManager(extractor, dispatcher, sysLogger)
	formatter := format.NewFormatter(llmProvider, sysLogger)
	gate := faq.NewGate(
		embeddingProvider,
		faqRepo,
		rdb,
		cfg.Dialogue.SimilarityFloor,
		cfg.Dialogue.RetrievalTopK,
		time.Duration(cfg.Dialogue.AnswerCacheTTLSecs)*time.Second,
		sysLogger,
	)

	assistantService := service.NewAssistantService(
		sessionRepo,
		gate,
		classifier,
		extractor,
		flowManager,
		dispatcher,
		formatter,
		llmProvider,
		cfg.Dialogue.MemoryCapacity,
		sysLogger,
	)

	consumerService := service.NewConsumerService(pubSub, sysLogger)

	chatController := controller.NewChatController(assistantService, sysLogger)

	return &Container{
		ChatController:  chatController,
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
