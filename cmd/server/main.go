package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/sayedabdulkarim/sarim-ai/internal/api"
	"github.com/sayedabdulkarim/sarim-ai/internal/chunker"
	"github.com/sayedabdulkarim/sarim-ai/internal/config"
	"github.com/sayedabdulkarim/sarim-ai/internal/conversation"
	"github.com/sayedabdulkarim/sarim-ai/internal/corrector"
	"github.com/sayedabdulkarim/sarim-ai/internal/embedding"
	"github.com/sayedabdulkarim/sarim-ai/internal/llm"
	"github.com/sayedabdulkarim/sarim-ai/internal/profile"
	"github.com/sayedabdulkarim/sarim-ai/internal/service"
	"github.com/sayedabdulkarim/sarim-ai/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	vectorStore, err := store.NewPgStore(cfg.PgConn, cfg.EmbedDim)
	if err != nil {
		logger.Fatal("open vector store", zap.Error(err))
	}

	oaiCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	oaiCfg.BaseURL = cfg.LLMBaseURL
	client := openai.NewClientWithConfig(oaiCfg)
	embedder := embedding.NewOpenAI(client, cfg.EmbedModel, cfg.EmbedDim)

	rec := profile.Load(cfg.ProfilePath)
	prompts := llm.NewPromptBuilder(rec)

	// backend chosen once at construction, never branched on per call
	var backend llm.Backend
	switch cfg.Backend {
	case llm.ProviderReplicate:
		backend, err = llm.NewReplicateBackend(cfg.ReplicateToken, cfg.ReplicateModel, prompts)
		if err != nil {
			logger.Fatal("replicate backend", zap.Error(err))
		}
	case llm.ProviderHosted:
		backend = llm.NewOpenAIBackend(client, cfg.ChatModel, prompts, llm.ProviderHosted)
	default:
		backend = llm.NewOpenAIBackend(client, cfg.ChatModel, prompts, llm.ProviderLocal)
	}

	splitter := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	indexer := service.NewIndexer(vectorStore, embedder, splitter, rec, logger)
	retriever := service.NewRetriever(vectorStore, embedder, logger)
	chatbot := service.NewChatbot(retriever, backend, corrector.New(rec), conversation.NewMemoryStore(), logger)

	app := fiber.New()
	api.RegisterRoutes(app, chatbot, indexer, vectorStore, cfg.SourceTag, cfg.ResumePath, logger)

	logger.Info("server started",
		zap.String("addr", cfg.ServerAddr),
		zap.String("backend", cfg.Backend))
	if err := app.Listen(cfg.ServerAddr); err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
}
