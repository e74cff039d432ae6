package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sayedabdulkarim/sarim-ai/internal/service"
	"github.com/sayedabdulkarim/sarim-ai/internal/store"
)

func RegisterRoutes(app *fiber.App, chatbot *service.Chatbot, indexer *service.Indexer, s store.VectorStore, sourceTag, resumePath string, log *zap.Logger) {
	h := NewHandler(chatbot, indexer, s, sourceTag, resumePath, log)

	app.Get("/api/health", h.Health)
	app.Post("/api/chat", h.Chat)
	app.Post("/api/chat/stream", h.ChatStream)
	app.Post("/api/index", h.Index)
	app.Get("/api/conversations/:id", h.History)
	app.Delete("/api/conversations/:id", h.ClearConversation)
}
