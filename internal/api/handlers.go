package api

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sayedabdulkarim/sarim-ai/internal/conversation"
	"github.com/sayedabdulkarim/sarim-ai/internal/model"
	"github.com/sayedabdulkarim/sarim-ai/internal/service"
	"github.com/sayedabdulkarim/sarim-ai/internal/store"
)

// Handler holds the handler dependencies.
type Handler struct {
	chatbot    *service.Chatbot
	indexer    *service.Indexer
	store      store.VectorStore
	sourceTag  string
	resumePath string
	log        *zap.Logger
}

func NewHandler(chatbot *service.Chatbot, indexer *service.Indexer, s store.VectorStore, sourceTag, resumePath string, log *zap.Logger) *Handler {
	return &Handler{
		chatbot:    chatbot,
		indexer:    indexer,
		store:      s,
		sourceTag:  sourceTag,
		resumePath: resumePath,
		log:        log,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	count, err := h.store.Count(c.UserContext())
	if err != nil {
		h.log.Warn("index count unavailable", zap.Error(err))
		count = 0
	}
	return c.JSON(fiber.Map{
		"status":               "healthy",
		"index_document_count": count,
	})
}

// Chat answers a message in one shot. Generation and retrieval faults are
// absorbed by the orchestrator, so this never returns a 5xx for them.
func (h *Handler) Chat(c *fiber.Ctx) error {
	var req model.ChatRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request, expected JSON: {\"message\":\"...\"}"})
	}

	res := h.chatbot.GenerateResponse(c.UserContext(), req.Message, req.ConversationID)
	return c.JSON(model.ChatResponse{
		Answer:         res.Answer,
		ConversationID: res.ConversationID,
		Sources:        res.Sources,
	})
}

// ChatStream answers a message as server-sent events: data: {"chunk":...}
// per fragment, one data: {"error":...} before close on internal failure.
func (h *Handler) ChatStream(c *fiber.Ctx) error {
	var req model.ChatRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request, expected JSON: {\"message\":\"...\"}"})
	}

	stream, convID, err := h.chatbot.GenerateStream(c.UserContext(), req.Message, req.ConversationID)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set("X-Conversation-Id", convID)

	if err != nil {
		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			writeEvent(w, fiber.Map{"error": "generation is temporarily unavailable"})
		})
		return nil
	}

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer stream.Close()
		for {
			frag, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				h.log.Error("stream interrupted", zap.String("conversation", convID), zap.Error(err))
				writeEvent(w, fiber.Map{"error": "generation was interrupted"})
				return
			}
			if frag == "" {
				continue
			}
			if !writeEvent(w, fiber.Map{"chunk": frag}) {
				// client went away; stop consuming the provider stream
				return
			}
		}
	})
	return nil
}

func writeEvent(w *bufio.Writer, payload fiber.Map) bool {
	data, err := json.Marshal(payload)
	if err != nil {
		return false
	}
	if _, err := w.WriteString("data: " + string(data) + "\n\n"); err != nil {
		return false
	}
	return w.Flush() == nil
}

// Index re-indexes the resume source. Unlike the chat endpoints, indexing
// failures surface explicitly.
func (h *Handler) Index(c *fiber.Ctx) error {
	var req model.IndexRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}
	path := req.SourcePath
	if path == "" {
		path = h.resumePath
	}

	count, err := h.indexer.Index(c.UserContext(), h.sourceTag, path)
	if err != nil {
		if errors.Is(err, service.ErrNoContent) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		h.log.Error("indexing failed", zap.String("path", path), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "indexing failed"})
	}
	return c.JSON(fiber.Map{"status": "success", "documents_indexed": count})
}

// History returns the turns of one conversation.
func (h *Handler) History(c *fiber.Ctx) error {
	id := c.Params("id")
	turns, err := h.chatbot.History(id)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "conversation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"conversation_id": id, "turns": turns})
}

// ClearConversation deletes a conversation's history.
func (h *Handler) ClearConversation(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.chatbot.Clear(id); err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "conversation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "cleared", "conversation_id": id})
}
