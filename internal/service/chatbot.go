package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sayedabdulkarim/sarim-ai/internal/conversation"
	"github.com/sayedabdulkarim/sarim-ai/internal/corrector"
	"github.com/sayedabdulkarim/sarim-ai/internal/llm"
	"github.com/sayedabdulkarim/sarim-ai/internal/model"
	"github.com/sayedabdulkarim/sarim-ai/internal/util"
)

const (
	topK             = 3
	relevanceFloor   = 0.5
	contextSeparator = "\n---\n"
	maxSources       = 2
	sourcePreview    = 200

	temperature       = 0.7
	maxNewTokens      = 256
	topP              = 0.9
	repetitionPenalty = 1.1

	apology = "I apologize, but I'm having trouble processing your request. Please try again."
)

// Chatbot orchestrates one turn: retrieve context, generate, correct
// facts, record history.
type Chatbot struct {
	retriever *Retriever
	backend   llm.Backend
	corrector *corrector.Corrector
	history   conversation.Store
	log       *zap.Logger
}

func NewChatbot(r *Retriever, b llm.Backend, c *corrector.Corrector, h conversation.Store, log *zap.Logger) *Chatbot {
	return &Chatbot{retriever: r, backend: b, corrector: c, history: h, log: log}
}

type ChatResult struct {
	Answer         string
	ConversationID string
	Sources        []model.Source
}

// History returns the recorded turns of a conversation.
func (c *Chatbot) History(id string) ([]model.Turn, error) {
	return c.history.History(id)
}

// Clear forgets a conversation; the id becomes unknown again.
func (c *Chatbot) Clear(id string) error {
	return c.history.Clear(id)
}

// GenerateResponse answers one user message. On any internal failure the
// caller still gets natural-language text: a fixed apology with empty
// sources, and history is left untouched.
func (c *Chatbot) GenerateResponse(ctx context.Context, message, conversationID string) *ChatResult {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	results := relevant(c.retriever.Search(ctx, message, topK))

	answer, err := c.backend.Generate(ctx, request(message, buildContext(results)))
	if err != nil {
		c.log.Error("generation failed", zap.String("conversation", conversationID), zap.Error(err))
		return &ChatResult{Answer: apology, ConversationID: conversationID, Sources: []model.Source{}}
	}
	answer = c.corrector.Correct(answer)

	now := time.Now()
	c.history.Append(conversationID,
		model.Turn{Role: model.RoleUser, Content: message, Timestamp: now},
		model.Turn{Role: model.RoleAssistant, Content: answer, Timestamp: now},
	)

	return &ChatResult{Answer: answer, ConversationID: conversationID, Sources: sources(results)}
}

// GenerateStream answers one user message as a lazy sequence of corrected
// fragments. History is not updated by this path: persisting the answer
// would require buffering every fragment. Closing the returned stream
// releases the provider connection even when it has not been drained.
func (c *Chatbot) GenerateStream(ctx context.Context, message, conversationID string) (llm.Stream, string, error) {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	results := relevant(c.retriever.Search(ctx, message, topK))

	s, err := c.backend.GenerateStream(ctx, request(message, buildContext(results)))
	if err != nil {
		c.log.Error("stream setup failed", zap.String("conversation", conversationID), zap.Error(err))
		return nil, conversationID, err
	}
	return &correctedStream{inner: s, corrector: c.corrector}, conversationID, nil
}

func request(message, context string) llm.Request {
	return llm.Request{
		Prompt:            message,
		Context:           context,
		Temperature:       temperature,
		MaxNewTokens:      maxNewTokens,
		TopP:              topP,
		RepetitionPenalty: repetitionPenalty,
	}
}

// relevant drops results at or below the relevance floor so low-similarity
// chunks never leak into the prompt.
func relevant(results []model.SearchResult) []model.SearchResult {
	kept := results[:0:0]
	for _, r := range results {
		if r.Score > relevanceFloor {
			kept = append(kept, r)
		}
	}
	return kept
}

func buildContext(results []model.SearchResult) string {
	if len(results) == 0 {
		return ""
	}
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.Chunk.Content
	}
	return strings.Join(parts, contextSeparator)
}

func sources(results []model.SearchResult) []model.Source {
	out := make([]model.Source, 0, maxSources)
	for _, r := range results {
		if len(out) == maxSources {
			break
		}
		out = append(out, model.Source{
			Content:   util.Preview(r.Chunk.Content, sourcePreview),
			Relevance: r.Score,
		})
	}
	return out
}

// correctedStream applies the streaming-safe fact correction to every
// fragment before handing it on.
type correctedStream struct {
	inner     llm.Stream
	corrector *corrector.Corrector
}

func (s *correctedStream) Recv() (string, error) {
	frag, err := s.inner.Recv()
	if err != nil {
		return "", err
	}
	return s.corrector.CorrectFragment(frag), nil
}

func (s *correctedStream) Close() error { return s.inner.Close() }
