package model

import "time"

// Chunk is a bounded unit of indexed profile text.
type Chunk struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Source   string `json:"source"`
	Sequence int    `json:"sequence"`
}

// SearchResult pairs a chunk with its cosine similarity to the query.
// Score is 1 - cosine distance, so it lies in [-1, 1].
type SearchResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message within a conversation.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Source is a truncated chunk preview returned alongside an answer for UI attribution.
type Source struct {
	Content   string  `json:"content"`
	Relevance float64 `json:"relevance"`
}

type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type ChatResponse struct {
	Answer         string   `json:"answer"`
	ConversationID string   `json:"conversation_id"`
	Sources        []Source `json:"sources"`
}

type IndexRequest struct {
	SourcePath string `json:"source_path,omitempty"`
}
