// Package llm abstracts text-generation providers behind one Backend
// interface with single-shot and streaming modes.
package llm

import (
	"context"
	"fmt"
)

// Request carries a single generation call. It is a pure value and is not
// retained after the call completes.
type Request struct {
	Prompt            string
	Context           string
	Temperature       float32
	MaxNewTokens      int
	TopP              float32
	RepetitionPenalty float32
}

// Stream is a lazy, finite, non-restartable sequence of text fragments.
// Recv returns io.EOF after the last fragment. Close releases the
// underlying provider connection and must be safe to call at any point,
// including before the stream is drained.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// Backend is a text-generation provider. Implementations construct the
// final prompt themselves, so callers pass the raw user message and
// retrieval context.
type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)
	GenerateStream(ctx context.Context, req Request) (Stream, error)
}

// UnavailableError means the provider failed (timeout, capacity, malformed
// response). The orchestrator decides whether to surface a transient
// message; backends never do.
type UnavailableError struct {
	Provider string
	Code     string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("generation unavailable (%s/%s): %v", e.Provider, e.Code, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }
