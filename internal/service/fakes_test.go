package service

import (
	"context"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/sayedabdulkarim/sarim-ai/internal/llm"
)

// stubEmbedder routes texts to fixed vectors by keyword so tests control
// similarity scores without a real embedding model.
type stubEmbedder struct {
	routes map[string][]float32
	def    []float32
	err    error
}

func newStubEmbedder() *stubEmbedder {
	return &stubEmbedder{
		routes: map[string][]float32{},
		def:    []float32{0, 0, 1},
	}
}

func (e *stubEmbedder) route(keyword string, v []float32) { e.routes[keyword] = v }

func (e *stubEmbedder) Dimension() int { return 3 }

func (e *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.def
		for kw, v := range e.routes {
			if strings.Contains(strings.ToLower(t), strings.ToLower(kw)) {
				out[i] = v
				break
			}
		}
	}
	return out, nil
}

// fakeBackend records requests and serves canned output; its streams track
// whether the provider connection was released.
type fakeBackend struct {
	mu       sync.Mutex
	answer   string
	err      error
	requests []llm.Request
	streams  []*fakeStream
}

func (b *fakeBackend) lastRequest() llm.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[len(b.requests)-1]
}

func (b *fakeBackend) Generate(_ context.Context, req llm.Request) (string, error) {
	b.mu.Lock()
	b.requests = append(b.requests, req)
	b.mu.Unlock()
	if b.err != nil {
		return "", b.err
	}
	return b.answer, nil
}

func (b *fakeBackend) GenerateStream(_ context.Context, req llm.Request) (llm.Stream, error) {
	b.mu.Lock()
	b.requests = append(b.requests, req)
	b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	s := &fakeStream{fragments: strings.SplitAfter(b.answer, " ")}
	b.mu.Lock()
	b.streams = append(b.streams, s)
	b.mu.Unlock()
	return s, nil
}

type fakeStream struct {
	fragments []string
	pos       int
	closed    bool
}

func (s *fakeStream) Recv() (string, error) {
	if s.closed || s.pos >= len(s.fragments) {
		return "", io.EOF
	}
	f := s.fragments[s.pos]
	s.pos++
	return f, nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

func testLogger() *zap.Logger { return zap.NewNop() }
