package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

const (
	ProviderLocal  = "local"
	ProviderHosted = "hosted"
)

// OpenAIBackend speaks the OpenAI chat-completions API. With
// ProviderLocal it targets an in-process-adjacent server such as LM
// Studio, which does not stream; GenerateStream then word-splits the
// batch result. That fake stream is non-incremental: fragments arrive all
// at once, so callers must not assume token-level latency from it.
// With ProviderHosted it streams for real via the provider's SSE channel.
type OpenAIBackend struct {
	client   *openai.Client
	model    string
	prompts  PromptBuilder
	provider string
}

func NewOpenAIBackend(client *openai.Client, model string, prompts PromptBuilder, provider string) *OpenAIBackend {
	return &OpenAIBackend{client: client, model: model, prompts: prompts, provider: provider}
}

func (b *OpenAIBackend) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, b.completionRequest(req, false))
	if err != nil {
		return "", b.unavailable(err)
	}
	if len(resp.Choices) == 0 {
		return "", &UnavailableError{Provider: b.provider, Code: "empty_response", Err: fmt.Errorf("no choices returned")}
	}
	return b.prompts.StripMarker(resp.Choices[0].Message.Content), nil
}

func (b *OpenAIBackend) GenerateStream(ctx context.Context, req Request) (Stream, error) {
	if b.provider == ProviderLocal {
		text, err := b.Generate(ctx, req)
		if err != nil {
			return nil, err
		}
		return newWordStream(text), nil
	}
	s, err := b.client.CreateChatCompletionStream(ctx, b.completionRequest(req, true))
	if err != nil {
		return nil, b.unavailable(err)
	}
	return &openaiStream{inner: s, backend: b}, nil
}

func (b *OpenAIBackend) completionRequest(req Request, stream bool) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: b.prompts.Build(req)},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxNewTokens,
		TopP:        req.TopP,
		Stream:      stream,
	}
}

func (b *OpenAIBackend) unavailable(err error) error {
	code := "request_failed"
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code = fmt.Sprintf("http_%d", apiErr.HTTPStatusCode)
	}
	return &UnavailableError{Provider: b.provider, Code: code, Err: err}
}

type openaiStream struct {
	inner   *openai.ChatCompletionStream
	backend *OpenAIBackend
}

func (s *openaiStream) Recv() (string, error) {
	resp, err := s.inner.Recv()
	if errors.Is(err, io.EOF) {
		return "", io.EOF
	}
	if err != nil {
		return "", s.backend.unavailable(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Delta.Content, nil
}

func (s *openaiStream) Close() error { return s.inner.Close() }
