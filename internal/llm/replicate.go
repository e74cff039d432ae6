package llm

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/replicate/replicate-go"
)

const ProviderReplicate = "replicate"

// ReplicateBackend runs a hosted model on Replicate's predictions API.
type ReplicateBackend struct {
	client  *replicate.Client
	owner   string
	name    string
	version string
	prompts PromptBuilder
}

// NewReplicateBackend accepts a model identifier of the form
// "owner/name" or "owner/name:version".
func NewReplicateBackend(token, model string, prompts PromptBuilder) (*ReplicateBackend, error) {
	client, err := replicate.NewClient(replicate.WithToken(token))
	if err != nil {
		return nil, fmt.Errorf("replicate client: %w", err)
	}
	id, version, _ := strings.Cut(model, ":")
	owner, name, ok := strings.Cut(id, "/")
	if !ok {
		return nil, fmt.Errorf("replicate model %q: want owner/name[:version]", model)
	}
	return &ReplicateBackend{client: client, owner: owner, name: name, version: version, prompts: prompts}, nil
}

func (b *ReplicateBackend) input(req Request) replicate.PredictionInput {
	return replicate.PredictionInput{
		"prompt":             b.prompts.Build(req),
		"temperature":        req.Temperature,
		"max_new_tokens":     req.MaxNewTokens,
		"top_p":              req.TopP,
		"repetition_penalty": req.RepetitionPenalty,
	}
}

func (b *ReplicateBackend) createPrediction(ctx context.Context, req Request, stream bool) (*replicate.Prediction, error) {
	if b.version != "" {
		return b.client.CreatePrediction(ctx, b.version, b.input(req), nil, stream)
	}
	return b.client.CreatePredictionWithModel(ctx, b.owner, b.name, b.input(req), nil, stream)
}

func (b *ReplicateBackend) Generate(ctx context.Context, req Request) (string, error) {
	prediction, err := b.createPrediction(ctx, req, false)
	if err != nil {
		return "", b.unavailable("create_failed", err)
	}
	if err := b.client.Wait(ctx, prediction); err != nil {
		return "", b.unavailable("wait_failed", err)
	}
	if prediction.Status != replicate.Succeeded {
		return "", b.unavailable(string(prediction.Status), fmt.Errorf("prediction %s", prediction.Status))
	}
	return b.prompts.StripMarker(joinOutput(prediction.Output)), nil
}

func (b *ReplicateBackend) GenerateStream(ctx context.Context, req Request) (Stream, error) {
	prediction, err := b.createPrediction(ctx, req, true)
	if err != nil {
		return nil, b.unavailable("create_failed", err)
	}
	streamCtx, cancel := context.WithCancel(ctx)
	events, errs := b.client.StreamPrediction(streamCtx, prediction)
	return &replicateStream{backend: b, events: events, errs: errs, cancel: cancel}, nil
}

func (b *ReplicateBackend) unavailable(code string, err error) error {
	return &UnavailableError{Provider: ProviderReplicate, Code: code, Err: err}
}

// joinOutput flattens the prediction output, which Replicate's language
// models return as a sequence of string tokens.
func joinOutput(out replicate.PredictionOutput) string {
	switch v := out.(type) {
	case string:
		return v
	case []interface{}:
		var b strings.Builder
		for _, part := range v {
			if s, ok := part.(string); ok {
				b.WriteString(s)
			}
		}
		return b.String()
	default:
		return ""
	}
}

type replicateStream struct {
	backend *ReplicateBackend
	events  <-chan replicate.SSEEvent
	errs    <-chan error
	cancel  context.CancelFunc
	done    bool
}

func (s *replicateStream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.done = true
				return "", io.EOF
			}
			switch ev.Type {
			case "output":
				return ev.Data, nil
			case "done":
				s.done = true
				return "", io.EOF
			default:
				continue
			}
		case err, ok := <-s.errs:
			if !ok {
				s.errs = nil
				continue
			}
			s.done = true
			return "", s.backend.unavailable("stream_failed", err)
		}
	}
}

// Close cancels the SSE subscription; the provider connection is released
// even when the stream has not been drained.
func (s *replicateStream) Close() error {
	s.done = true
	s.cancel()
	return nil
}
