// Package analyzeopenai implements the analysis provider on the official
// OpenAI SDK. Use it when talking to api.openai.com; for self-hosted
// OpenAI-compatible endpoints prefer analyzesse, which decodes the wire
// protocol directly.
package analyzeopenai

import (
	"context"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/wesleysanjose/ocr/pkg/analyze"
)

// Provider implements analyze.Analyzer via the OpenAI SDK.
type Provider struct {
	client openai.Client
	apiKey string
}

// NewProvider creates a new OpenAI-backed provider. An empty apiKey falls
// back to the OPENAI_API_KEY environment variable.
func NewProvider(apiKey string, opts ...option.RequestOption) *Provider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Provider{
		client: openai.NewClient(options...),
		apiKey: apiKey,
	}
}

// AnalyzeStream opens a streaming chat completion over the exported text.
func (p *Provider) AnalyzeStream(ctx context.Context, text string, opts ...analyze.Option) (analyze.Stream, error) {
	if p.apiKey == "" {
		return nil, errorRegistry.New(ErrMissingAPIKey)
	}
	if strings.TrimSpace(text) == "" {
		return nil, errorRegistry.New(ErrEmptyInput)
	}

	options := analyze.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(options.SystemPrompt),
			openai.UserMessage(analyze.BuildPrompt(text)),
		},
		Model: options.Model,
	}
	if options.Temperature != 0 {
		params.Temperature = openai.Float(options.Temperature)
	}

	sseStream := p.client.Chat.Completions.NewStreaming(ctx, params)
	return &openAIStream{stream: sseStream}, nil
}

// openAIStream adapts the SDK stream to analyze.Stream.
type openAIStream struct {
	stream interface {
		Next() bool
		Current() openai.ChatCompletionChunk
		Err() error
		Close() error
	}
	current analyze.Chunk
}

func (s *openAIStream) Next() bool {
	for s.stream.Next() {
		chunk := s.stream.Current()
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		s.current = analyze.Chunk{Content: chunk.Choices[0].Delta.Content}
		return true
	}
	return false
}

func (s *openAIStream) Current() analyze.Chunk {
	return s.current
}

func (s *openAIStream) Err() error {
	if err := s.stream.Err(); err != nil {
		return errorRegistry.NewWithCause(ErrAPIRequest, err)
	}
	return nil
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}
