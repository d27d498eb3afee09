// Package analyzesse streams chat-completion analysis from any
// OpenAI-compatible endpoint, decoding the wire protocol directly: each
// response line is blank, "data: [DONE]", or "data: <json>" carrying
// choices[0].delta.content. Anything else is ignored, and a malformed JSON
// chunk is logged and skipped without aborting the remaining stream.
package analyzesse

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wesleysanjose/ocr/pkg/analyze"
	"github.com/wesleysanjose/ocr/pkg/logx"
)

const (
	dataPrefix     = "data: "
	doneMarker     = "[DONE]"
	completionPath = "/chat/completions"

	// OCR pages produce long single-line fragments; the default bufio
	// scanner limit of 64KiB is not enough.
	maxLineBytes = 1024 * 1024
)

// Provider implements analyze.Analyzer against an OpenAI-compatible HTTP
// endpoint, e.g. a self-hosted inference server.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewProvider creates a provider for the given base URL and API key.
func NewProvider(baseURL, apiKey string) *Provider {
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
}

type chunkPayload struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// AnalyzeStream opens a streaming chat-completion request over text.
func (p *Provider) AnalyzeStream(ctx context.Context, text string, opts ...analyze.Option) (analyze.Stream, error) {
	if p.baseURL == "" {
		return nil, sseErrors.New(ErrMissingEndpoint)
	}
	if strings.TrimSpace(text) == "" {
		return nil, sseErrors.New(ErrEmptyInput)
	}

	options := analyze.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	body, err := json.Marshal(chatRequest{
		Model: options.Model,
		Messages: []chatMessage{
			{Role: "system", Content: options.SystemPrompt},
			{Role: "user", Content: analyze.BuildPrompt(text)},
		},
		Stream:      true,
		Temperature: options.Temperature,
	})
	if err != nil {
		return nil, sseErrors.NewWithCause(ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+completionPath, bytes.NewReader(body))
	if err != nil {
		return nil, sseErrors.NewWithCause(ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, sseErrors.NewWithCause(ErrRequestFailed, err).
			WithDetail("endpoint", p.baseURL)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, sseErrors.New(ErrBadStatus).
			WithDetail("status", resp.StatusCode).
			WithDetail("model", options.Model)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	return &sseStream{body: resp.Body, scanner: scanner}, nil
}

// sseStream decodes data: lines into analysis chunks.
type sseStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	current analyze.Chunk
	done    bool
	err     error
}

func (s *sseStream) Next() bool {
	if s.done {
		return false
	}

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}

		payload := strings.TrimPrefix(line, dataPrefix)
		if payload == doneMarker {
			s.done = true
			return false
		}

		var chunk chunkPayload
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			logx.WithError(err).Warn("skipping malformed analysis chunk")
			continue
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}

		s.current = analyze.Chunk{Content: chunk.Choices[0].Delta.Content}
		return true
	}

	s.done = true
	s.err = s.scanner.Err()
	return false
}

func (s *sseStream) Current() analyze.Chunk {
	return s.current
}

func (s *sseStream) Err() error {
	return s.err
}

func (s *sseStream) Close() error {
	return s.body.Close()
}
