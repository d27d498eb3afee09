// Package analyze streams AI analysis over the exported field text.
// Analysis is read-only consumption of the store's export: no provider
// ever mutates the field store, so cancelling mid-stream cannot corrupt it.
package analyze

import (
	"context"
	"fmt"
)

// Chunk is one incremental fragment of analysis output.
type Chunk struct {
	Content string
}

// Stream is an open analysis response. Next advances to the next fragment;
// when it returns false, Err reports why the stream ended (nil on a normal
// terminator). Close releases the underlying connection.
type Stream interface {
	Next() bool
	Current() Chunk
	Err() error
	Close() error
}

// Analyzer produces a streaming analysis of exported field text.
type Analyzer interface {
	AnalyzeStream(ctx context.Context, text string, opts ...Option) (Stream, error)
}

// Options holds analysis request options.
type Options struct {
	Model        string
	SystemPrompt string
	Temperature  float64
}

// Option mutates analysis Options.
type Option func(*Options)

// DefaultOptions returns the default analysis options.
func DefaultOptions() *Options {
	return &Options{
		Model:        "gpt-4o",
		SystemPrompt: "You are a medical record formatter.",
	}
}

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

// WithSystemPrompt overrides the system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(o *Options) { o.SystemPrompt = prompt }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = t }
}

// BuildPrompt wraps exported field text in the analysis prompt.
func BuildPrompt(text string) string {
	return fmt.Sprintf(`based on the scanned ocr text, form a human readable person medical record in two column

OCR Text:
%s`, text)
}

// Drain consumes a stream, invoking onFragment for every fragment, and
// returns the accumulated text. When ctx is cancelled mid-stream the
// last-accumulated partial text is returned together with a cancellation
// error, so the caller can keep the partial result visible.
func Drain(ctx context.Context, stream Stream, onFragment func(string)) (string, error) {
	defer stream.Close()

	var accumulated string
	for stream.Next() {
		fragment := stream.Current().Content
		accumulated += fragment
		if onFragment != nil {
			onFragment(fragment)
		}

		select {
		case <-ctx.Done():
			return accumulated, analyzeErrors.NewWithCause(ErrAnalysisAborted, ctx.Err())
		default:
		}
	}

	if err := stream.Err(); err != nil {
		if ctx.Err() != nil {
			return accumulated, analyzeErrors.NewWithCause(ErrAnalysisAborted, ctx.Err())
		}
		return accumulated, analyzeErrors.NewWithCause(ErrStreamFailed, err)
	}
	return accumulated, nil
}
