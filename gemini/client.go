package gemini

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/genai"

	"github.com/fwojciec/fold"
)

// Client produces fold event feeds from the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID. Default is gemini-3.1-pro-preview.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// New creates a new Gemini [Client] with the given API key and
// options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c := &Client{
		client: gc,
		model:  defaultModel,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Feed returns a FeedFunc streaming one prompt through the model with
// thought summaries enabled. Thought text arriving after a function
// call is flagged as a new phase, since Gemini emits function calls
// last within a response step.
func (c *Client) Feed(prompt string) fold.FeedFunc {
	return func(ctx context.Context, onEvent func(fold.Event)) error {
		onEvent(fold.EventTurnStarted{})

		contents := []*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}}
		config := &genai.GenerateContentConfig{
			ThinkingConfig: &genai.ThinkingConfig{
				IncludeThoughts: true,
			},
		}

		iter := c.client.Models.GenerateContentStream(ctx, c.model, contents, config)
		if err := convertStream(iter, onEvent); err != nil {
			return err
		}

		onEvent(fold.EventTurnEnded{})
		return nil
	}
}

// convertStream translates streamed response parts into fold events.
func convertStream(it iter.Seq2[*genai.GenerateContentResponse, error], onEvent func(fold.Event)) error {
	sawToolCall := false
	for resp, err := range it {
		if err != nil {
			return fmt.Errorf("gemini: %w", err)
		}
		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				switch {
				case part.FunctionCall != nil:
					onEvent(fold.EventToolCallStarted{Name: part.FunctionCall.Name})
					sawToolCall = true
				case part.Thought && part.Text != "":
					onEvent(fold.EventThoughtText{Text: part.Text, NewPhase: sawToolCall})
					sawToolCall = false
				}
			}
		}
	}
	return nil
}
