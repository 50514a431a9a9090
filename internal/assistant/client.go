// Package assistant wraps the OpenAI Assistants API: thread creation,
// message append, and streamed run consumption.
package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client drives one assistant turn at a time against a fixed assistant id.
type Client struct {
	client      *openai.Client
	assistantID string
}

type Config struct {
	APIKey      string
	BaseURL     string
	AssistantID string
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.AssistantID == "" {
		return nil, errors.New("assistant id is required")
	}

	var opts []option.RequestOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)
	return &Client{client: &client, assistantID: cfg.AssistantID}, nil
}

// CreateThread opens a fresh conversation thread on the assistant service.
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.client.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})
	if err != nil {
		return "", err
	}
	return thread.ID, nil
}

// AddUserMessage appends the user's text to the thread before a run.
func (c *Client) AddUserMessage(ctx context.Context, threadID, content string) error {
	_, err := c.client.Beta.Threads.Messages.New(ctx, threadID, openai.BetaThreadMessageNewParams{
		Role: "user",
		Content: openai.BetaThreadMessageNewParamsContentUnion{
			OfString: openai.String(content),
		},
	})
	return err
}

// Run executes the assistant on the thread and consumes the streamed
// output until completion, returning the concatenated reply with
// citation markers removed.
func (c *Client) Run(ctx context.Context, threadID string) (string, error) {
	stream := c.client.Beta.Threads.Runs.NewStreaming(ctx, threadID, openai.BetaThreadRunNewParams{
		AssistantID: c.assistantID,
	})

	var sb strings.Builder
	for stream.Next() {
		sb.WriteString(deltaText(stream.Current()))
	}
	if err := stream.Err(); err != nil {
		return "", err
	}

	return StripCitations(sb.String()), nil
}

// deltaText extracts the text fragments a single stream event contributes
// to the reply. Events other than message deltas contribute nothing.
func deltaText(event openai.AssistantStreamEventUnion) string {
	switch data := event.AsAny().(type) {
	case openai.AssistantStreamEventThreadMessageDelta:
		var sb strings.Builder
		for _, part := range data.Data.Delta.Content {
			sb.WriteString(part.Text.Value)
		}
		return sb.String()
	}
	return ""
}
