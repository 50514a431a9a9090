// Package moderation screens chat content before it reaches the
// assistant: an NSFW check at sentence granularity and a topic
// restriction against a fixed allow-list.
package moderation

import (
	"context"
	"fmt"
	"strings"

	relay_errors "ugandapi-chat/pkg/errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// NSFWThreshold is the fixed confidence above which a sentence is
// rejected.
const NSFWThreshold = 0.8

// ValidTopics is the fixed allow-list of domain topics.
var ValidTopics = []string{
	"uganda", "farm", "planting", "crops",
	"plant", "buyanga", "mbale", "namutumbas",
}

const topicInstructions = `You are a strict topic classifier for an agricultural advice service.
Decide whether the user's message is about at least one of these topics: %s.
Answer with exactly one word: "valid" if it is, "invalid" if it is not.`

// Guard validates content. A nil return means the content may be
// forwarded to the assistant. A rejection wraps ErrContentRejected;
// any other error is a transport failure.
type Guard interface {
	Validate(ctx context.Context, content string) error
}

// OpenAIGuard runs both checks against the OpenAI API.
type OpenAIGuard struct {
	client      *openai.Client
	topicModel  string
	validTopics []string
}

type Config struct {
	APIKey     string
	BaseURL    string
	TopicModel string
}

func NewOpenAIGuard(cfg Config) *OpenAIGuard {
	var opts []option.RequestOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)
	return &OpenAIGuard{
		client:      &client,
		topicModel:  cfg.TopicModel,
		validTopics: ValidTopics,
	}
}

func (g *OpenAIGuard) Validate(ctx context.Context, content string) error {
	if err := g.checkNSFW(ctx, content); err != nil {
		return err
	}
	return g.checkTopic(ctx, content)
}

// checkNSFW moderates each sentence separately and rejects if any
// sentence scores above the threshold.
func (g *OpenAIGuard) checkNSFW(ctx context.Context, content string) error {
	sentences := SplitSentences(content)
	if len(sentences) == 0 {
		return nil
	}

	resp, err := g.client.Moderations.New(ctx, openai.ModerationNewParams{
		Input: openai.ModerationNewParamsInputUnion{
			OfModerationNewsInputArray: sentences,
		},
	})
	if err != nil {
		return fmt.Errorf("moderation request: %w", err)
	}

	for i, result := range resp.Results {
		if i >= len(sentences) {
			break
		}
		if result.CategoryScores.Sexual >= NSFWThreshold {
			return fmt.Errorf("%w: NSFW text detected in sentence: %q",
				relay_errors.ErrContentRejected, sentences[i])
		}
	}
	return nil
}

// checkTopic asks the classifier model whether the content falls inside
// the allow-list.
func (g *OpenAIGuard) checkTopic(ctx context.Context, content string) error {
	instructions := fmt.Sprintf(topicInstructions, strings.Join(g.validTopics, ", "))

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instructions),
			openai.UserMessage(content),
		},
		Model: g.topicModel,
	})
	if err != nil {
		return fmt.Errorf("topic check request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("topic check returned no choices")
	}

	verdict := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	if !strings.HasPrefix(verdict, "valid") {
		return fmt.Errorf("%w: message must be about one of the following topics: %s",
			relay_errors.ErrContentRejected, strings.Join(g.validTopics, ", "))
	}
	return nil
}

// SplitSentences breaks content on sentence terminators. Moderation runs
// per sentence so a single bad sentence is enough to reject.
func SplitSentences(content string) []string {
	var sentences []string
	var sb strings.Builder
	for _, r := range content {
		sb.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(sb.String()); s != "" {
				sentences = append(sentences, s)
			}
			sb.Reset()
		}
	}
	if s := strings.TrimSpace(sb.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
