package clients

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spacesedan/sentidesk/config"
)

const (
	openAIRequestTimeout = 60 * time.Second

	openAIPolarityPrompt = `You score the sentiment of customer support messages.
Reply with a single number between -1 and 1 and nothing else.
-1 is extremely negative, 0 is neutral, 1 is extremely positive.`
)

// OpenAIClient scores polarity with a chat completion model.
type OpenAIClient struct {
	Client *openai.Client
	Model  string
}

func NewOpenAIClient(cfg config.AnalyzerConfig) *OpenAIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = openAIRequestTimeout
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.OpenAIKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(2),
	)
	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.String("model", cfg.OpenAIModel),
		slog.Duration("timeout", timeout))

	return &OpenAIClient{Client: client, Model: cfg.OpenAIModel}
}

// Polarity implements sentiment.Analyzer.
func (o *OpenAIClient) Polarity(ctx context.Context, text string) (float64, error) {
	chatCompletion, err := o.Client.Chat.Completions.New(ctx,
		openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(openAIPolarityPrompt),
				openai.UserMessage(text),
			}),
			Model:       openai.F(openai.ChatModel(o.Model)),
			Temperature: openai.Float(0),
		})
	if err != nil {
		return 0, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(chatCompletion.Choices) == 0 {
		return 0, fmt.Errorf("chat completion returned no choices")
	}

	return ParsePolarity(chatCompletion.Choices[0].Message.Content)
}

// ParsePolarity reads the number out of a model reply and clamps it to [-1, 1].
func ParsePolarity(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.Trim(strings.TrimSpace(cleaned), `"'.`)

	p, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected model reply %q: %w", raw, err)
	}
	return max(-1, min(1, p)), nil
}
