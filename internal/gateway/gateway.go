package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"kgchat/internal/config"
	"kgchat/internal/models"
)

// Fixed sampling parameters for every turn.
const (
	samplingTemperature float32 = 0.7
	maxOutputTokens             = 5000
)

// Gateway sends a composed message list to the configured chat model and
// returns the generated reply text. The remote call is the only
// unbounded-latency operation in a turn, so it always runs under a
// timeout.
type Gateway struct {
	chat    model.BaseChatModel
	timeout time.Duration
}

// New builds the gateway for the provider selected in the configuration.
// DeepSeek exposes an OpenAI-compatible chat completions endpoint and
// shares the openai model implementation.
func New(ctx context.Context, cfg *config.Config) (*Gateway, error) {
	provider := cfg.BasicConfig.Provider
	provCfg, ok := cfg.Providers[provider]
	if !ok {
		return nil, fmt.Errorf("provider %s not configured", provider)
	}

	var (
		chatModel model.BaseChatModel
		err       error
	)
	temperature := samplingTemperature
	maxTokens := maxOutputTokens

	switch provider {
	case "deepseek", "openai":
		chatModel, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:     provCfg.BaseURL,
			Model:       provCfg.Model,
			APIKey:      provCfg.APIKey,
			Temperature: &temperature,
			MaxTokens:   &maxTokens,
		})
	case "gemini":
		var client *genai.Client
		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: provCfg.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		chatModel, err = gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  provCfg.Model,
		})
	case "claude":
		var baseURLPtr *string
		if provCfg.BaseURL != "" {
			baseURLPtr = &provCfg.BaseURL
		}
		chatModel, err = claude.NewChatModel(ctx, &claude.Config{
			APIKey:      provCfg.APIKey,
			Model:       provCfg.Model,
			BaseURL:     baseURLPtr,
			MaxTokens:   maxTokens,
			Temperature: &temperature,
		})
	default:
		return nil, fmt.Errorf("invalid provider: %s", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}

	timeout := time.Duration(cfg.BasicConfig.GatewayTimeoutSec) * time.Second
	return &Gateway{chat: chatModel, timeout: timeout}, nil
}

// Send generates one reply for the ordered message list. Timeouts,
// transport problems and malformed responses all surface as errors; the
// caller must not mutate any state when Send fails.
func (g *Gateway) Send(ctx context.Context, messages []models.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.chat.Generate(ctx, toSchema(messages))
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return resp.Content, nil
}

func toSchema(messages []models.Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		var role schema.RoleType
		switch msg.Role {
		case models.RoleSystem:
			role = schema.System
		case models.RoleAssistant:
			role = schema.Assistant
		default:
			role = schema.User
		}
		out = append(out, &schema.Message{Role: role, Content: msg.Content})
	}
	return out
}
