package generation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"storyverse-api/pkg/logger"
	"storyverse-api/pkg/metrics"
	"storyverse-api/pkg/tracer"
)

// 提供商调用参数固定
const (
	ProviderName      = "openai"
	ProviderBaseURL   = "https://api.openai.com/v1"
	ProviderModel     = "gpt-3.5-turbo"
	MaxTokens         = 2000
	Temperature       = float32(0.8)
	SystemInstruction = "You are a creative storytelling assistant that helps users write engaging stories."
)

// 生成类型，用于指标与日志
const (
	KindStory     = "story"
	KindEnhance   = "enhance"
	KindCharacter = "character"
)

// 兜底原因
const (
	reasonNotConfigured = "not_configured"
	reasonProviderError = "provider_error"
	reasonEmpty         = "empty_response"
)

var errEmptyResponse = errors.New("provider returned empty content")

// Gateway 生成网关
// chatModel 为 nil 表示未配置凭证，所有请求直接返回兜底结果
type Gateway struct {
	chatModel model.BaseChatModel
	modelName string
	template  einoprompt.ChatTemplate
}

// NewGateway 创建生成网关
func NewGateway(chatModel model.BaseChatModel, modelName string) *Gateway {
	if modelName == "" {
		modelName = ProviderModel
	}
	return &Gateway{
		chatModel: chatModel,
		modelName: modelName,
		template: einoprompt.FromMessages(
			schema.FString,
			schema.SystemMessage(SystemInstruction),
			schema.UserMessage("{prompt}"),
		),
	}
}

// Configured 是否接入了在线提供商
func (g *Gateway) Configured() bool {
	return g.chatModel != nil
}

// GenerateStory 生成故事正文
func (g *Gateway) GenerateStory(ctx context.Context, req StoryRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	prompt := BuildStoryPrompt(req)
	if text, ok := g.complete(ctx, KindStory, prompt); ok {
		return text, nil
	}
	return fallbackText(prompt), nil
}

// EnhanceStory 按润色类型改写故事
func (g *Gateway) EnhanceStory(ctx context.Context, content, enhancement string) (string, error) {
	req := EnhancementRequest{Content: content, Enhancement: enhancement}
	if err := req.Validate(); err != nil {
		return "", err
	}
	prompt := BuildEnhancementPrompt(content, enhancement)
	if text, ok := g.complete(ctx, KindEnhance, prompt); ok {
		return text, nil
	}
	return fallbackText(prompt), nil
}

// GenerateCharacter 生成角色档案
func (g *Gateway) GenerateCharacter(ctx context.Context, req CharacterRequest) (*CharacterProfile, error) {
	prompt := BuildCharacterPrompt(req)
	text, ok := g.complete(ctx, KindCharacter, prompt)
	if !ok {
		return FallbackCharacter(), nil
	}

	profile := ParseCharacterProfile(text)
	if profile.Name == "" {
		profile.Name = req.Name
	}
	return profile, nil
}

// complete 调用一次提供商，ok=false 时调用方使用兜底结果
func (g *Gateway) complete(ctx context.Context, kind, prompt string) (string, bool) {
	if g.chatModel == nil {
		metrics.GenerationFallbackTotal.WithLabelValues(kind, reasonNotConfigured).Inc()
		return "", false
	}

	ctx, span := tracer.Start(ctx, "generation.Gateway."+kind)
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", ProviderName),
		attribute.String("llm.model", g.modelName),
		attribute.Int("llm.prompt_length", len(prompt)),
	)

	ctx = callbacks.InitCallbacks(ctx, &callbacks.RunInfo{
		Name:      "generation." + kind,
		Type:      ProviderName,
		Component: components.ComponentOfChatModel,
	})
	text, err := g.call(ctx, prompt)
	if err != nil {
		reason := reasonProviderError
		if errors.Is(err, errEmptyResponse) {
			reason = reasonEmpty
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.GenerationFallbackTotal.WithLabelValues(kind, reason).Inc()
		logger.Warn(ctx, "generation provider failed, serving fallback",
			"kind", kind,
			"reason", reason,
			"error", err.Error(),
		)
		return "", false
	}
	return text, true
}

func (g *Gateway) call(ctx context.Context, prompt string) (string, error) {
	msgs, err := g.template.Format(ctx, map[string]any{"prompt": prompt})
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := g.chatModel.Generate(ctx, msgs,
		model.WithMaxTokens(MaxTokens),
		model.WithTemperature(Temperature),
	)
	metrics.LLMCallDuration.WithLabelValues(ProviderName, g.modelName).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(ProviderName, g.modelName, "error").Inc()
		return "", err
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		metrics.LLMCallTotal.WithLabelValues(ProviderName, g.modelName, "empty").Inc()
		return "", errEmptyResponse
	}
	metrics.LLMCallTotal.WithLabelValues(ProviderName, g.modelName, "success").Inc()
	return resp.Content, nil
}
