// Package llm 负责创建生成服务使用的 ChatModel
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"storyverse-api/internal/config"
	"storyverse-api/pkg/logger"
)

// NewChatModel 按配置创建 OpenAI 兼容的 ChatModel
// 未配置凭证时返回 nil，生成网关将使用离线兜底
func NewChatModel(ctx context.Context, cfg *config.LLMConfig) (model.BaseChatModel, error) {
	if cfg == nil || !cfg.Configured() {
		logger.Warn(ctx, "llm api key not configured, generation will serve fallback content")
		return nil, nil
	}

	maxTokens := cfg.MaxTokens
	temperature := float32(cfg.Temperature)

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model: %w", err)
	}

	logger.Info(ctx, "llm chat model initialized", "model", cfg.Model, "base_url", cfg.BaseURL)
	return chatModel, nil
}
