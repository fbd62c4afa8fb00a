package llm

import (
	"context"
	"sync"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	cbtemplate "github.com/cloudwego/eino/utils/callbacks"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"storyverse-api/pkg/logger"
	"storyverse-api/pkg/metrics"
)

var initOnce sync.Once

// InitCallbacks 注册 Eino 全局 callbacks（进程级一次）
func InitCallbacks() {
	initOnce.Do(func() {
		einocb.AppendGlobalHandlers(NewUsageHandler())
	})
}

// NewUsageHandler 记录模型返回的 token 用量
func NewUsageHandler() einocb.Handler {
	return cbtemplate.NewHandlerHelper().
		ChatModel(newChatModelCallbackHandler()).
		Handler()
}

func newChatModelCallbackHandler() *cbtemplate.ModelCallbackHandler {
	return &cbtemplate.ModelCallbackHandler{
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *model.CallbackOutput) context.Context {
			if output == nil || output.TokenUsage == nil {
				return ctx
			}
			run := runName(info)
			modelName := ""
			if output.Config != nil {
				modelName = output.Config.Model
			}
			usage := output.TokenUsage

			metrics.LLMTokensUsed.WithLabelValues(run, modelName, "prompt").Add(float64(usage.PromptTokens))
			metrics.LLMTokensUsed.WithLabelValues(run, modelName, "completion").Add(float64(usage.CompletionTokens))

			trace.SpanFromContext(ctx).SetAttributes(
				attribute.Int("llm.prompt_tokens", usage.PromptTokens),
				attribute.Int("llm.completion_tokens", usage.CompletionTokens),
			)
			logger.Debug(ctx, "llm token usage",
				"run", run,
				"model", modelName,
				"prompt_tokens", usage.PromptTokens,
				"completion_tokens", usage.CompletionTokens,
			)
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logger.Debug(ctx, "llm call error", "run", runName(info), "error", err.Error())
			return ctx
		},
	}
}

func runName(info *einocb.RunInfo) string {
	if info == nil || info.Name == "" {
		return "unknown"
	}
	return info.Name
}
