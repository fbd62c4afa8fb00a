package wire

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"

	"storyverse-api/internal/application/admission"
	"storyverse-api/internal/application/generation"
	"storyverse-api/internal/config"
	"storyverse-api/internal/infrastructure/llm"
	"storyverse-api/internal/infrastructure/persistence/postgres"
	"storyverse-api/internal/infrastructure/persistence/redis"
	"storyverse-api/internal/interfaces/http/handler"
	"storyverse-api/internal/interfaces/http/router"
	"storyverse-api/pkg/clock"
	"storyverse-api/pkg/logger"
	"storyverse-api/pkg/utils"
)

// App 进程级依赖
type App struct {
	Router   *router.Router
	Registry *admission.Registry
	Postgres *postgres.Client
}

// Database 仅含 PostgreSQL 的数据层
type Database struct {
	Client     *postgres.Client
	UserRepo   *postgres.UserRepository
	StoryRepo  *postgres.StoryRepository
	SocialRepo *postgres.SocialRepository
}

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端，内存后端时返回 nil
func ProvideRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	rl := cfg.Security.RateLimit
	if !rl.Enabled || rl.Backend != config.RateLimitBackendRedis {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	logger.Info(ctx, "redis rate limit backend connected",
		"host", cfg.Cache.Redis.Host,
		"port", cfg.Cache.Redis.Port,
	)
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRegistry 提供进程内计数表
func ProvideRegistry() (*admission.Registry, func()) {
	registry := admission.NewRegistry(clock.Real{})
	return registry, func() {
		_ = registry.Close()
	}
}

// ProvideAdmissionStore 按配置选择计数存储
func ProvideAdmissionStore(cfg *config.Config, registry *admission.Registry, redisClient *redis.Client) admission.Store {
	if redisClient != nil {
		return redis.NewRateLimiter(redisClient, cfg.Security.RateLimit.KeyPrefix, clock.Real{})
	}
	return registry
}

// ProvideAdmissionController 提供准入控制器，限流关闭时返回 nil
func ProvideAdmissionController(ctx context.Context, cfg *config.Config, store admission.Store) (*admission.Controller, error) {
	rl := cfg.Security.RateLimit
	if !rl.Enabled {
		logger.Warn(ctx, "rate limiting disabled")
		return nil, nil
	}

	overrides := make(map[string]admission.Policy, len(rl.Policies))
	for name, p := range rl.Policies {
		overrides[name] = admission.Policy{Window: p.Window, MaxRequests: p.MaxRequests}
	}
	policies, err := admission.DefaultPolicies().Merge(overrides)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit policies: %w", err)
	}
	return admission.NewController(policies, store)
}

// ProvideChatModel 提供聊天模型，未配置凭证时为 nil
func ProvideChatModel(ctx context.Context, cfg *config.Config) (model.BaseChatModel, error) {
	return llm.NewChatModel(ctx, &cfg.LLM)
}

// ProvideGateway 提供生成网关
func ProvideGateway(chatModel model.BaseChatModel, cfg *config.Config) *generation.Gateway {
	return generation.NewGateway(chatModel, cfg.LLM.Model)
}

// ProvideJWTManager 提供 JWT 管理器
func ProvideJWTManager(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer, cfg.Security.JWT.Expiration)
}

// ProvideHealthHandler 提供健康检查处理器
// redisClient 为 nil 时传入 nil 接口，避免探测空指针
func ProvideHealthHandler(cfg *config.Config, pg *postgres.Client, redisClient *redis.Client) *handler.HealthHandler {
	var cache handler.HealthChecker
	if redisClient != nil {
		cache = redisClient
	}
	return handler.NewHealthHandler(cfg.App.Version, pg, cache)
}
