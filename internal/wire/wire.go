//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"storyverse-api/internal/config"
	"storyverse-api/internal/domain/repository"
	"storyverse-api/internal/infrastructure/persistence/postgres"
	"storyverse-api/internal/interfaces/http/handler"
	"storyverse-api/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		AdmissionSet,
		GenerationSet,
		RouterSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}

// InitializeDatabase 仅初始化 PostgreSQL 数据层（用于 bootstrap）
func InitializeDatabase(ctx context.Context, cfg *config.Config) (*Database, func(), error) {
	wire.Build(
		PostgresSet,
		wire.Struct(new(Database), "*"),
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewUserRepository,
	postgres.NewStoryRepository,
	postgres.NewSocialRepository,
)

// RepoSet 整合了具体实现与接口绑定的集合
var RepoSet = wire.NewSet(
	PostgresSet,
	wire.Bind(new(repository.UserRepository), new(*postgres.UserRepository)),
	wire.Bind(new(repository.StoryRepository), new(*postgres.StoryRepository)),
	wire.Bind(new(repository.SocialRepository), new(*postgres.SocialRepository)),
)

// RedisSet Redis 提供者集合，仅在 redis 限流后端下建立连接
var RedisSet = wire.NewSet(
	ProvideRedisClient,
)

// AdmissionSet 准入控制提供者集合
var AdmissionSet = wire.NewSet(
	ProvideRegistry,
	ProvideAdmissionStore,
	ProvideAdmissionController,
)

// GenerationSet 生成网关提供者集合
var GenerationSet = wire.NewSet(
	ProvideChatModel,
	ProvideGateway,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideJWTManager,
	ProvideHealthHandler,
	handler.NewUserHandler,
	handler.NewStoryHandler,
	handler.NewSocialHandler,
	handler.NewAIHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
