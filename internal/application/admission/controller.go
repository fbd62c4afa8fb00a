package admission

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownClass 请求了未配置的路由类别
var ErrUnknownClass = errors.New("admission: unknown route class")

// Decision 准入结果
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // 仅在拒绝时有意义
	ResetAt    time.Time
}

// Store 计数存储
// Take 对 key 的当前窗口做一次检查，放行时计数加一，拒绝时不得修改状态
type Store interface {
	Take(ctx context.Context, key string, policy Policy) (Decision, error)
}

// Controller 准入控制器
type Controller struct {
	policies Policies
	store    Store
}

// NewController 创建准入控制器
func NewController(policies Policies, store Store) (*Controller, error) {
	if store == nil {
		return nil, fmt.Errorf("admission: store is nil")
	}
	if err := policies.Validate(); err != nil {
		return nil, err
	}
	return &Controller{policies: policies, store: store}, nil
}

// Policy 返回类别对应的策略
func (c *Controller) Policy(class RouteClass) (Policy, bool) {
	p, ok := c.policies[class]
	return p, ok
}

// Check 判断 (class, identity) 的请求是否放行
func (c *Controller) Check(ctx context.Context, class RouteClass, identity string) (Decision, error) {
	policy, ok := c.policies[class]
	if !ok {
		return Decision{}, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}
	return c.store.Take(ctx, BucketKey(class, identity), policy)
}

// BucketKey 计数桶键
func BucketKey(class RouteClass, identity string) string {
	return string(class) + ":" + identity
}
