// Package admission 实现按路由类别的固定窗口准入控制
package admission

import (
	"fmt"
	"sort"
	"time"
)

// RouteClass 路由类别
type RouteClass string

const (
	// ClassAPI 通用 API 流量
	ClassAPI RouteClass = "api"
	// ClassAuth 登录注册
	ClassAuth RouteClass = "auth"
	// ClassAI AI 生成接口
	ClassAI RouteClass = "ai"
	// ClassStoryCreation 创建故事
	ClassStoryCreation RouteClass = "story_creation"
)

// Policy 单个类别的窗口策略
type Policy struct {
	Window      time.Duration
	MaxRequests int
}

// Validate 校验策略
func (p Policy) Validate() error {
	if p.Window <= 0 {
		return fmt.Errorf("window must be positive, got %s", p.Window)
	}
	if p.MaxRequests <= 0 {
		return fmt.Errorf("max requests must be positive, got %d", p.MaxRequests)
	}
	return nil
}

// Policies 路由类别到策略的静态表
type Policies map[RouteClass]Policy

// DefaultPolicies 返回默认策略表
func DefaultPolicies() Policies {
	return Policies{
		ClassAPI:           {Window: 15 * time.Minute, MaxRequests: 100},
		ClassAuth:          {Window: 15 * time.Minute, MaxRequests: 5},
		ClassAI:            {Window: time.Hour, MaxRequests: 10},
		ClassStoryCreation: {Window: time.Hour, MaxRequests: 20},
	}
}

// Merge 返回用 overrides 覆盖后的新表，只允许覆盖已知类别
func (p Policies) Merge(overrides map[string]Policy) (Policies, error) {
	out := make(Policies, len(p))
	for class, policy := range p {
		out[class] = policy
	}
	for name, policy := range overrides {
		class := RouteClass(name)
		if _, ok := p[class]; !ok {
			return nil, fmt.Errorf("unknown route class %q", name)
		}
		if err := policy.Validate(); err != nil {
			return nil, fmt.Errorf("route class %q: %w", name, err)
		}
		out[class] = policy
	}
	return out, nil
}

// Validate 校验所有策略
func (p Policies) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("no admission policies configured")
	}
	for _, class := range p.Classes() {
		if err := p[class].Validate(); err != nil {
			return fmt.Errorf("route class %q: %w", class, err)
		}
	}
	return nil
}

// Classes 按名称排序返回所有类别
func (p Policies) Classes() []RouteClass {
	classes := make([]RouteClass, 0, len(p))
	for class := range p {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return classes
}
