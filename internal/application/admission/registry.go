package admission

import (
	"context"
	"errors"
	"sync"
	"time"

	"storyverse-api/pkg/clock"
	"storyverse-api/pkg/logger"
	"storyverse-api/pkg/metrics"
)

// ErrRegistryClosed 注册表已关闭
var ErrRegistryClosed = errors.New("admission: registry closed")

// Registry 进程内计数桶注册表
type Registry struct {
	clock clock.Clock

	mu      sync.RWMutex
	buckets map[string]*bucket
	closed  bool
}

type bucket struct {
	mu          sync.Mutex
	count       int
	windowStart time.Time
	window      time.Duration
	evicted     bool
}

// NewRegistry 创建注册表，c 为 nil 时使用系统时间
func NewRegistry(c clock.Clock) *Registry {
	if c == nil {
		c = clock.Real{}
	}
	return &Registry{
		clock:   c,
		buckets: make(map[string]*bucket),
	}
}

// Take 实现 Store
func (r *Registry) Take(_ context.Context, key string, policy Policy) (Decision, error) {
	for {
		b, err := r.bucket(key)
		if err != nil {
			return Decision{}, err
		}

		b.mu.Lock()
		if b.evicted {
			// 与 Sweep 竞争失败，重新获取
			b.mu.Unlock()
			continue
		}
		d := b.take(r.clock.Now(), policy)
		b.mu.Unlock()
		return d, nil
	}
}

func (r *Registry) bucket(key string) (*bucket, error) {
	r.mu.RLock()
	b, ok := r.buckets[key]
	closed := r.closed
	r.mu.RUnlock()
	if closed {
		return nil, ErrRegistryClosed
	}
	if ok {
		return b, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrRegistryClosed
	}
	if b, ok = r.buckets[key]; ok {
		return b, nil
	}
	b = &bucket{}
	r.buckets[key] = b
	return b, nil
}

// take 调用方持有 b.mu
func (b *bucket) take(now time.Time, policy Policy) Decision {
	if b.windowStart.IsZero() || !now.Before(b.windowStart.Add(policy.Window)) {
		b.windowStart = now
		b.count = 0
	}
	b.window = policy.Window
	resetAt := b.windowStart.Add(policy.Window)

	if b.count >= policy.MaxRequests {
		return Decision{
			Allowed:    false,
			Limit:      policy.MaxRequests,
			Remaining:  0,
			RetryAfter: resetAt.Sub(now),
			ResetAt:    resetAt,
		}
	}

	b.count++
	return Decision{
		Allowed:   true,
		Limit:     policy.MaxRequests,
		Remaining: policy.MaxRequests - b.count,
		ResetAt:   resetAt,
	}
}

// Sweep 清理窗口结束已超过一个窗口长度的桶，返回清理数量
func (r *Registry) Sweep() int {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, b := range r.buckets {
		b.mu.Lock()
		if !now.Before(b.windowStart.Add(2 * b.window)) {
			b.evicted = true
			delete(r.buckets, key)
			removed++
		}
		b.mu.Unlock()
	}
	metrics.AdmissionBuckets.Set(float64(len(r.buckets)))
	return removed
}

// Len 当前桶数量
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.buckets)
}

// Run 按 interval 周期清理，直到 ctx 取消或注册表关闭
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mu.RLock()
			closed := r.closed
			r.mu.RUnlock()
			if closed {
				return
			}
			if n := r.Sweep(); n > 0 {
				logger.Debug(ctx, "admission buckets evicted", "count", n)
			}
		}
	}
}

// Close 释放所有桶，之后的 Take 返回 ErrRegistryClosed
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, b := range r.buckets {
		b.mu.Lock()
		b.evicted = true
		b.mu.Unlock()
		delete(r.buckets, key)
	}
	r.closed = true
	return nil
}
