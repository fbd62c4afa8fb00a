// Package clock 提供可替换的时间源，便于限流等时间相关逻辑的确定性测试
package clock

import (
	"sync"
	"time"
)

// Clock 时间源接口
type Clock interface {
	// Now 返回当前时间
	Now() time.Time
}

// Real 使用系统时间
type Real struct{}

// Now 返回系统当前时间
func (Real) Now() time.Time {
	return time.Now()
}

// Fake 手动推进的时间源（并发安全）
type Fake struct {
	mu      sync.RWMutex
	current time.Time
}

// NewFake 创建起始于 start 的 Fake 时钟
func NewFake(start time.Time) *Fake {
	return &Fake{current: start}
}

// Now 返回当前虚拟时间
func (f *Fake) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Advance 向前推进 d，d 为负数时 panic
func (f *Fake) Advance(d time.Duration) {
	if d < 0 {
		panic("clock: cannot advance by negative duration")
	}
	f.mu.Lock()
	f.current = f.current.Add(d)
	f.mu.Unlock()
}

// Set 设置为指定时间，不允许回拨
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.Before(f.current) {
		panic("clock: cannot set time to the past")
	}
	f.current = t
}
