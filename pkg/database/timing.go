package database

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"
)

// StoreTimer 累计单次请求内的存储访问耗时与次数
type StoreTimer struct {
	mu    sync.Mutex
	calls int
	total time.Duration
}

// Observe 记录一次存储访问
func (t *StoreTimer) Observe(d time.Duration) {
	t.mu.Lock()
	t.calls++
	t.total += d
	t.mu.Unlock()
}

// Snapshot 返回当前累计值
func (t *StoreTimer) Snapshot() (calls int, total time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls, t.total
}

type storeTimerKey struct{}

// WithStoreTimer 在 ctx 上挂载新的计时器
func WithStoreTimer(ctx context.Context) (context.Context, *StoreTimer) {
	t := &StoreTimer{}
	return context.WithValue(ctx, storeTimerKey{}, t), t
}

// StoreTimerFrom 取出 ctx 上的计时器，不存在时返回 nil
func StoreTimerFrom(ctx context.Context) *StoreTimer {
	if ctx == nil {
		return nil
	}
	t, _ := ctx.Value(storeTimerKey{}).(*StoreTimer)
	return t
}

const startedAtKey = "aerocode:store_started_at"

// RegisterStoreTimer 为 gorm 各类操作注册前后置回调
func RegisterStoreTimer(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		if StoreTimerFrom(tx.Statement.Context) != nil {
			tx.InstanceSet(startedAtKey, time.Now())
		}
	}
	after := func(tx *gorm.DB) {
		t := StoreTimerFrom(tx.Statement.Context)
		if t == nil {
			return
		}
		v, ok := tx.InstanceGet(startedAtKey)
		if !ok {
			return
		}
		if started, ok := v.(time.Time); ok {
			t.Observe(time.Since(started))
		}
	}

	cb := db.Callback()
	steps := []struct {
		name   string
		before error
		after  error
	}{
		{"create", cb.Create().Before("gorm:create").Register("aerocode:timer_before_create", before),
			cb.Create().After("gorm:create").Register("aerocode:timer_after_create", after)},
		{"query", cb.Query().Before("gorm:query").Register("aerocode:timer_before_query", before),
			cb.Query().After("gorm:query").Register("aerocode:timer_after_query", after)},
		{"update", cb.Update().Before("gorm:update").Register("aerocode:timer_before_update", before),
			cb.Update().After("gorm:update").Register("aerocode:timer_after_update", after)},
		{"delete", cb.Delete().Before("gorm:delete").Register("aerocode:timer_before_delete", before),
			cb.Delete().After("gorm:delete").Register("aerocode:timer_after_delete", after)},
		{"row", cb.Row().Before("gorm:row").Register("aerocode:timer_before_row", before),
			cb.Row().After("gorm:row").Register("aerocode:timer_after_row", after)},
		{"raw", cb.Raw().Before("gorm:raw").Register("aerocode:timer_before_raw", before),
			cb.Raw().After("gorm:raw").Register("aerocode:timer_after_raw", after)},
	}
	for _, s := range steps {
		if s.before != nil {
			return s.before
		}
		if s.after != nil {
			return s.after
		}
	}
	return nil
}
