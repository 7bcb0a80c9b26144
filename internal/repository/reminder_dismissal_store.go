package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ReminderDismissalStore 记录用户已关闭的目标提醒，过期后提醒重新出现
type ReminderDismissalStore interface {
	Dismiss(ctx context.Context, userID uint, goalID string, ttl time.Duration) error
	IsDismissed(ctx context.Context, userID uint, goalID string) (bool, error)
	Reset(ctx context.Context, userID uint, goalID string) error
}

func dismissalKey(userID uint, goalID string) string {
	return fmt.Sprintf("reminder:dismissed:%d:%s", userID, goalID)
}

// RedisDismissalStore 基于 Redis 键过期实现
type RedisDismissalStore struct {
	Redis *redis.Client
}

func NewRedisDismissalStore(rdb *redis.Client) *RedisDismissalStore {
	return &RedisDismissalStore{Redis: rdb}
}

func (s *RedisDismissalStore) Dismiss(ctx context.Context, userID uint, goalID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.Redis.Set(ctx, dismissalKey(userID, goalID), time.Now().Unix(), ttl).Err()
}

func (s *RedisDismissalStore) IsDismissed(ctx context.Context, userID uint, goalID string) (bool, error) {
	n, err := s.Redis.Exists(ctx, dismissalKey(userID, goalID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisDismissalStore) Reset(ctx context.Context, userID uint, goalID string) error {
	return s.Redis.Del(ctx, dismissalKey(userID, goalID)).Err()
}

// MemoryDismissalStore 未配置 Redis 时使用的进程内实现
type MemoryDismissalStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryDismissalStore(now func() time.Time) *MemoryDismissalStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryDismissalStore{
		expires: make(map[string]time.Time),
		now:     now,
	}
}

func (s *MemoryDismissalStore) Dismiss(ctx context.Context, userID uint, goalID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expires[dismissalKey(userID, goalID)] = s.now().Add(ttl)
	return nil
}

func (s *MemoryDismissalStore) IsDismissed(ctx context.Context, userID uint, goalID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := dismissalKey(userID, goalID)
	exp, ok := s.expires[key]
	if !ok {
		return false, nil
	}
	if !s.now().Before(exp) {
		delete(s.expires, key)
		return false, nil
	}
	return true, nil
}

func (s *MemoryDismissalStore) Reset(ctx context.Context, userID uint, goalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expires, dismissalKey(userID, goalID))
	return nil
}
