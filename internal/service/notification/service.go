package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"project-catalog/internal/domain"
	"project-catalog/internal/metrics"
	"project-catalog/internal/repository"
)

// Service is the recipient-scoped read API over the notification store plus
// Create for the materializer. Counts are cached in redis when a client is
// configured; every mutation invalidates the recipient's entry.
type Service interface {
	Create(ctx context.Context, notif *domain.Notification) error
	List(ctx context.Context, recipientID uuid.UUID) ([]domain.Notification, error)
	Count(ctx context.Context, recipientID uuid.UUID) (domain.NotificationCount, error)
	MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error
	Delete(ctx context.Context, id, recipientID uuid.UUID) error
	DeleteAll(ctx context.Context, recipientID uuid.UUID) error
}

type service struct {
	notifRepo repository.NotificationRepository
	redis     *redis.Client
	cacheTTL  time.Duration
}

func NewService(notifRepo repository.NotificationRepository, redis *redis.Client, cacheTTL time.Duration) Service {
	return &service{
		notifRepo: notifRepo,
		redis:     redis,
		cacheTTL:  cacheTTL,
	}
}

func countCacheKey(recipientID uuid.UUID) string {
	return "notifications:count:" + recipientID.String()
}

func countVersionKey(recipientID uuid.UUID) string {
	return "notifications:count-version:" + recipientID.String()
}

func (s *service) Create(ctx context.Context, notif *domain.Notification) error {
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}
	s.invalidate(ctx, notif.RecipientUserID)
	return nil
}

func (s *service) List(ctx context.Context, recipientID uuid.UUID) ([]domain.Notification, error) {
	return s.notifRepo.ListByRecipient(ctx, recipientID)
}

// Count serves from the cache when possible. On a miss the store is read
// under WATCH on the recipient's version key, so an invalidation that lands
// between the read and the write aborts the write instead of caching a stale
// count.
func (s *service) Count(ctx context.Context, recipientID uuid.UUID) (domain.NotificationCount, error) {
	if s.redis == nil {
		return s.notifRepo.Count(ctx, recipientID)
	}

	cacheKey := countCacheKey(recipientID)
	if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
		var count domain.NotificationCount
		if json.Unmarshal([]byte(cached), &count) == nil {
			metrics.CountCacheHitsTotal.WithLabelValues("hit").Inc()
			return count, nil
		}
	}
	metrics.CountCacheHitsTotal.WithLabelValues("miss").Inc()

	var (
		count   domain.NotificationCount
		repoErr error
		loaded  bool
	)
	_ = s.redis.Watch(ctx, func(tx *redis.Tx) error {
		count, repoErr = s.notifRepo.Count(ctx, recipientID)
		if repoErr != nil {
			return repoErr
		}
		loaded = true

		countJSON, err := json.Marshal(count)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, cacheKey, countJSON, s.cacheTTL)
			return nil
		})
		return err
	}, countVersionKey(recipientID))

	switch {
	case repoErr != nil:
		return domain.NotificationCount{}, repoErr
	case loaded:
		return count, nil
	}

	// Redis failed before the store was read.
	return s.notifRepo.Count(ctx, recipientID)
}

func (s *service) MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) error {
	if err := s.notifRepo.MarkAsRead(ctx, id, recipientID); err != nil {
		return err
	}
	s.invalidate(ctx, recipientID)
	return nil
}

func (s *service) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	if err := s.notifRepo.MarkAllAsRead(ctx, recipientID); err != nil {
		return err
	}
	s.invalidate(ctx, recipientID)
	return nil
}

func (s *service) Delete(ctx context.Context, id, recipientID uuid.UUID) error {
	if err := s.notifRepo.Delete(ctx, id, recipientID); err != nil {
		return err
	}
	s.invalidate(ctx, recipientID)
	return nil
}

func (s *service) DeleteAll(ctx context.Context, recipientID uuid.UUID) error {
	if err := s.notifRepo.DeleteAll(ctx, recipientID); err != nil {
		return err
	}
	s.invalidate(ctx, recipientID)
	return nil
}

// invalidate drops the cached count and bumps the version key so a Count
// that read the store before this mutation cannot write its result back.
func (s *service) invalidate(ctx context.Context, recipientID uuid.UUID) {
	if s.redis == nil {
		return
	}
	versionKey := countVersionKey(recipientID)
	_, _ = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, countCacheKey(recipientID))
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, s.cacheTTL)
		return nil
	})
}
