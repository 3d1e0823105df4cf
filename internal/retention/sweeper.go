package retention

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-marketplace/internal/models"
	"github.com/BruksfildServices01/barber-marketplace/internal/notification"
)

const lockKey = "retention:sweep:lock"

// Sweeper periodically hard-deletes expired notifications and stale chat
// history. Each pass is a short transaction; a Redis lock keeps concurrent
// instances from sweeping at the same time.
type Sweeper struct {
	db        *gorm.DB
	rdb       *redis.Client
	notif     *notification.Service
	retention time.Duration
	interval  time.Duration
}

func NewSweeper(
	db *gorm.DB,
	rdb *redis.Client,
	notif *notification.Service,
	retentionDays int,
	interval time.Duration,
) *Sweeper {
	return &Sweeper{
		db:        db,
		rdb:       rdb,
		notif:     notif,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		interval:  interval,
	}
}

// Start runs the sweep loop until ctx is done.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunOnce(ctx)
			}
		}
	}()
}

// RunOnce performs one sweep pass if the lock is free.
func (s *Sweeper) RunOnce(ctx context.Context) {
	ok, err := s.rdb.SetNX(ctx, lockKey, "1", s.interval/2).Result()
	if err != nil {
		log.Println("retention: lock error:", err)
		return
	}
	if !ok {
		return
	}
	defer s.rdb.Del(ctx, lockKey)

	cutoff := time.Now().Add(-s.retention)

	if n, err := s.notif.PurgeExpired(ctx, cutoff); err != nil {
		log.Println("retention: notification purge failed:", err)
	} else if n > 0 {
		log.Printf("retention: purged %d notifications", n)
	}

	if err := s.sweepChat(ctx, cutoff); err != nil {
		log.Println("retention: chat sweep failed:", err)
	}
}

// sweepChat drops messages older than the window, then conversations left
// with no messages at all.
func (s *Sweeper) sweepChat(ctx context.Context, cutoff time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("created_at < ?", cutoff).
			Delete(&models.Message{}).Error; err != nil {
			return err
		}

		return tx.
			Where(
				"NOT EXISTS (SELECT 1 FROM messages m WHERE m.conversation_id = conversations.id)",
			).
			Delete(&models.Conversation{}).Error
	})
}
