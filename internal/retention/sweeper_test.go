package retention

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-marketplace/internal/models"
	"github.com/BruksfildServices01/barber-marketplace/internal/notification"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"),
	)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Notification{},
		&models.Conversation{},
		&models.Message{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSweepChat(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	s := &Sweeper{
		db:        db,
		notif:     notification.NewService(db),
		retention: 31 * 24 * time.Hour,
	}

	old := time.Now().Add(-40 * 24 * time.Hour)
	recent := time.Now().Add(-1 * time.Hour)

	stale := models.Conversation{Type: models.ConversationTypeAppointment, ClientID: 1, BarberID: 2}
	live := models.Conversation{Type: models.ConversationTypeAppointment, ClientID: 3, BarberID: 2}
	if err := db.Create(&stale).Error; err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if err := db.Create(&live).Error; err != nil {
		t.Fatalf("conversation: %v", err)
	}

	msgs := []models.Message{
		{ConversationID: stale.ID, SenderID: 1, ReceiverID: 2, Body: "old", CreatedAt: old},
		{ConversationID: live.ID, SenderID: 3, ReceiverID: 2, Body: "old", CreatedAt: old},
		{ConversationID: live.ID, SenderID: 2, ReceiverID: 3, Body: "new", CreatedAt: recent},
	}
	for i := range msgs {
		if err := db.Create(&msgs[i]).Error; err != nil {
			t.Fatalf("message: %v", err)
		}
	}

	cutoff := time.Now().Add(-s.retention)
	if err := s.sweepChat(ctx, cutoff); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	var msgCount int64
	db.Model(&models.Message{}).Count(&msgCount)
	if msgCount != 1 {
		t.Fatalf("messages left = %d", msgCount)
	}

	// the emptied conversation goes with its messages, the live one stays
	var convCount int64
	db.Model(&models.Conversation{}).Where("id = ?", stale.ID).Count(&convCount)
	if convCount != 0 {
		t.Fatal("stale conversation survived")
	}
	db.Model(&models.Conversation{}).Where("id = ?", live.ID).Count(&convCount)
	if convCount != 1 {
		t.Fatal("live conversation swept")
	}
}

func TestSweepChat_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	s := &Sweeper{db: db, notif: notification.NewService(db), retention: 31 * 24 * time.Hour}

	if err := s.sweepChat(ctx, time.Now()); err != nil {
		t.Fatalf("sweep on empty db: %v", err)
	}
	if err := s.sweepChat(ctx, time.Now()); err != nil {
		t.Fatalf("second sweep: %v", err)
	}
}
