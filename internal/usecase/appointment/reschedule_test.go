package appointment

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-marketplace/internal/authz"
	"github.com/BruksfildServices01/barber-marketplace/internal/chat"
	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
	"github.com/BruksfildServices01/barber-marketplace/internal/notification"
)

func (f *fixture) rescheduleUC() *Reschedule {
	return NewReschedule(f.repo, f.guard, f.norm, testCivilTZ, chat.NewService(f.db))
}

func TestReschedulePropose(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.rescheduleUC()

	ap := f.mustBook(f.client.ID, "2030-06-10T10:00")

	n, convID, err := uc.Propose(ctx, f.barberCaller(), ap.ID, "2030-06-10T14:00")
	if err != nil {
		t.Fatalf("propose: %v", err)
	}

	if n.UserID != f.client.ID {
		t.Fatalf("notification user = %d", n.UserID)
	}
	if n.Type != models.NotificationTypeRescheduleProposal {
		t.Fatalf("notification type = %q", n.Type)
	}
	if n.Status != models.NotificationStatusPending {
		t.Fatalf("notification status = %q", n.Status)
	}

	var payload reschedulePayload
	if err := json.Unmarshal(n.Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.AppointmentID != ap.ID {
		t.Fatalf("payload appointment = %d", payload.AppointmentID)
	}
	wantTime := f.instant("2030-06-10T14:00")
	gotTime, err := time.Parse(time.RFC3339, payload.NewTime)
	if err != nil || !gotTime.Equal(wantTime) {
		t.Fatalf("payload time = %q (%v)", payload.NewTime, err)
	}

	// the appointment itself is untouched until the client accepts
	if got := f.reload(ap.ID); !got.Date.Equal(ap.Date) {
		t.Fatalf("date moved early: %v", got.Date)
	}

	// proposal is mirrored as a system chat message
	if convID == 0 {
		t.Fatal("no conversation")
	}
	var msgs []models.Message
	if err := f.db.Where("conversation_id = ?", convID).Find(&msgs).Error; err != nil {
		t.Fatalf("load messages: %v", err)
	}
	if len(msgs) != 1 || !msgs[0].IsSystem || msgs[0].RelatedAction != "reschedule_proposed" {
		t.Fatalf("messages = %+v", msgs)
	}
}

func TestReschedulePropose_Guards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.rescheduleUC()

	ap := f.mustBook(f.client.ID, "2030-06-10T10:00")

	if _, _, err := uc.Propose(ctx, f.clientCaller(), ap.ID, "2030-06-10T14:00"); httperr.BusinessCode(err) != "unauthorized" {
		t.Fatalf("client proposing: %v", err)
	}

	if _, _, err := uc.Propose(ctx, f.barberCaller(), 9999, "2030-06-10T14:00"); httperr.BusinessCode(err) != "appointment_not_found" {
		t.Fatalf("missing: %v", err)
	}

	if _, _, err := uc.Propose(ctx, f.barberCaller(), ap.ID, "garbage"); httperr.BusinessCode(err) != "invalid_date" {
		t.Fatalf("bad time: %v", err)
	}

	cancelled := f.seed("cancelled", "2030-06-11T10:00", &f.client.ID)
	if _, _, err := uc.Propose(ctx, f.barberCaller(), cancelled.ID, "2030-06-12T10:00"); httperr.BusinessCode(err) != "invalid_state" {
		t.Fatalf("cancelled: %v", err)
	}

	marker := f.seed("day_off", "2030-06-12", nil)
	if _, _, err := uc.Propose(ctx, f.barberCaller(), marker.ID, "2030-06-13T10:00"); httperr.BusinessCode(err) != "invalid_state" {
		t.Fatalf("blocking marker: %v", err)
	}
}

func TestRescheduleRespond_Accept(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.rescheduleUC()

	ap := f.mustBook(f.client.ID, "2030-06-10T10:00")
	n, _, err := uc.Propose(ctx, f.barberCaller(), ap.ID, "2030-06-10T14:00")
	if err != nil {
		t.Fatalf("propose: %v", err)
	}

	gotN, gotAp, err := uc.Respond(ctx, f.clientCaller(), n.ID, true)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if gotN.Status != models.NotificationStatusAccepted {
		t.Fatalf("notification status = %q", gotN.Status)
	}
	if !gotAp.Date.Equal(f.instant("2030-06-10T14:00")) {
		t.Fatalf("date = %v", gotAp.Date)
	}
	if got := f.reload(ap.ID); !got.Date.Equal(f.instant("2030-06-10T14:00")) {
		t.Fatalf("stored date = %v", got.Date)
	}

	// a decided proposal cannot be answered again
	if _, _, err := uc.Respond(ctx, f.clientCaller(), n.ID, false); httperr.BusinessCode(err) != "invalid_state" {
		t.Fatalf("double respond: %v", err)
	}
}

func TestRescheduleRespond_Reject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.rescheduleUC()

	ap := f.mustBook(f.client.ID, "2030-06-10T10:00")
	n, _, err := uc.Propose(ctx, f.barberCaller(), ap.ID, "2030-06-10T14:00")
	if err != nil {
		t.Fatalf("propose: %v", err)
	}

	gotN, _, err := uc.Respond(ctx, f.clientCaller(), n.ID, false)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if gotN.Status != models.NotificationStatusRejected {
		t.Fatalf("notification status = %q", gotN.Status)
	}

	// rejection leaves the appointment alone
	if got := f.reload(ap.ID); !got.Date.Equal(ap.Date) {
		t.Fatalf("date = %v", got.Date)
	}
}

func TestRescheduleRespond_AcceptNeedsConfirmedAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.rescheduleUC()

	ap := f.mustBook(f.client.ID, "2030-06-10T10:00")
	n, _, err := uc.Propose(ctx, f.barberCaller(), ap.ID, "2030-06-10T14:00")
	if err != nil {
		t.Fatalf("propose: %v", err)
	}

	// the appointment is cancelled while the proposal is still pending
	cancelUC := NewCancelAppointment(f.repo, f.guard, testCivilTZ, f.audit)
	if _, err := cancelUC.Execute(ctx, f.barberCaller(), ap.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, _, err := uc.Respond(ctx, f.clientCaller(), n.ID, true); httperr.BusinessCode(err) != "invalid_state" {
		t.Fatalf("accept on cancelled: %v", err)
	}

	// neither the row's date nor the proposal moved
	got := f.reload(ap.ID)
	if !got.Date.Equal(ap.Date) {
		t.Fatalf("date = %v", got.Date)
	}
	var gotN models.Notification
	if err := f.db.First(&gotN, n.ID).Error; err != nil {
		t.Fatalf("reload notification: %v", err)
	}
	if gotN.Status != models.NotificationStatusPending {
		t.Fatalf("notification status = %q", gotN.Status)
	}
}

func TestRescheduleRespond_Guards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.rescheduleUC()

	ap := f.mustBook(f.client.ID, "2030-06-10T10:00")
	n, _, err := uc.Propose(ctx, f.barberCaller(), ap.ID, "2030-06-10T14:00")
	if err != nil {
		t.Fatalf("propose: %v", err)
	}

	// only the recipient (or an admin) may answer
	other := authz.Caller{UserID: f.client2.ID, Role: models.RoleClient}
	if _, _, err := uc.Respond(ctx, other, n.ID, true); httperr.BusinessCode(err) != "unauthorized" {
		t.Fatalf("other client: %v", err)
	}
	if _, _, err := uc.Respond(ctx, f.barberCaller(), n.ID, true); httperr.BusinessCode(err) != "unauthorized" {
		t.Fatalf("barber answering: %v", err)
	}

	if _, _, err := uc.Respond(ctx, f.clientCaller(), 9999, true); httperr.BusinessCode(err) != "notification_not_found" {
		t.Fatalf("missing: %v", err)
	}

	// a notification of another type is rejected before any state change
	stray, err := notification.NewService(f.db).Create(
		ctx, f.client.ID, "MARKETING", "Hi", "Promo", models.NotificationStatusPending, nil,
	)
	if err != nil {
		t.Fatalf("stray notification: %v", err)
	}
	if _, _, err := uc.Respond(ctx, f.clientCaller(), stray.ID, true); httperr.BusinessCode(err) != "malformed_notification" {
		t.Fatalf("stray type: %v", err)
	}

	if _, _, err := uc.Respond(ctx, f.adminCaller(), n.ID, true); err != nil {
		t.Fatalf("admin respond: %v", err)
	}
}

func TestRescheduleRespond_MalformedPayload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.rescheduleUC()

	broken, err := notification.NewService(f.db).Create(
		ctx, f.client.ID,
		models.NotificationTypeRescheduleProposal,
		"Reschedule proposal", "",
		models.NotificationStatusPending,
		map[string]any{"appointment_id": 0},
	)
	if err != nil {
		t.Fatalf("broken notification: %v", err)
	}

	if _, _, err := uc.Respond(ctx, f.clientCaller(), broken.ID, true); httperr.BusinessCode(err) != "malformed_notification" {
		t.Fatalf("broken payload: %v", err)
	}

	// still pending: the malformed payload blocked any transition
	var got models.Notification
	if err := f.db.First(&got, broken.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != models.NotificationStatusPending {
		t.Fatalf("status = %q", got.Status)
	}
}
