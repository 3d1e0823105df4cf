package appointment

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/barber-marketplace/internal/authz"
	domain "github.com/BruksfildServices01/barber-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-marketplace/internal/httperr"
	"github.com/BruksfildServices01/barber-marketplace/internal/models"
)

func TestCancelAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewCancelAppointment(f.repo, f.guard, testCivilTZ, f.audit)

	ap := f.mustBook(f.client.ID, "2030-06-10T10:00")

	got, err := uc.Execute(ctx, f.barberCaller(), ap.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got.Status != string(domain.StatusCancelled) {
		t.Fatalf("status = %q", got.Status)
	}

	if _, err := uc.Execute(ctx, f.barberCaller(), ap.ID); httperr.BusinessCode(err) != "invalid_state" {
		t.Fatalf("double cancel: %v", err)
	}

	// the slot opens up again
	if _, err := f.book(f.client2.ID, "2030-06-10T10:00"); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestCancelAppointment_PastAndMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewCancelAppointment(f.repo, f.guard, testCivilTZ, f.audit)

	past := f.seed("confirmed", "2024-06-10T10:00", &f.client.ID)
	if _, err := uc.Execute(ctx, f.barberCaller(), past.ID); httperr.BusinessCode(err) != "appointment_in_past" {
		t.Fatalf("past cancel: %v", err)
	}

	if _, err := uc.Execute(ctx, f.barberCaller(), 9999); httperr.BusinessCode(err) != "appointment_not_found" {
		t.Fatalf("missing: %v", err)
	}

	// a stale blocking marker can still be undone
	marker := f.seed("leave_early", "2024-06-10T15:00", nil)
	if _, err := uc.Execute(ctx, f.barberCaller(), marker.ID); err != nil {
		t.Fatalf("undo stale marker: %v", err)
	}
}

func TestCompleteAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewCompleteAppointment(f.repo, f.guard, testCivilTZ, f.audit)

	ap := f.mustBook(f.client.ID, "2030-06-10T10:00")

	got, err := uc.Execute(ctx, f.barberCaller(), ap.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got.Status != string(domain.StatusCompleted) {
		t.Fatalf("status = %q", got.Status)
	}
	if got.ActualEndTime == nil {
		t.Fatal("actual end time not set")
	}

	// idempotent, end time untouched
	first := *got.ActualEndTime
	again, err := uc.Execute(ctx, f.barberCaller(), ap.ID)
	if err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	if again.ActualEndTime == nil || !again.ActualEndTime.Equal(first) {
		t.Fatalf("end time changed: %v", again.ActualEndTime)
	}

	cancelled := f.seed("cancelled", "2030-06-11T10:00", &f.client.ID)
	if _, err := uc.Execute(ctx, f.barberCaller(), cancelled.ID); httperr.BusinessCode(err) != "invalid_state" {
		t.Fatalf("complete cancelled: %v", err)
	}
}

func TestMarkNoShowAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewMarkNoShow(f.repo, f.guard, f.audit)

	ap := f.mustBook(f.client.ID, "2030-06-10T10:00")

	got, err := uc.Execute(ctx, f.barberCaller(), ap.ID)
	if err != nil {
		t.Fatalf("no-show: %v", err)
	}
	if got.Status != string(domain.StatusNoShow) {
		t.Fatalf("status = %q", got.Status)
	}

	if _, err := uc.Execute(ctx, f.barberCaller(), ap.ID); httperr.BusinessCode(err) != "invalid_state" {
		t.Fatalf("double no-show: %v", err)
	}
}

func TestLifecycleAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewCancelAppointment(f.repo, f.guard, testCivilTZ, f.audit)

	otherBarber := f.addUser("Rival", models.RoleBarber)
	strangerOwner := f.addUser("Oscar", models.RoleOwner)

	cases := []struct {
		name   string
		caller authz.Caller
		code   string
	}{
		{"other barber", authz.Caller{UserID: otherBarber.ID, Role: models.RoleBarber}, "unauthorized"},
		{"client", f.clientCaller(), "unauthorized"},
		{"owner of another shop", authz.Caller{UserID: strangerOwner.ID, Role: models.RoleOwner}, "unauthorized"},
		{"shop owner", f.ownerCaller(), ""},
		{"admin", f.adminCaller(), ""},
		{"own barber", f.barberCaller(), ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ap := f.mustBook(f.client.ID, "2030-06-10T10:00")
			defer f.db.Delete(&models.Appointment{}, ap.ID)

			_, err := uc.Execute(ctx, tc.caller, ap.ID)
			if got := httperr.BusinessCode(err); got != tc.code {
				t.Fatalf("code = %q (err %v), want %q", got, err, tc.code)
			}
		})
	}
}

func TestMarkPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewMarkPayment(f.repo, f.guard, testCivilTZ)

	ap := f.mustBook(f.client.ID, "2030-06-10T10:00")

	got, err := uc.Execute(ctx, f.barberCaller(), ap.ID, MarkPaymentInput{
		Method: "pix", Status: "paid",
	})
	if err != nil {
		t.Fatalf("mark payment: %v", err)
	}
	if got.PaymentMethod != "pix" || got.PaymentStatus != "paid" {
		t.Fatalf("payment = %q/%q", got.PaymentMethod, got.PaymentStatus)
	}
	if got.PaymentMarkedAt == nil || got.PaymentMarkedBy == nil || *got.PaymentMarkedBy != f.barber.ID {
		t.Fatalf("payment marker = %v/%v", got.PaymentMarkedAt, got.PaymentMarkedBy)
	}

	// scheduling state is untouched
	if got.Status != string(domain.StatusConfirmed) {
		t.Fatalf("status = %q", got.Status)
	}

	if _, err := uc.Execute(ctx, f.barberCaller(), ap.ID, MarkPaymentInput{}); httperr.BusinessCode(err) != "incomplete_data" {
		t.Fatalf("empty input: %v", err)
	}
}

func TestUpdateNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewUpdateNotes(f.repo, f.guard)

	ap := f.mustBook(f.client.ID, "2030-06-10T10:00")

	barberNote := "trim only"
	got, err := uc.Execute(ctx, f.barberCaller(), ap.ID, UpdateNotesInput{
		NotesBarber: &barberNote,
	})
	if err != nil {
		t.Fatalf("update notes: %v", err)
	}
	if got.NotesBarber != barberNote {
		t.Fatalf("barber notes = %q", got.NotesBarber)
	}
	if got.Notes != "" {
		t.Fatalf("client notes touched: %q", got.Notes)
	}

	if _, err := uc.Execute(ctx, f.barberCaller(), ap.ID, UpdateNotesInput{}); httperr.BusinessCode(err) != "incomplete_data" {
		t.Fatalf("empty input: %v", err)
	}
}
