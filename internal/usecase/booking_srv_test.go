package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"meeting-scheduler/internal/data/entity"
	"meeting-scheduler/internal/dto/request"
	"meeting-scheduler/internal/notification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func newBookingService(f *fixture) (*bookingService, *fakeNotifier) {
	n := &fakeNotifier{}
	svc := NewBookingService(f.repo, directTx, n, testLog).(*bookingService)
	svc.now = func() time.Time { return slotNow }
	return svc, n
}

func publicRequest(f *fixture) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		MeetingPageID: f.page.ID.String(),
		Date:          time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC),
		UserInput: map[string]any{
			"name":         "Alex Attendee",
			"email":        "alex@example.com",
			"phone":        "+1 555 0100",
			"organization": "Acme",
		},
	}
}

func TestCreatePublic_StoresBookingCustomerAndEmail(t *testing.T) {
	f := newFixture()
	svc, n := newBookingService(f)

	resp, err := svc.CreatePublic(context.Background(), publicRequest(f))
	if err != nil {
		t.Fatalf("CreatePublic failed: %v", err)
	}

	if len(f.bookings.created) != 1 {
		t.Fatalf("expected 1 stored booking, got %d", len(f.bookings.created))
	}
	b := f.bookings.created[0]
	if b.Status != entity.BookingStatusBooked || b.AttendeeEmail != "alex@example.com" || b.AttendeeName != "Alex Attendee" {
		t.Fatalf("unexpected booking %+v", b)
	}
	if resp.ManagementToken != b.ManagementToken.String() {
		t.Fatalf("response token %q does not match stored token", resp.ManagementToken)
	}
	if resp.MeetingTitle != "Intro call" {
		t.Fatalf("unexpected meeting title %q", resp.MeetingTitle)
	}

	if len(f.customers.upserted) != 1 {
		t.Fatalf("expected customer upsert, got %d", len(f.customers.upserted))
	}
	c := f.customers.upserted[0]
	if c.UserID != f.host.ID || c.Email == nil || *c.Email != "alex@example.com" || c.Organization != "Acme" {
		t.Fatalf("unexpected customer %+v", c)
	}

	if len(n.jobs) != 1 {
		t.Fatalf("expected 1 email job, got %d", len(n.jobs))
	}
	if job := n.jobs[0]; job.Action != notification.ActionCreated || job.HostName != "Dana Host" || job.PageTitle != "Intro call" {
		t.Fatalf("unexpected job %+v", job)
	}
}

func TestCreatePublic_SlotTaken(t *testing.T) {
	f := newFixture()
	f.bookings.createErr = &pgconn.PgError{Code: "23505"}
	svc, n := newBookingService(f)

	_, err := svc.CreatePublic(context.Background(), publicRequest(f))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(n.jobs) != 0 || len(f.customers.upserted) != 0 {
		t.Fatal("no email or customer expected when the insert fails")
	}
}

func TestCreatePublic_Validation(t *testing.T) {
	f := newFixture()
	svc, _ := newBookingService(f)

	req := publicRequest(f)
	req.Date = time.Time{}
	req.AttendeeEmail = "not-an-email"

	_, err := svc.CreatePublic(context.Background(), req)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if fields := FieldErrors(err); len(fields) == 0 {
		t.Fatal("expected field errors")
	}
}

func TestCreatePublic_InactivePage(t *testing.T) {
	f := newFixture()
	f.page.IsActive = false
	svc, _ := newBookingService(f)

	_, err := svc.CreatePublic(context.Background(), publicRequest(f))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCancelByToken(t *testing.T) {
	f := newFixture()
	b := f.addBooking(time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC), entity.BookingStatusBooked, nil)
	svc, n := newBookingService(f)

	resp, err := svc.CancelByToken(context.Background(), b.ManagementToken.String())
	if err != nil {
		t.Fatalf("CancelByToken failed: %v", err)
	}
	if resp.Status != entity.BookingStatusCancelled {
		t.Fatalf("expected cancelled, got %s", resp.Status)
	}
	if len(n.jobs) != 1 || n.jobs[0].Action != notification.ActionCancelled {
		t.Fatalf("expected one cancellation email, got %+v", n.jobs)
	}

	if _, err := svc.CancelByToken(context.Background(), b.ManagementToken.String()); !errors.Is(err, ErrConflict) {
		t.Fatalf("second cancel: expected ErrConflict, got %v", err)
	}
	if _, err := svc.CancelByToken(context.Background(), uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown token: expected ErrNotFound, got %v", err)
	}
}

func TestComplete(t *testing.T) {
	f := newFixture()
	booked := f.addBooking(time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC), entity.BookingStatusBooked, nil)
	cancelled := f.addBooking(time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC), entity.BookingStatusCancelled, nil)
	svc, n := newBookingService(f)

	resp, err := svc.Complete(context.Background(), f.host.ID, booked.ID.String())
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Status != entity.BookingStatusCompleted {
		t.Fatalf("expected completed, got %s", resp.Status)
	}
	if len(n.jobs) != 0 {
		t.Fatalf("completing must not send email, got %d jobs", len(n.jobs))
	}

	if _, err := svc.Complete(context.Background(), f.host.ID, cancelled.ID.String()); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for cancelled booking, got %v", err)
	}
}

func TestUpdate_OtherHost(t *testing.T) {
	f := newFixture()
	b := f.addBooking(time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC), entity.BookingStatusBooked, nil)
	svc, _ := newBookingService(f)

	notes := "bring slides"
	_, err := svc.Update(context.Background(), uuid.New(), b.ID.String(), &request.UpdateBookingRequest{Notes: &notes})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_MovedOntoTakenSlot(t *testing.T) {
	f := newFixture()
	b := f.addBooking(time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC), entity.BookingStatusBooked, nil)
	f.bookings.updateErr = &pgconn.PgError{Code: "23505"}
	svc, n := newBookingService(f)

	moved := time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)
	_, err := svc.Update(context.Background(), f.host.ID, b.ID.String(), &request.UpdateBookingRequest{Date: &moved})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(n.jobs) != 0 {
		t.Fatal("no email expected when the update fails")
	}
}

func TestUpdate_SendsUpdatedEmail(t *testing.T) {
	f := newFixture()
	b := f.addBooking(time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC), entity.BookingStatusBooked, nil)
	svc, n := newBookingService(f)

	notes := "bring slides"
	resp, err := svc.Update(context.Background(), f.host.ID, b.ID.String(), &request.UpdateBookingRequest{Notes: &notes})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if resp.Notes != notes {
		t.Fatalf("expected notes %q, got %q", notes, resp.Notes)
	}
	if len(n.jobs) != 1 || n.jobs[0].Action != notification.ActionUpdated {
		t.Fatalf("expected one update email, got %+v", n.jobs)
	}
}
