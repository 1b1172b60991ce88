package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"meeting-scheduler/internal/dto/request"

	"github.com/google/uuid"
)

func TestMeetingPageCreate_Defaults(t *testing.T) {
	f := newFixture()
	svc := NewMeetingPageService(f.repo, testLog)

	page, err := svc.Create(context.Background(), f.host.ID, &request.MeetingPageRequest{Title: "Quarterly Review!"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if page.Slug != "quarterly-review" {
		t.Fatalf("expected slug from title, got %q", page.Slug)
	}
	if page.DurationMinutes != 30 || page.LayoutStyle != "classic" || !page.IsActive {
		t.Fatalf("unexpected defaults %+v", page)
	}
	if string(page.Fields) != "[]" || string(page.Theme) != "{}" {
		t.Fatalf("unexpected theme/fields %s %s", page.Theme, page.Fields)
	}
}

func TestMeetingPageCreate_TransliteratedSlug(t *testing.T) {
	f := newFixture()
	svc := NewMeetingPageService(f.repo, testLog)

	page, err := svc.Create(context.Background(), f.host.ID, &request.MeetingPageRequest{Title: "Réunion Café"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if page.Slug != "reunion-cafe" {
		t.Fatalf("expected transliterated slug, got %q", page.Slug)
	}

	page, err = svc.Create(context.Background(), f.host.ID, &request.MeetingPageRequest{Title: "☺"})
	if err != nil {
		t.Fatalf("Create with symbol-only title failed: %v", err)
	}
	if !strings.HasPrefix(page.Slug, "page-") {
		t.Fatalf("expected generated slug, got %q", page.Slug)
	}
}

func TestMeetingPageCreate_SlugTaken(t *testing.T) {
	f := newFixture()
	svc := NewMeetingPageService(f.repo, testLog)

	_, err := svc.Create(context.Background(), f.host.ID, &request.MeetingPageRequest{Title: "Other", Slug: "intro-call"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestMeetingPageCreate_FieldsMustBeList(t *testing.T) {
	f := newFixture()
	svc := NewMeetingPageService(f.repo, testLog)

	_, err := svc.Create(context.Background(), f.host.ID, &request.MeetingPageRequest{
		Title:  "Demo",
		Fields: json.RawMessage(`{"name":"text"}`),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMeetingPageDuplicate(t *testing.T) {
	f := newFixture()
	svc := NewMeetingPageService(f.repo, testLog)

	copied, err := svc.Duplicate(context.Background(), f.host.ID, f.page.ID.String())
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if copied.Slug != "intro-call-copy" || copied.Title != "Intro call (Copy)" {
		t.Fatalf("unexpected copy %s / %s", copied.Slug, copied.Title)
	}
	if copied.ID == f.page.ID.String() {
		t.Fatal("copy must get a new id")
	}

	if _, err := svc.Duplicate(context.Background(), f.host.ID, f.page.ID.String()); !errors.Is(err, ErrConflict) {
		t.Fatalf("second duplicate: expected ErrConflict, got %v", err)
	}
	if _, err := svc.Duplicate(context.Background(), uuid.New(), f.page.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other host: expected ErrNotFound, got %v", err)
	}
}

func TestMeetingPageGetPublic(t *testing.T) {
	f := newFixture()
	svc := NewMeetingPageService(f.repo, testLog)

	page, err := svc.GetPublic(context.Background(), "intro-call")
	if err != nil {
		t.Fatalf("GetPublic failed: %v", err)
	}
	if page.HostName != "Dana Host" {
		t.Fatalf("expected host name, got %q", page.HostName)
	}

	f.page.IsActive = false
	if _, err := svc.GetPublic(context.Background(), "intro-call"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("inactive page: expected ErrNotFound, got %v", err)
	}
}
