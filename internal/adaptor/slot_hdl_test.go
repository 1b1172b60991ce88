package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"meeting-scheduler/internal/dto/request"
	"meeting-scheduler/internal/dto/response"
	"meeting-scheduler/internal/usecase"
	"meeting-scheduler/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeSlotService struct {
	query  *request.SlotQuery
	hostID uuid.UUID
	slots  *response.SlotsResponse
	err    error
}

func (f *fakeSlotService) AvailableSlots(ctx context.Context, q *request.SlotQuery) (*response.SlotsResponse, error) {
	f.query = q
	return f.slots, f.err
}

func (f *fakeSlotService) OccupiedSlots(ctx context.Context, hostID uuid.UUID, q *request.SlotQuery) (*response.OccupiedSlotsResponse, error) {
	f.query = q
	f.hostID = hostID
	return &response.OccupiedSlotsResponse{Slots: []response.OccupiedSlotResponse{}}, f.err
}

func serveSlots(ctx context.Context, svc usecase.SlotService, target string) *httptest.ResponseRecorder {
	h := NewSlotHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/available", h.Available)
	r.Get("/occupied", h.Occupied)

	req := httptest.NewRequest(http.MethodGet, target, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSlotHandler_AvailableBody(t *testing.T) {
	svc := &fakeSlotService{slots: &response.SlotsResponse{
		Slots:   []response.SlotResponse{},
		Message: "No availability configured for this date.",
	}}

	rec := serveSlots(context.Background(), svc, "/available?meeting_page_id=abc&date=2030-01-07&timezone=Asia/Tokyo")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body["slots"].([]any); !ok {
		t.Fatalf("expected bare slots array, got %v", body)
	}
	if body["message"] != "No availability configured for this date." {
		t.Fatalf("unexpected message %v", body["message"])
	}
	if _, ok := body["status"]; ok {
		t.Fatal("slot responses must not use the envelope")
	}

	if svc.query.MeetingPageID != "abc" || svc.query.Date != "2030-01-07" || svc.query.Timezone != "Asia/Tokyo" {
		t.Fatalf("query not forwarded: %+v", svc.query)
	}
}

func TestSlotHandler_ErrorShape(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&usecase.Error{Kind: usecase.ErrInvalidInput, Message: "meeting_page_id and date are required"}, http.StatusBadRequest},
		{&usecase.Error{Kind: usecase.ErrNotFound, Message: "Meeting page not found"}, http.StatusNotFound},
		{fmt.Errorf("load bookings: %w", context.DeadlineExceeded), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := serveSlots(context.Background(), &fakeSlotService{err: tt.err}, "/available")
		if rec.Code != tt.want {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.want, rec.Code)
		}

		var body response.SlotErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Error == "" {
			t.Fatalf("%v: expected error message", tt.err)
		}
		if tt.want == http.StatusInternalServerError && body.Error != "Internal server error" {
			t.Fatalf("internal errors must not leak, got %q", body.Error)
		}
	}
}

func TestSlotHandler_OccupiedUsesAuthenticatedHost(t *testing.T) {
	hostID := uuid.New()
	svc := &fakeSlotService{}

	rec := serveSlots(context.Background(), svc, "/occupied?meeting_page_id=abc&date=2030-01-07")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", rec.Code)
	}

	ctx := utils.SetUserContext(context.Background(), hostID)
	rec = serveSlots(ctx, svc, "/occupied?meeting_page_id=abc&date=2030-01-07")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.hostID != hostID {
		t.Fatalf("expected host %s, got %s", hostID, svc.hostID)
	}
}
