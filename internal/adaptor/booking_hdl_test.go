package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meeting-scheduler/internal/dto/request"
	"meeting-scheduler/internal/dto/response"
	"meeting-scheduler/internal/usecase"
	"meeting-scheduler/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeBookingService struct {
	usecase.BookingService
	err    error
	token  string
	hostID uuid.UUID
}

func (f *fakeBookingService) CreatePublic(ctx context.Context, req *request.CreateBookingRequest) (*response.PublicBookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &response.PublicBookingResponse{ManagementToken: "tok"}, nil
}

func (f *fakeBookingService) CancelByToken(ctx context.Context, token string) (*response.BookingResponse, error) {
	f.token = token
	if f.err != nil {
		return nil, f.err
	}
	return &response.BookingResponse{Status: "cancelled"}, nil
}

func (f *fakeBookingService) Cancel(ctx context.Context, hostID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	f.hostID = hostID
	return &response.BookingResponse{ID: bookingID, Status: "cancelled"}, f.err
}

func bookingRouter(svc usecase.BookingService) http.Handler {
	h := NewBookingHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/public/bookings", h.CreatePublic)
	r.Post("/api/public/bookings/manage/{token}/cancel", h.CancelByToken)
	r.Post("/api/bookings/{id}/cancel", h.Cancel)
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var body utils.Response
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestBookingHandler_CreatePublicStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"created", `{"meeting_page_id":"x"}`, nil, http.StatusCreated},
		{"bad json", `{`, nil, http.StatusBadRequest},
		{"validation", `{}`, &usecase.Error{Kind: usecase.ErrInvalidInput, Message: "Validation failed", Fields: map[string]string{"date": "This field is required"}}, http.StatusBadRequest},
		{"page missing", `{}`, &usecase.Error{Kind: usecase.ErrNotFound, Message: "meeting page not found"}, http.StatusNotFound},
		{"slot taken", `{}`, &usecase.Error{Kind: usecase.ErrConflict, Message: "slot already booked"}, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeBookingService{err: tt.err}
			req := httptest.NewRequest(http.MethodPost, "/api/public/bookings", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			bookingRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			body := decodeEnvelope(t, rec)
			if body.Status != (tt.want == http.StatusCreated) {
				t.Fatalf("unexpected envelope status %v", body.Status)
			}
		})
	}
}

func TestBookingHandler_ValidationFieldsReturned(t *testing.T) {
	svc := &fakeBookingService{err: &usecase.Error{
		Kind:    usecase.ErrInvalidInput,
		Message: "Validation failed",
		Fields:  map[string]string{"date": "This field is required"},
	}}
	req := httptest.NewRequest(http.MethodPost, "/api/public/bookings", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	bookingRouter(svc).ServeHTTP(rec, req)

	body := decodeEnvelope(t, rec)
	fields, ok := body.Errors.(map[string]any)
	if !ok || fields["date"] != "This field is required" {
		t.Fatalf("expected field errors, got %#v", body.Errors)
	}
}

func TestBookingHandler_CancelByTokenPassesToken(t *testing.T) {
	svc := &fakeBookingService{}
	req := httptest.NewRequest(http.MethodPost, "/api/public/bookings/manage/abc-123/cancel", nil)
	rec := httptest.NewRecorder()
	bookingRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.token != "abc-123" {
		t.Fatalf("expected token abc-123, got %q", svc.token)
	}
}

func TestBookingHandler_HostRoutesNeedUser(t *testing.T) {
	svc := &fakeBookingService{}
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/"+uuid.NewString()+"/cancel", nil)
	rec := httptest.NewRecorder()
	bookingRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	hostID := uuid.New()
	req = req.WithContext(utils.SetUserContext(context.Background(), hostID))
	rec = httptest.NewRecorder()
	bookingRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || svc.hostID != hostID {
		t.Fatalf("expected 200 for host %s, got %d (%s)", hostID, rec.Code, svc.hostID)
	}
}
