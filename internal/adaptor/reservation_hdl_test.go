package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"screenbook/internal/data/entity"
	"screenbook/internal/dto/request"
	"screenbook/internal/dto/response"
	"screenbook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubReservationService struct {
	createErr error
	resp      *response.ReservationResponse
}

func (s *stubReservationService) CreateReservation(context.Context, string, *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.resp, nil
}

func (s *stubReservationService) GetUserReservations(context.Context, string, *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationItemResponse], error) {
	return response.NewPaginatedResponse([]response.ReservationItemResponse{}, 1, 10, 0), nil
}

type stubSeatMapService struct {
	states []entity.SeatState
	err    error
}

func (s *stubSeatMapService) GetSeatState(context.Context, string) ([]entity.SeatState, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.states, nil
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := utils.SetUserContext(req.Context(), uuid.New(), entity.RoleUser)
	return req.WithContext(ctx)
}

func reservationBody() string {
	return fmt.Sprintf(`{"screening_id":%q,"seat_ids":[%q]}`, uuid.NewString(), uuid.NewString())
}

func TestCreateReservation_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"seats taken", fmt.Errorf("one or more seats already reserved for this screening"), http.StatusConflict},
		{"screening missing", fmt.Errorf("screening abc not found"), http.StatusNotFound},
		{"bad seat selection", fmt.Errorf("invalid seat selection: 1 of 2 seats do not belong to the screening's hall"), http.StatusBadRequest},
		{"storage failure", fmt.Errorf("claim seats: connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubReservationService{
				createErr: tc.serviceErr,
				resp:      &response.ReservationResponse{ConfirmationCode: "TKT-1"},
			}
			handler := NewReservationHandler(svc, zap.NewNop())

			rec := httptest.NewRecorder()
			handler.CreateReservation(rec, authedRequest(http.MethodPost, "/api/reservations", reservationBody()))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestCreateReservation_RequiresAuth(t *testing.T) {
	handler := NewReservationHandler(&stubReservationService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(reservationBody()))
	handler.CreateReservation(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestCreateReservation_EmptySeatListRejected(t *testing.T) {
	handler := NewReservationHandler(&stubReservationService{}, zap.NewNop())

	body := fmt.Sprintf(`{"screening_id":%q,"seat_ids":[]}`, uuid.NewString())
	rec := httptest.NewRecorder()
	handler.CreateReservation(rec, authedRequest(http.MethodPost, "/api/reservations", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp utils.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status {
		t.Fatalf("error envelope reports success")
	}
}

func TestGetSeatState(t *testing.T) {
	states := []entity.SeatState{
		{SeatID: uuid.New(), SeatRow: "A", SeatNumber: 1, SeatType: entity.SeatTypeStandard, IsTaken: true},
	}
	handler := NewScreeningHandler(nil, &stubSeatMapService{states: states}, zap.NewNop())

	router := chi.NewRouter()
	router.Get("/api/screenings/{id}/seats", handler.GetSeatState)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/screenings/"+uuid.NewString()+"/seats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"isTaken":true`) {
		t.Fatalf("seat state payload missing isTaken flag: %s", rec.Body.String())
	}
}

func TestGetSeatState_UnknownScreening(t *testing.T) {
	handler := NewScreeningHandler(nil, &stubSeatMapService{err: fmt.Errorf("screening abc not found")}, zap.NewNop())

	router := chi.NewRouter()
	router.Get("/api/screenings/{id}/seats", handler.GetSeatState)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/screenings/"+uuid.NewString()+"/seats", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want %d", rec.Code, http.StatusNotFound)
	}
}
