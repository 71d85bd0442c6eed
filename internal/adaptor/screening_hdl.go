package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"screenbook/internal/dto/request"
	"screenbook/internal/usecase"
	"screenbook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScreeningHandler struct {
	service usecase.ScreeningService
	seatMap usecase.SeatMapService
	log     *zap.Logger
}

func NewScreeningHandler(service usecase.ScreeningService, seatMap usecase.SeatMapService, log *zap.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		service: service,
		seatMap: seatMap,
		log:     log.With(zap.String("handler", "screening")),
	}
}

// ListScreenings handles GET /api/screenings (public)
func (h *ScreeningHandler) ListScreenings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	screenings, err := h.service.ListScreenings(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list screenings")
		return
	}

	utils.ResponseSuccess(w, "success", screenings)
}

// GetScreeningByID handles GET /api/screenings/{id} (public)
func (h *ScreeningHandler) GetScreeningByID(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")
	if screeningID == "" {
		utils.ResponseBadRequest(w, "Screening ID is required", nil)
		return
	}

	screening, err := h.service.GetScreeningByID(r.Context(), screeningID)
	if err != nil {
		h.handleServiceError(w, err, "get screening by ID")
		return
	}

	utils.ResponseSuccess(w, "success", screening)
}

// GetSeatState handles GET /api/screenings/{id}/seats (public). Returns
// every seat of the screening's hall with its current taken flag.
func (h *ScreeningHandler) GetSeatState(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")
	if screeningID == "" {
		utils.ResponseBadRequest(w, "Screening ID is required", nil)
		return
	}

	states, err := h.seatMap.GetSeatState(r.Context(), screeningID)
	if err != nil {
		h.handleServiceError(w, err, "get seat state")
		return
	}

	utils.ResponseSuccess(w, "success", states)
}

// CreateScreening handles POST /api/admin/screenings (admin only)
func (h *ScreeningHandler) CreateScreening(w http.ResponseWriter, r *http.Request) {
	var req request.CreateScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	screening, err := h.service.CreateScreening(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create screening")
		return
	}

	utils.ResponseCreated(w, "success", screening)
}

// UpdateScreening handles PUT /api/admin/screenings/{id} (admin only)
func (h *ScreeningHandler) UpdateScreening(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")
	if screeningID == "" {
		utils.ResponseBadRequest(w, "Screening ID is required", nil)
		return
	}

	var req request.UpdateScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	screening, err := h.service.UpdateScreening(r.Context(), screeningID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update screening")
		return
	}

	utils.ResponseSuccess(w, "success", screening)
}

// DeleteScreening handles DELETE /api/admin/screenings/{id} (admin only)
func (h *ScreeningHandler) DeleteScreening(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")
	if screeningID == "" {
		utils.ResponseBadRequest(w, "Screening ID is required", nil)
		return
	}

	if err := h.service.DeleteScreening(r.Context(), screeningID); err != nil {
		h.handleServiceError(w, err, "delete screening")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *ScreeningHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "overlaps"):
		h.log.Warn(operation+" failed - schedule overlap",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "already has reservations"):
		h.log.Warn(operation+" failed - screening has reservations",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
