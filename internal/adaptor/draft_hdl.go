package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"rental-booking/internal/client"
	"rental-booking/internal/data/entity"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// searchRedirect is where the SPA sends the user when the draft is unusable.
const searchRedirect = "/vehicles"

type DraftHandler struct {
	service *usecase.Service
	log     *zap.Logger
}

func NewDraftHandler(service *usecase.Service, log *zap.Logger) *DraftHandler {
	return &DraftHandler{
		service: service,
		log:     log.With(zap.String("handler", "draft")),
	}
}

func (h *DraftHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sessionID, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Missing draft session", nil)
		return uuid.Nil, false
	}
	return sessionID, true
}

// GetDraft handles GET /api/draft
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	rec, err := h.service.Draft.Get(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "get draft")
		return
	}

	utils.ResponseSuccess(w, "success", response.DraftToResponse(rec))
}

// SelectVehicle handles POST /api/draft/vehicle
func (h *DraftHandler) SelectVehicle(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req request.SelectVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rec, err := h.service.Draft.SetVehicle(r.Context(), sessionID, &req)
	if err != nil {
		h.handleServiceError(w, err, "select vehicle")
		return
	}

	utils.ResponseSuccess(w, "success", response.DraftToResponse(rec))
}

// UpdateStepOne handles PUT /api/draft/step1
func (h *DraftHandler) UpdateStepOne(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req request.StepOneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rec, err := h.service.Draft.UpdateStepOne(r.Context(), sessionID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update step1")
		return
	}

	utils.ResponseSuccess(w, "success", response.DraftToResponse(rec))
}

// UpdateStepTwo handles PUT /api/draft/step2
func (h *DraftHandler) UpdateStepTwo(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req request.StepTwoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rec, err := h.service.Draft.UpdateStepTwo(r.Context(), sessionID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update step2")
		return
	}

	utils.ResponseSuccess(w, "success", response.DraftToResponse(rec))
}

// UpdateStepThree handles PUT /api/draft/step3
func (h *DraftHandler) UpdateStepThree(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req request.StepThreeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rec, err := h.service.Draft.UpdateStepThree(r.Context(), sessionID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update step3")
		return
	}

	utils.ResponseSuccess(w, "success", response.DraftToResponse(rec))
}

// UpdateStepFour handles PUT /api/draft/step4
func (h *DraftHandler) UpdateStepFour(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req request.StepFourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rec, err := h.service.Draft.UpdateStepFour(r.Context(), sessionID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update step4")
		return
	}

	utils.ResponseSuccess(w, "success", response.DraftToResponse(rec))
}

// Advance handles POST /api/draft/advance
func (h *DraftHandler) Advance(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	rec, err := h.service.Navigator.Advance(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "advance step")
		return
	}

	if rec.CurrentStep == entity.StepTwo && rec.Submission != nil {
		utils.ResponseCreated(w, "booking created", response.DraftToResponse(rec))
		return
	}
	utils.ResponseSuccess(w, "success", response.DraftToResponse(rec))
}

// Back handles POST /api/draft/back
func (h *DraftHandler) Back(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	rec, err := h.service.Navigator.Back(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "back step")
		return
	}

	utils.ResponseSuccess(w, "success", response.DraftToResponse(rec))
}

// ClearDraft handles DELETE /api/draft ("clear search")
func (h *DraftHandler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.Draft.Clear(r.Context(), sessionID); err != nil {
		h.handleServiceError(w, err, "clear draft")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError maps the flow error taxonomy onto responses.
func (h *DraftHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var validationErr *usecase.ValidationError
	var networkErr *client.NetworkError

	switch {
	case errors.As(err, &validationErr):
		h.log.Warn(operation+" blocked by validation",
			zap.String("field", validationErr.Field),
			zap.Error(err))
		utils.ResponseBadRequest(w, validationErr.Error(), map[string]string{
			validationErr.Field: validationErr.Reason,
		})

	case errors.Is(err, usecase.ErrRedirectToSearch):
		h.log.Warn(operation+" on incomplete draft, redirecting", zap.Error(err))
		utils.ResponseRedirect(w, searchRedirect)

	case errors.Is(err, usecase.ErrSubmissionInFlight):
		h.log.Warn(operation+" rejected, submission in flight")
		utils.ResponseConflict(w, err.Error())

	case errors.As(err, &networkErr):
		h.log.Error(operation+" failed upstream",
			zap.String("op", networkErr.Op),
			zap.Int("status", networkErr.StatusCode),
			zap.Error(err))
		utils.ResponseUnprocessable(w, networkErr.Error(), networkErr.FieldErrors)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
