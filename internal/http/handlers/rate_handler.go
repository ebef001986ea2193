package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"chargerate/internal/models"
	"chargerate/internal/service"
)

// RateHandler prices a charge detail record against a rate plan.
type RateHandler struct {
	service  *service.RateService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewRateHandler builds handler.
func NewRateHandler(svc *service.RateService, logger *zap.Logger) *RateHandler {
	return &RateHandler{
		service:  svc,
		validate: validator.New(),
		logger:   logger,
	}
}

type applyRateRequest struct {
	Rate models.RatePlan `json:"rate" validate:"required"`
	CDR  models.CDR      `json:"cdr" validate:"required"`
}

// ServeHTTP handles POST /api/v1/rate.
func (h *RateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req applyRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := h.service.ApplyRate(req.Rate, req.CDR)
	if err != nil {
		status := statusForValidationError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("rate calculation failed", zap.Error(err))
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func statusForValidationError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidTimestampFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidTimeRange), errors.Is(err, service.ErrInvalidMeterRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
