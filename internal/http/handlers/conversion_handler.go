package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"chargerate/internal/models"
	"chargerate/internal/service"
)

// ConversionHandler converts computed rate amounts into a requested currency.
type ConversionHandler struct {
	service *service.RateService
	logger  *zap.Logger
}

// NewConversionHandler builds handler.
func NewConversionHandler(svc *service.RateService, logger *zap.Logger) *ConversionHandler {
	return &ConversionHandler{
		service: svc,
		logger:  logger,
	}
}

// ServeHTTP handles GET /api/v1/rate/converted-rate.
func (h *ConversionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	input := service.ConversionInput{Currency: models.DefaultTargetCurrency}
	for param, target := range map[string]*float64{
		"overall":     &input.Overall,
		"energy":      &input.Energy,
		"time":        &input.Time,
		"transaction": &input.Transaction,
	} {
		value, err := positiveFloatParam(query, param)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		*target = value
	}

	if code := query.Get("currency"); code != "" {
		currency, err := models.ParseCurrency(code)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		input.Currency = currency
	}

	writeJSON(w, http.StatusOK, h.service.ConvertRate(r.Context(), input))
}

func positiveFloatParam(query url.Values, param string) (float64, error) {
	raw := query.Get(param)
	if raw == "" {
		return 0, fmt.Errorf("query parameter %s is required", param)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("query parameter %s must be a number", param)
	}
	if value <= 0 {
		return 0, fmt.Errorf("query parameter %s must be greater than 0", param)
	}
	return value, nil
}
