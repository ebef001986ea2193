package service

import (
	"context"

	"go.uber.org/zap"

	"chargerate/internal/clients"
	"chargerate/internal/models"
	redisstore "chargerate/internal/redis"
)

// RateService prices charging sessions and converts computed amounts into a
// requested currency.
type RateService struct {
	quotes   *redisstore.QuoteStore
	exchange *clients.ExchangeClient
	logger   *zap.Logger
}

// NewRateService builds service.
func NewRateService(quotes *redisstore.QuoteStore, exchange *clients.ExchangeClient, logger *zap.Logger) *RateService {
	return &RateService{
		quotes:   quotes,
		exchange: exchange,
		logger:   logger,
	}
}

// ApplyRate validates the session and prices it against the rate plan.
func (s *RateService) ApplyRate(plan models.RatePlan, cdr models.CDR) (models.RateResult, error) {
	totalSeconds, err := ValidateTimestamps(cdr.TimestampStart, cdr.TimestampStop)
	if err != nil {
		return models.RateResult{}, err
	}
	totalKWh, err := ValidateMeters(cdr.MeterStart, cdr.MeterStop)
	if err != nil {
		return models.RateResult{}, err
	}
	return CalculateRate(totalSeconds, totalKWh, plan.Energy, plan.Time, plan.Transaction), nil
}

// ConversionInput carries already-computed amounts, denominated in the base
// currency, plus the conversion target.
type ConversionInput struct {
	Overall     float64
	Energy      float64
	Time        float64
	Transaction float64
	Currency    models.Currency
}

// ConvertRate converts the amounts using a cached quote, or a freshly fetched
// one on a cache miss. When the provider is unavailable the input amounts are
// returned verbatim, labeled with the base currency; a provider outage never
// fails the request.
func (s *RateService) ConvertRate(ctx context.Context, input ConversionInput) models.ConvertedRateResult {
	if quote, ok := s.quotes.Get(ctx, input.Currency); ok {
		return ConvertRateResult(quote, input.Currency, input.Overall, input.Energy, input.Time, input.Transaction)
	}

	quote, err := s.exchange.Convert(ctx, models.BaseCurrency, input.Currency, input.Overall)
	if err != nil {
		s.logger.Warn("exchange provider unavailable, returning base currency amounts",
			zap.String("currency", string(input.Currency)),
			zap.Error(err),
		)
		return models.ConvertedRateResult{
			RateResult: models.RateResult{
				Overall: rawNumber(input.Overall),
				Components: models.RateComponents{
					Energy:      rawNumber(input.Energy),
					Time:        rawNumber(input.Time),
					Transaction: rawNumber(input.Transaction),
				},
			},
			Currency: models.BaseCurrency,
		}
	}

	result := ConvertRateResult(quote, input.Currency, input.Overall, input.Energy, input.Time, input.Transaction)
	s.quotes.Set(ctx, input.Currency, quote)
	return result
}
