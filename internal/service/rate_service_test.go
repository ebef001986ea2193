package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chargerate/internal/clients"
	"chargerate/internal/models"
	redisstore "chargerate/internal/redis"
)

func newTestService(t *testing.T, providerURL string) (*RateService, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := zap.NewNop()
	svc := NewRateService(
		redisstore.NewQuoteStore(client, logger),
		clients.NewExchangeClient(providerURL, logger),
		logger,
	)
	return svc, server
}

func TestApplyRate(t *testing.T) {
	svc, _ := newTestService(t, "http://localhost:0")

	plan := models.RatePlan{Energy: 0.3, Time: 2, Transaction: 1}
	cdr := models.CDR{
		TimestampStart: "2021-04-05T10:04:00Z",
		TimestampStop:  "2021-04-05T11:27:00Z",
		MeterStart:     1204307,
		MeterStop:      1215230,
	}

	result, err := svc.ApplyRate(plan, cdr)
	require.NoError(t, err)

	assert.Equal(t, json.Number("7.04"), result.Overall)
	assert.Equal(t, json.Number("3.277"), result.Components.Energy)
	assert.Equal(t, json.Number("2.767"), result.Components.Time)
	assert.Equal(t, json.Number("1"), result.Components.Transaction)
}

func TestApplyRatePropagatesValidationErrors(t *testing.T) {
	svc, _ := newTestService(t, "http://localhost:0")
	plan := models.RatePlan{Energy: 0.3, Time: 2, Transaction: 1}

	_, err := svc.ApplyRate(plan, models.CDR{
		TimestampStart: "garbage",
		TimestampStop:  "2021-04-05T11:27:00Z",
		MeterStart:     1,
		MeterStop:      2,
	})
	assert.ErrorIs(t, err, ErrInvalidTimestampFormat)

	_, err = svc.ApplyRate(plan, models.CDR{
		TimestampStart: "2021-04-05T10:04:00Z",
		TimestampStop:  "2021-04-05T11:27:00Z",
		MeterStart:     2,
		MeterStop:      1,
	})
	assert.ErrorIs(t, err, ErrInvalidMeterRange)
}

func TestConvertRateFetchesAndCaches(t *testing.T) {
	calls := 0
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "EUR", r.URL.Query().Get("from"))
		assert.Equal(t, "USD", r.URL.Query().Get("to"))
		_, _ = w.Write([]byte(`{"result":11.3,"info":{"rate":1.13}}`))
	}))
	defer provider.Close()

	svc, server := newTestService(t, provider.URL)
	input := ConversionInput{Overall: 10, Energy: 4, Time: 3, Transaction: 3, Currency: models.USD}

	first := svc.ConvertRate(context.Background(), input)
	assert.Equal(t, models.USD, first.Currency)
	assert.Equal(t, json.Number("11.30"), first.Overall)
	assert.Equal(t, 1, calls)
	assert.True(t, server.Exists("USD"), "fresh quote should be cached")

	// Second request is served from cache; the provider is gone by now.
	provider.Close()
	second := svc.ConvertRate(context.Background(), input)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestConvertRateFallsBackWhenProviderUnavailable(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	provider.Close()

	svc, server := newTestService(t, provider.URL)
	result := svc.ConvertRate(context.Background(), ConversionInput{
		Overall: 10.5, Energy: 4.2, Time: 3.1, Transaction: 3.2, Currency: models.JPY,
	})

	assert.Equal(t, models.BaseCurrency, result.Currency)
	assert.Equal(t, json.Number("10.5"), result.Overall)
	assert.Equal(t, json.Number("4.2"), result.Components.Energy)
	assert.Equal(t, json.Number("3.1"), result.Components.Time)
	assert.Equal(t, json.Number("3.2"), result.Components.Transaction)
	assert.False(t, server.Exists("JPY"), "nothing should be cached on fallback")
}

func TestConvertRateFallsBackOnMalformedResponse(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer provider.Close()

	svc, _ := newTestService(t, provider.URL)
	result := svc.ConvertRate(context.Background(), ConversionInput{
		Overall: 10, Energy: 4, Time: 3, Transaction: 3, Currency: models.GBP,
	})

	assert.Equal(t, models.BaseCurrency, result.Currency)
	assert.Equal(t, json.Number("10"), result.Overall)
}
