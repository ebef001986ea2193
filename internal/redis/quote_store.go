package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"chargerate/internal/models"
)

// Conversion results stay valid through the end of the calendar day on which
// they were fetched. The physical TTL is a safety net on top of the logical
// check performed on read.
const entryTTL = 24 * time.Hour

// envelope is the value stored per currency: the capture timestamp plus the
// raw provider payload, replaced whole on every refresh.
type envelope struct {
	Timestamp string          `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// QuoteStore caches the latest exchange quote per currency code in redis.
// Backend failures are never surfaced to callers: reads degrade to a miss and
// writes to a logged no-op.
type QuoteStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewQuoteStore returns a redis-backed quote cache.
func NewQuoteStore(client *redis.Client, logger *zap.Logger) *QuoteStore {
	return &QuoteStore{client: client, logger: logger}
}

// Get returns the cached quote for the currency, if any. Entries past their
// day boundary are deleted on read (lazy invalidation) and reported as a miss.
func (s *QuoteStore) Get(ctx context.Context, currency models.Currency) (models.Quote, bool) {
	value, err := s.client.Get(ctx, string(currency)).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("quote cache read failed", zap.String("currency", string(currency)), zap.Error(err))
		}
		return models.Quote{}, false
	}

	var env envelope
	if err := json.Unmarshal([]byte(value), &env); err != nil {
		s.logger.Warn("quote cache entry is malformed", zap.String("currency", string(currency)), zap.Error(err))
		return models.Quote{}, false
	}

	fetchedAt, err := time.Parse(time.RFC3339Nano, env.Timestamp)
	if err != nil {
		s.logger.Warn("quote cache timestamp is malformed", zap.String("currency", string(currency)), zap.Error(err))
		return models.Quote{}, false
	}

	if expired(fetchedAt, time.Now()) {
		if err := s.client.Del(ctx, string(currency)).Err(); err != nil {
			s.logger.Warn("quote cache delete failed", zap.String("currency", string(currency)), zap.Error(err))
		}
		s.logger.Info("quote cache entry outdated, invalidated", zap.String("currency", string(currency)))
		return models.Quote{}, false
	}

	s.logger.Info("quote served from cache", zap.String("currency", string(currency)))
	return models.Quote{
		Rate: gjson.GetBytes(env.Data, "info.rate").Float(),
		Raw:  env.Data,
	}, true
}

// Set stores the quote for the currency, stamping the capture time. Failures
// are logged and swallowed.
func (s *QuoteStore) Set(ctx context.Context, currency models.Currency, quote models.Quote) {
	value, err := json.Marshal(envelope{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Data:      quote.Raw,
	})
	if err != nil {
		s.logger.Warn("quote cache marshal failed", zap.String("currency", string(currency)), zap.Error(err))
		return
	}

	if err := s.client.Set(ctx, string(currency), value, entryTTL).Err(); err != nil {
		s.logger.Warn("quote cache write failed", zap.String("currency", string(currency)), zap.Error(err))
		return
	}
	s.logger.Info("quote cached", zap.String("currency", string(currency)))
}

// expired reports whether an entry captured at fetchedAt is no longer valid
// at now: validity ends at midnight UTC of the day after capture, not a
// rolling 24 hours.
func expired(fetchedAt, now time.Time) bool {
	next := fetchedAt.UTC().AddDate(0, 0, 1)
	boundary := time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, time.UTC)
	return !now.UTC().Before(boundary)
}
