package service

import (
	"errors"
	"strings"
	"time"
)

// Validation failures for charge detail records. Format errors map to 422,
// range errors to 400.
var (
	ErrInvalidTimestampFormat = errors.New("invalid timestamp - timestamp should be of type isoformat")
	ErrInvalidTimeRange       = errors.New("timestamp_stop cannot be before timestamp_start or be equal")
	ErrInvalidMeterRange      = errors.New("meter_start cannot be greater than meter_stop or be equal")
)

// Accepted ISO 8601 layouts. RFC 3339 covers both the Z designator and
// explicit offsets; offset-less timestamps are treated as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ValidateTimestamps checks that both session timestamps parse as ISO 8601
// and that the session has positive duration, returning the whole elapsed
// seconds with any sub-second remainder truncated.
func ValidateTimestamps(start, stop string) (int64, error) {
	timestampStart, err := parseTimestamp(start)
	if err != nil {
		return 0, ErrInvalidTimestampFormat
	}
	timestampStop, err := parseTimestamp(stop)
	if err != nil {
		return 0, ErrInvalidTimestampFormat
	}
	if !timestampStop.After(timestampStart) {
		return 0, ErrInvalidTimeRange
	}
	return int64(timestampStop.Sub(timestampStart) / time.Second), nil
}

// ValidateMeters checks meter reading order and converts consumed watt-hours
// to kilowatt-hours.
func ValidateMeters(start, stop int64) (float64, error) {
	if stop <= start {
		return 0, ErrInvalidMeterRange
	}
	return float64(stop-start) / 1000, nil
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
