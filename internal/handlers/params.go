package handlers

import (
	"time"

	"github.com/reqroute/reqroute-api/internal/constants"
)

// parseDate parses a "YYYY-MM-DD" date as midnight UTC.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(constants.DateLayout, s, time.UTC)
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
