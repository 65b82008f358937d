package utils

import (
	"strings"
	"time"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
)

const dateLayout = "2006-01-02"

// ParseExpiry accepts an RFC3339 timestamp or a calendar date. A date means
// the last instant of that day in UTC, so "2026-08-31" is still live all of
// August 31st. Empty input means no expiry.
func ParseExpiry(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		tt := t.UTC()
		return &tt, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, domain.ErrInvalidExpiry
	}
	end := d.UTC().AddDate(0, 0, 1).Add(-time.Nanosecond)
	return &end, nil
}

// FormatTimePtr renders t as RFC3339, or "" for nil.
func FormatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
