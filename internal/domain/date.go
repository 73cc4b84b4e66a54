package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	// DisplayDateLayout is the DD/MM/YYYY form drafts and hosts work with
	DisplayDateLayout = "02/01/2006"
	// InputDateLayout is the YYYY-MM-DD form produced by date pickers
	InputDateLayout = "2006-01-02"
)

var ErrInvalidDate = errors.New("date must be a valid DD/MM/YYYY calendar date")

// FormatDisplayDate renders t as DD/MM/YYYY
func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// ParseDisplayDate parses a DD/MM/YYYY value into a UTC date
func ParseDisplayDate(s string) (time.Time, error) {
	t, err := time.Parse(DisplayDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// NormalizeInputDate converts a YYYY-MM-DD picker value to DD/MM/YYYY.
// Values already in display form pass through unchanged.
// The second return is false when raw is neither.
func NormalizeInputDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(InputDateLayout, raw); err == nil {
		return FormatDisplayDate(t), true
	}
	if t, err := time.Parse(DisplayDateLayout, raw); err == nil {
		return FormatDisplayDate(t), true
	}
	return raw, false
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
