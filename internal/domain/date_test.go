package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeInputDate(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{raw: "2024-03-05", want: "05/03/2024", wantOK: true},
		{raw: "1999-12-31", want: "31/12/1999", wantOK: true},
		{raw: "05/03/2024", want: "05/03/2024", wantOK: true},
		{raw: "2024-02-30", want: "2024-02-30", wantOK: false},
		{raw: "not a date", want: "not a date", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeInputDate(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseDisplayDate(t *testing.T) {
	d, err := ParseDisplayDate("01/01/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDisplayDate("2024-01-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestFormatDisplayDate(t *testing.T) {
	assert.Equal(t, "09/11/2023", FormatDisplayDate(time.Date(2023, time.November, 9, 23, 59, 0, 0, time.UTC)))
}
