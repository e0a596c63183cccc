package extract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstrecon/internal/extract"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"13/11/2025", "2025-11-13"},
		{"13-11-2025", "2025-11-13"},
		{"5/1/24", "2024-01-05"},
		{"13 Nov 2025", "2025-11-13"},
		{"13 November 2025", "2025-11-13"},
		{"1 jan 2024", "2024-01-01"},
		{"2025-11-13", "2025-11-13"},
		{"29/02/2024", "2024-02-29"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := extract.ParseDate(tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "Not found", "31/02/2024", "29/02/2023", "1/13/2025", "00/01/2024", "tomorrow", "13 Foo 2025"} {
		assert.Nil(t, extract.ParseDate(in), "input %q", in)
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Year() < 2025; d = d.AddDate(0, 0, 17) {
		got := extract.ParseDate(d.Format("02/01/2006"))
		require.NotNil(t, got)
		assert.True(t, d.Equal(*got), "date %s", d)
	}
}

func TestLocateDate(t *testing.T) {
	assert.Equal(t, "13/11/2025", extract.LocateDate("Invoice No: 7 Date: 13/11/2025 Due 20/11/2025"))
	assert.Equal(t, "20/11/2025", extract.LocateDate("Due 20/11/2025 Dated: 13/11/2025"))
	assert.Equal(t, "5 Jan 2024", extract.LocateDate("Dated 5 Jan 2024 Total Rs.100"))
	assert.Equal(t, "Not found", extract.LocateDate("no date here"))
}
