package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f228476653/moneyTracking/internal/statements"
)

func TestDate(t *testing.T) {
	want := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		raw  string
	}{
		{"iso", "2025-01-15"},
		{"us slash", "01/15/2025"},
		{"european slash", "15/01/2025"},
		{"iso slash", "2025/01/15"},
		{"month name", "Jan 15, 2025"},
		{"full month name", "January 15, 2025"},
		{"day first month name", "15 Jan 2025"},
		{"compact", "20250115"},
		{"dotted", "2025.01.15"},
		{"timestamp", "2025-01-15 10:30:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Date(tc.raw)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "parsed %s as %s", tc.raw, got)
		})
	}

	t.Run("blank defaults to today", func(t *testing.T) {
		got, err := Date("")
		require.NoError(t, err)
		assert.True(t, got.Equal(Today()))
	})

	t.Run("garbage returns DateError", func(t *testing.T) {
		_, err := Date("sometime in march")
		var dateErr *statements.DateError
		require.ErrorAs(t, err, &dateErr)
		assert.Equal(t, "sometime in march", dateErr.Raw)
	})

	t.Run("european wins when us is impossible", func(t *testing.T) {
		got, err := Date("25/01/2025")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2025, time.January, 25, 0, 0, 0, 0, time.UTC)))
	})
}

func TestToday(t *testing.T) {
	now := Today()
	assert.Equal(t, 0, now.Hour())
	assert.Equal(t, 0, now.Minute())
	assert.Equal(t, time.UTC, now.Location())
}
