package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBlackouts(t *testing.T) {
	d := func(day int, hour int) time.Time {
		return time.Date(2026, 9, day, hour, 30, 0, 0, time.UTC)
	}

	t.Run("truncates, dedupes and sorts", func(t *testing.T) {
		got := NormalizeBlackouts([]time.Time{
			d(12, 15),
			d(3, 0),
			d(12, 8), // same day, different time
			d(7, 23),
		})

		require.Len(t, got, 3)
		assert.Equal(t, time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC), got[0])
		assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), got[1])
		assert.Equal(t, time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), got[2])
	})

	t.Run("empty input yields empty slice", func(t *testing.T) {
		got := NormalizeBlackouts(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestCoverURL(t *testing.T) {
	item := &Item{}
	assert.Equal(t, PlaceholderImageURL, item.CoverURL())

	item.ImageURLs = []string{"http://cdn/items/a/large.jpg", "http://cdn/items/b/large.jpg"}
	assert.Equal(t, "http://cdn/items/a/large.jpg", item.CoverURL())
}
