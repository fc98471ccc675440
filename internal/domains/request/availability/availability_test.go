package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{
			name:   "disjoint before",
			aStart: day(2026, 3, 1), aEnd: day(2026, 3, 3),
			bStart: day(2026, 3, 5), bEnd: day(2026, 3, 7),
			expected: false,
		},
		{
			name:   "adjacent ranges do not overlap",
			aStart: day(2026, 3, 1), aEnd: day(2026, 3, 3),
			bStart: day(2026, 3, 4), bEnd: day(2026, 3, 6),
			expected: false,
		},
		{
			name:   "shared boundary day overlaps",
			aStart: day(2026, 3, 1), aEnd: day(2026, 3, 3),
			bStart: day(2026, 3, 3), bEnd: day(2026, 3, 6),
			expected: true,
		},
		{
			name:   "contained range overlaps",
			aStart: day(2026, 3, 1), aEnd: day(2026, 3, 10),
			bStart: day(2026, 3, 4), bEnd: day(2026, 3, 5),
			expected: true,
		},
		{
			name:   "identical ranges overlap",
			aStart: day(2026, 3, 1), aEnd: day(2026, 3, 3),
			bStart: day(2026, 3, 1), bEnd: day(2026, 3, 3),
			expected: true,
		},
		{
			name:   "single day inside range",
			aStart: day(2026, 3, 2), aEnd: day(2026, 3, 2),
			bStart: day(2026, 3, 1), bEnd: day(2026, 3, 5),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.expected, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestNormalizeEnd(t *testing.T) {
	t.Run("missing end means single day", func(t *testing.T) {
		assert.Equal(t, day(2026, 4, 10), NormalizeEnd(day(2026, 4, 10), nil))
	})

	t.Run("explicit end is truncated to its day", func(t *testing.T) {
		end := time.Date(2026, 4, 12, 15, 30, 0, 0, time.UTC)
		assert.Equal(t, day(2026, 4, 12), NormalizeEnd(day(2026, 4, 10), &end))
	})
}

func TestCheck_InvalidRange(t *testing.T) {
	rej := Check(day(2026, 5, 10), dayPtr(2026, 5, 8), nil, nil)
	require.NotNil(t, rej)
	assert.Equal(t, RejectInvalidRange, *rej)
}

func TestCheck_BookingOverlap(t *testing.T) {
	bookings := []Booking{
		{Start: day(2026, 5, 5), End: dayPtr(2026, 5, 8), Approved: true},
	}

	t.Run("overlapping range rejected", func(t *testing.T) {
		rej := Check(day(2026, 5, 8), dayPtr(2026, 5, 10), bookings, nil)
		require.NotNil(t, rej)
		assert.Equal(t, RejectOverlapBooking, *rej)
	})

	t.Run("adjacent range accepted", func(t *testing.T) {
		assert.Nil(t, Check(day(2026, 5, 9), dayPtr(2026, 5, 10), bookings, nil))
	})

	t.Run("unapproved bookings are ignored", func(t *testing.T) {
		pending := []Booking{
			{Start: day(2026, 5, 5), End: dayPtr(2026, 5, 8), Approved: false},
		}
		assert.Nil(t, Check(day(2026, 5, 5), dayPtr(2026, 5, 8), pending, nil))
	})

	t.Run("booking without end blocks only its start day", func(t *testing.T) {
		openEnded := []Booking{
			{Start: day(2026, 5, 5), Approved: true},
		}
		rej := Check(day(2026, 5, 5), nil, openEnded, nil)
		require.NotNil(t, rej)
		assert.Equal(t, RejectOverlapBooking, *rej)

		assert.Nil(t, Check(day(2026, 5, 6), dayPtr(2026, 5, 9), openEnded, nil))
	})
}

func TestCheck_BlackoutOverlap(t *testing.T) {
	blackouts := []time.Time{day(2026, 6, 15)}

	t.Run("blackout inside range rejected", func(t *testing.T) {
		rej := Check(day(2026, 6, 14), dayPtr(2026, 6, 16), nil, blackouts)
		require.NotNil(t, rej)
		assert.Equal(t, RejectOverlapBlackout, *rej)
	})

	t.Run("blackout on boundary day rejected", func(t *testing.T) {
		rej := Check(day(2026, 6, 15), dayPtr(2026, 6, 20), nil, blackouts)
		require.NotNil(t, rej)
		assert.Equal(t, RejectOverlapBlackout, *rej)
	})

	t.Run("range avoiding blackout accepted", func(t *testing.T) {
		assert.Nil(t, Check(day(2026, 6, 16), dayPtr(2026, 6, 20), nil, blackouts))
	})
}

func TestCheck_BookingRejectionWinsOverBlackout(t *testing.T) {
	bookings := []Booking{
		{Start: day(2026, 7, 1), End: dayPtr(2026, 7, 5), Approved: true},
	}
	blackouts := []time.Time{day(2026, 7, 3)}

	rej := Check(day(2026, 7, 2), dayPtr(2026, 7, 4), bookings, blackouts)
	require.NotNil(t, rej)
	assert.Equal(t, RejectOverlapBooking, *rej)
}

func TestCheck_TimeOfDayIgnored(t *testing.T) {
	// Requests carry timestamps but scheduling is day-granular.
	bookings := []Booking{
		{Start: time.Date(2026, 8, 1, 23, 0, 0, 0, time.UTC), End: dayPtr(2026, 8, 2), Approved: true},
	}

	rej := Check(time.Date(2026, 8, 2, 1, 0, 0, 0, time.UTC), dayPtr(2026, 8, 3), bookings, nil)
	require.NotNil(t, rej)
	assert.Equal(t, RejectOverlapBooking, *rej)
}
