package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func newRequest(status Status, createdAt time.Time) *BorrowRequest {
	return &BorrowRequest{
		ID:        uuid.New(),
		Status:    status,
		StartDate: day("2026-06-01"),
		CreatedAt: createdAt,
	}
}

func TestSelectFocal(t *testing.T) {
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, SelectFocal(nil))
	})

	t.Run("approved beats pending", func(t *testing.T) {
		pending := newRequest(StatusPending, base.Add(time.Hour))
		approved := newRequest(StatusApproved, base)

		focal := SelectFocal([]*BorrowRequest{pending, approved})
		require.NotNil(t, focal)
		assert.Equal(t, approved.ID, focal.ID)
	})

	t.Run("pending beats declined and returned", func(t *testing.T) {
		declined := newRequest(StatusDeclined, base.Add(2*time.Hour))
		returned := newRequest(StatusReturned, base.Add(time.Hour))
		pending := newRequest(StatusPending, base)

		focal := SelectFocal([]*BorrowRequest{declined, returned, pending})
		require.NotNil(t, focal)
		assert.Equal(t, pending.ID, focal.ID)
	})

	t.Run("tie goes to most recent", func(t *testing.T) {
		older := newRequest(StatusDeclined, base)
		newer := newRequest(StatusDeclined, base.Add(time.Minute))

		focal := SelectFocal([]*BorrowRequest{older, newer})
		require.NotNil(t, focal)
		assert.Equal(t, newer.ID, focal.ID)
	})
}

func TestInHistory(t *testing.T) {
	now := day("2026-06-15")

	t.Run("returned always counts", func(t *testing.T) {
		r := newRequest(StatusReturned, now)
		assert.True(t, r.InHistory(now))
	})

	t.Run("approved with past end counts", func(t *testing.T) {
		r := newRequest(StatusApproved, now)
		r.StartDate = day("2026-06-01")
		end := day("2026-06-10")
		r.EndDate = &end
		assert.True(t, r.InHistory(now))
	})

	t.Run("approved ending today is still active", func(t *testing.T) {
		r := newRequest(StatusApproved, now)
		r.StartDate = day("2026-06-10")
		end := day("2026-06-15")
		r.EndDate = &end
		assert.False(t, r.InHistory(now))
	})

	t.Run("open-ended approved covers its start day only", func(t *testing.T) {
		r := newRequest(StatusApproved, now)
		r.StartDate = day("2026-06-10")
		assert.True(t, r.InHistory(now))

		r.StartDate = day("2026-06-15")
		assert.False(t, r.InHistory(now))
	})

	t.Run("pending and declined never count", func(t *testing.T) {
		assert.False(t, newRequest(StatusPending, now).InHistory(now))
		assert.False(t, newRequest(StatusDeclined, now).InHistory(now))
	})
}

func TestFilterHistory(t *testing.T) {
	now := day("2026-06-15")

	returned := newRequest(StatusReturned, now)
	pending := newRequest(StatusPending, now)
	pastApproved := newRequest(StatusApproved, now)
	pastApproved.StartDate = day("2026-06-01")
	end := day("2026-06-05")
	pastApproved.EndDate = &end

	history := FilterHistory([]*BorrowRequest{returned, pending, pastApproved}, now)
	require.Len(t, history, 2)
	assert.Equal(t, returned.ID, history[0].ID)
	assert.Equal(t, pastApproved.ID, history[1].ID)
}
