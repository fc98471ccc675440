package model

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"friendshavestuff-backend/internal/domains/request/availability"
)

// Item is a lendable thing in the shared catalog.
type Item struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`

	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	ImageURLs   []string `json:"image_urls"`

	// Days the owner marked unavailable, normalized to midnight UTC.
	BlackoutDates []time.Time `json:"blackout_dates"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CoverURL is the first image, or the placeholder when none were uploaded.
func (i *Item) CoverURL() string {
	if len(i.ImageURLs) > 0 {
		return i.ImageURLs[0]
	}
	return PlaceholderImageURL
}

// NormalizeBlackouts truncates days to midnight UTC, drops duplicates, and
// sorts ascending.
func NormalizeBlackouts(dates []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	normalized := make([]time.Time, 0, len(dates))

	for _, d := range dates {
		day := availability.Day(d)
		if !seen[day] {
			seen[day] = true
			normalized = append(normalized, day)
		}
	}

	sort.Slice(normalized, func(a, b int) bool {
		return normalized[a].Before(normalized[b])
	})

	return normalized
}
