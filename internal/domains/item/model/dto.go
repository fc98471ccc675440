package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// DateLayout matches the scheduling wire format.
const DateLayout = "2006-01-02"

// CreateItemRequest - list a new item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
}

func (r CreateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 120),
		),
		validation.Field(&r.Description, validation.Length(0, 4000)),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.Length(1, 60),
		),
	)
}

// UpdateItemRequest - owner edits the listing.
type UpdateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 120),
		),
		validation.Field(&r.Description, validation.Length(0, 4000)),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.Length(1, 60),
		),
	)
}

// SetBlackoutsRequest - owner replaces the set of unavailable days.
type SetBlackoutsRequest struct {
	Dates []string `json:"dates"`
}

func (r SetBlackoutsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Dates,
			validation.Length(0, 366),
			validation.Each(validation.Date(DateLayout).Error("dates must be YYYY-MM-DD")),
		),
	)
}

// ParseDates converts the wire dates after Validate has passed.
func (r SetBlackoutsRequest) ParseDates() ([]time.Time, error) {
	dates := make([]time.Time, 0, len(r.Dates))
	for _, s := range r.Dates {
		d, err := time.ParseInLocation(DateLayout, s, time.UTC)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// OwnerSummary embeds the owner profile in item responses.
type OwnerSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

// ItemResponse is the API representation of a catalog item.
type ItemResponse struct {
	ID            uuid.UUID    `json:"id"`
	Owner         OwnerSummary `json:"owner"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	CoverURL      string       `json:"cover_url"`
	ImageURLs     []string     `json:"image_urls"`
	BlackoutDates []string     `json:"blackout_dates"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (i *Item) ToResponse(owner OwnerSummary) ItemResponse {
	blackouts := make([]string, 0, len(i.BlackoutDates))
	for _, d := range i.BlackoutDates {
		blackouts = append(blackouts, d.Format(DateLayout))
	}

	images := i.ImageURLs
	if images == nil {
		images = []string{}
	}

	return ItemResponse{
		ID:            i.ID,
		Owner:         owner,
		Name:          i.Name,
		Description:   i.Description,
		Category:      i.Category,
		CoverURL:      i.CoverURL(),
		ImageURLs:     images,
		BlackoutDates: blackouts,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

// ListItemsRequest - catalog browsing with filters.
type ListItemsRequest struct {
	Category string     `form:"category"`
	OwnerID  *uuid.UUID `form:"owner_id"`
	Search   string     `form:"search"`
	Page     int        `form:"page"`
	Limit    int        `form:"limit"`
}

func (r *ListItemsRequest) SetDefaults() {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Limit == 0 {
		r.Limit = 24
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
}
