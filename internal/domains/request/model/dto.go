package model

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// DateLayout is the wire format for scheduling dates.
const DateLayout = "2006-01-02"

// CreateRequestRequest - borrower asks for an item over a date range.
// A missing end date means a single-day borrow.
type CreateRequestRequest struct {
	ItemID    uuid.UUID `json:"item_id" binding:"required"`
	StartDate string    `json:"start_date" binding:"required"`
	EndDate   *string   `json:"end_date,omitempty"`
	Message   *string   `json:"message,omitempty"`
}

func (r CreateRequestRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ItemID, validation.Required.Error("item_id is required")),
		validation.Field(&r.StartDate,
			validation.Required.Error("start_date is required"),
			validation.Date(DateLayout).Error("start_date must be YYYY-MM-DD"),
		),
		validation.Field(&r.EndDate,
			validation.When(r.EndDate != nil,
				validation.Date(DateLayout).Error("end_date must be YYYY-MM-DD"),
			),
		),
		validation.Field(&r.Message,
			validation.When(r.Message != nil, validation.Length(0, 1000)),
		),
	)
}

// ParseDates converts the wire dates after Validate has passed.
func (r CreateRequestRequest) ParseDates() (time.Time, *time.Time, error) {
	start, err := time.ParseInLocation(DateLayout, r.StartDate, time.UTC)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("invalid start_date: %w", err)
	}

	if r.EndDate == nil {
		return start, nil, nil
	}

	end, err := time.ParseInLocation(DateLayout, *r.EndDate, time.UTC)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("invalid end_date: %w", err)
	}

	return start, &end, nil
}

// DeclineRequestRequest - optional note to the requester.
type DeclineRequestRequest struct {
	Message *string `json:"message,omitempty"`
}

func (r DeclineRequestRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message,
			validation.When(r.Message != nil, validation.Length(0, 1000)),
		),
	)
}

// UserSummary embeds the minimal profile shown next to a request.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

// RequestResponse is the API representation of a borrow request.
type RequestResponse struct {
	ID             uuid.UUID    `json:"id"`
	ItemID         uuid.UUID    `json:"item_id"`
	OwnerID        uuid.UUID    `json:"owner_id"`
	Requester      UserSummary  `json:"requester"`
	Status         Status       `json:"status"`
	StartDate      string       `json:"start_date"`
	EndDate        *string      `json:"end_date,omitempty"`
	Message        *string      `json:"message,omitempty"`
	DeclineMessage *string      `json:"decline_message,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

func (r *BorrowRequest) ToResponse(requester UserSummary) RequestResponse {
	resp := RequestResponse{
		ID:             r.ID,
		ItemID:         r.ItemID,
		OwnerID:        r.OwnerID,
		Requester:      requester,
		Status:         r.Status,
		StartDate:      r.StartDate.Format(DateLayout),
		Message:        r.Message,
		DeclineMessage: r.DeclineMessage,
		CreatedAt:      r.CreatedAt,
	}
	if r.EndDate != nil {
		end := r.EndDate.Format(DateLayout)
		resp.EndDate = &end
	}
	return resp
}

// BookingRange is a reserved span shown on the item calendar.
type BookingRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ItemRequestsResponse is the per-item view: the viewer's focal request,
// the approved calendar, and the borrowing history.
type ItemRequestsResponse struct {
	Focal            *RequestResponse  `json:"focal,omitempty"`
	ApprovedBookings []BookingRange    `json:"approved_bookings"`
	History          []RequestResponse `json:"history"`
}

// ListRequestsRequest - pagination for my-requests / incoming views.
type ListRequestsRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (r *ListRequestsRequest) SetDefaults() {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Limit == 0 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
}
