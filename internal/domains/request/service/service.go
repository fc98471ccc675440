package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"friendshavestuff-backend/internal/domains/request/availability"
	"friendshavestuff-backend/internal/domains/request/model"
	"friendshavestuff-backend/internal/domains/request/repository"
	"friendshavestuff-backend/internal/shared"
	"friendshavestuff-backend/pkg/database"
	"friendshavestuff-backend/pkg/logger"
)

type requestService struct {
	requestRepo repository.RequestRepository
	tx          database.TxRunner
	notifier    Notifier
}

func NewRequestService(requestRepo repository.RequestRepository, tx database.TxRunner, notifier Notifier) ServiceInterface {
	return &requestService{
		requestRepo: requestRepo,
		tx:          tx,
		notifier:    notifier,
	}
}

// CreateRequest validates the range, then runs the availability check and the
// insert in one transaction holding the item row lock. Two concurrent
// requests for the same item serialize on that lock, so the second one sees
// the first one's booking and cannot double-book.
func (s *requestService) CreateRequest(ctx context.Context, principal shared.Principal, req model.CreateRequestRequest) (*model.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, end, err := req.ParseDates()
	if err != nil {
		return nil, err
	}

	// Reject malformed ranges before touching the database.
	if rej := availability.Check(start, end, nil, nil); rej != nil {
		return nil, model.NewUnavailableError(*rej)
	}

	var created *model.BorrowRequest
	var snapshot *repository.ItemSnapshot

	err = s.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		snap, err := s.requestRepo.GetItemForUpdate(ctx, tx, req.ItemID)
		if err != nil {
			if errors.Is(err, model.ErrItemNotFound) {
				return model.NewItemNotFoundError()
			}
			return err
		}

		if snap.OwnerID == principal.ID {
			return model.NewOwnItemError()
		}

		approved, err := s.requestRepo.ListApprovedByItemTx(ctx, tx, req.ItemID)
		if err != nil {
			return err
		}

		bookings := make([]availability.Booking, 0, len(approved))
		for _, a := range approved {
			bookings = append(bookings, availability.Booking{
				Start:    a.StartDate,
				End:      a.EndDate,
				Approved: true,
			})
		}

		if rej := availability.Check(start, end, bookings, snap.BlackoutDays); rej != nil {
			return model.NewUnavailableError(*rej)
		}

		request := &model.BorrowRequest{
			ID:          uuid.New(),
			ItemID:      snap.ID,
			RequesterID: principal.ID,
			OwnerID:     snap.OwnerID,
			Status:      model.StatusPending,
			StartDate:   availability.Day(start),
			Message:     req.Message,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if end != nil {
			e := availability.Day(*end)
			request.EndDate = &e
		}

		if err := s.requestRepo.CreateTx(ctx, tx, request); err != nil {
			return err
		}

		created = request
		snapshot = snap
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyCreated(ctx, created, snapshot, principal)

	resp := created.ToResponse(model.UserSummary{
		ID:   principal.ID,
		Name: principal.Name,
	})
	return &resp, nil
}

func (s *requestService) notifyCreated(ctx context.Context, request *model.BorrowRequest, snapshot *repository.ItemSnapshot, principal shared.Principal) {
	_, ownerEmail, err := s.requestRepo.GetContact(ctx, snapshot.OwnerID)
	if err != nil {
		logger.Error("Failed to resolve owner contact for notification", err)
		return
	}

	s.notifier.RequestCreated(ctx, shared.RequestCreatedPayload{
		OwnerEmail:     ownerEmail,
		RequesterEmail: principal.Email,
		RequesterName:  principal.Name,
		ItemID:         request.ItemID.String(),
		ItemName:       snapshot.Name,
		StartDate:      request.StartDate,
		EndDate:        request.EffectiveEnd(),
	})
}

func (s *requestService) GetRequest(ctx context.Context, principal shared.Principal, id uuid.UUID) (*model.RequestResponse, error) {
	request, err := s.getVisible(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	summary, err := s.requestRepo.GetRequesterSummary(ctx, request.RequesterID)
	if err != nil {
		return nil, err
	}

	resp := request.ToResponse(summary)
	return &resp, nil
}

// getVisible loads a request and enforces that only the involved parties or
// an admin can see it.
func (s *requestService) getVisible(ctx context.Context, principal shared.Principal, id uuid.UUID) (*model.BorrowRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrRequestNotFound) {
			return nil, model.NewRequestNotFoundError()
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	if request.RequesterID != principal.ID && request.OwnerID != principal.ID && !principal.Admin {
		return nil, model.NewRequestNotFoundError()
	}

	return request, nil
}

func (s *requestService) ListMine(ctx context.Context, principal shared.Principal, req model.ListRequestsRequest) ([]model.RequestResponse, int, error) {
	req.SetDefaults()

	requests, total, err := s.requestRepo.ListByRequester(ctx, principal.ID, req.Page, req.Limit)
	if err != nil {
		return nil, 0, err
	}

	responses, err := s.toResponses(ctx, requests)
	if err != nil {
		return nil, 0, err
	}

	return responses, total, nil
}

func (s *requestService) ListIncoming(ctx context.Context, principal shared.Principal, req model.ListRequestsRequest) ([]model.RequestResponse, int, error) {
	req.SetDefaults()

	requests, total, err := s.requestRepo.ListIncoming(ctx, principal.ID, req.Page, req.Limit)
	if err != nil {
		return nil, 0, err
	}

	responses, err := s.toResponses(ctx, requests)
	if err != nil {
		return nil, 0, err
	}

	return responses, total, nil
}

func (s *requestService) Approve(ctx context.Context, principal shared.Principal, id uuid.UUID) (*model.RequestResponse, error) {
	return s.transition(ctx, principal, id, model.StatusApproved, nil, ownerOnly)
}

func (s *requestService) Decline(ctx context.Context, principal shared.Principal, id uuid.UUID, req model.DeclineRequestRequest) (*model.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.transition(ctx, principal, id, model.StatusDeclined, req.Message, ownerOnly)
}

func (s *requestService) MarkReturned(ctx context.Context, principal shared.Principal, id uuid.UUID) (*model.RequestResponse, error) {
	return s.transition(ctx, principal, id, model.StatusReturned, nil, ownerOrRequester)
}

type authRule int

const (
	ownerOnly authRule = iota
	ownerOrRequester
)

// transition applies one state-machine step with a conditional update.
func (s *requestService) transition(ctx context.Context, principal shared.Principal, id uuid.UUID, to model.Status, declineMessage *string, rule authRule) (*model.RequestResponse, error) {
	request, err := s.getVisible(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	switch rule {
	case ownerOnly:
		if request.OwnerID != principal.ID {
			return nil, model.NewUnauthorizedError("Only the item owner can do this")
		}
	case ownerOrRequester:
		if request.OwnerID != principal.ID && request.RequesterID != principal.ID {
			return nil, model.NewUnauthorizedError("Only the owner or the requester can do this")
		}
	}

	if !request.Status.CanTransitionTo(to) {
		return nil, model.NewConflictError(fmt.Sprintf(
			"Cannot move a %s request to %s", request.Status, to))
	}

	if err := s.requestRepo.UpdateStatus(ctx, id, request.Status, to, declineMessage); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewConflictError("Request was updated by someone else, reload and try again")
		}
		if errors.Is(err, model.ErrRequestNotFound) {
			return nil, model.NewRequestNotFoundError()
		}
		return nil, err
	}

	request.Status = to
	if declineMessage != nil {
		request.DeclineMessage = declineMessage
	}

	s.notifyStatusChanged(ctx, request)

	summary, err := s.requestRepo.GetRequesterSummary(ctx, request.RequesterID)
	if err != nil {
		return nil, err
	}

	resp := request.ToResponse(summary)
	return &resp, nil
}

func (s *requestService) notifyStatusChanged(ctx context.Context, request *model.BorrowRequest) {
	snapshot, err := s.requestRepo.GetItemSnapshot(ctx, request.ItemID)
	if err != nil {
		logger.Error("Failed to resolve item for notification", err)
		return
	}

	ownerName, ownerEmail, err := s.requestRepo.GetContact(ctx, request.OwnerID)
	if err != nil {
		logger.Error("Failed to resolve owner contact for notification", err)
		return
	}

	_, requesterEmail, err := s.requestRepo.GetContact(ctx, request.RequesterID)
	if err != nil {
		logger.Error("Failed to resolve requester contact for notification", err)
		return
	}

	message := ""
	if request.DeclineMessage != nil {
		message = *request.DeclineMessage
	}

	s.notifier.StatusChanged(ctx, shared.StatusChangedPayload{
		RequesterEmail: requesterEmail,
		OwnerEmail:     ownerEmail,
		OwnerName:      ownerName,
		ItemID:         request.ItemID.String(),
		ItemName:       snapshot.Name,
		Status:         string(request.Status),
		Message:        message,
		StartDate:      request.StartDate,
		EndDate:        request.EffectiveEnd(),
	})
}

func (s *requestService) GetItemRequests(ctx context.Context, principal shared.Principal, itemID uuid.UUID) (*model.ItemRequestsResponse, error) {
	if _, err := s.requestRepo.GetItemSnapshot(ctx, itemID); err != nil {
		if errors.Is(err, model.ErrItemNotFound) {
			return nil, model.NewItemNotFoundError()
		}
		return nil, err
	}

	requests, err := s.requestRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	resp := &model.ItemRequestsResponse{
		ApprovedBookings: make([]model.BookingRange, 0),
		History:          make([]model.RequestResponse, 0),
	}

	var mine []*model.BorrowRequest
	for _, r := range requests {
		if r.Status == model.StatusApproved {
			resp.ApprovedBookings = append(resp.ApprovedBookings, model.BookingRange{
				StartDate: r.StartDate.Format(model.DateLayout),
				EndDate:   r.EffectiveEnd().Format(model.DateLayout),
			})
		}
		if r.RequesterID == principal.ID {
			mine = append(mine, r)
		}
	}

	summaries, err := s.summariesFor(ctx, requests)
	if err != nil {
		return nil, err
	}

	if focal := model.SelectFocal(mine); focal != nil {
		focalResp := focal.ToResponse(summaries[focal.RequesterID])
		resp.Focal = &focalResp
	}

	for _, r := range model.FilterHistory(requests, time.Now()) {
		resp.History = append(resp.History, r.ToResponse(summaries[r.RequesterID]))
	}

	return resp, nil
}

func (s *requestService) toResponses(ctx context.Context, requests []*model.BorrowRequest) ([]model.RequestResponse, error) {
	summaries, err := s.summariesFor(ctx, requests)
	if err != nil {
		return nil, err
	}

	responses := make([]model.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, r.ToResponse(summaries[r.RequesterID]))
	}
	return responses, nil
}

func (s *requestService) summariesFor(ctx context.Context, requests []*model.BorrowRequest) (map[uuid.UUID]model.UserSummary, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, r := range requests {
		if !seen[r.RequesterID] {
			seen[r.RequesterID] = true
			ids = append(ids, r.RequesterID)
		}
	}

	summaries, err := s.requestRepo.GetRequesterSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Removed members still appear on old requests.
	for _, id := range ids {
		if _, ok := summaries[id]; !ok {
			summaries[id] = model.UserSummary{ID: id, Name: "Former member"}
		}
	}

	return summaries, nil
}
