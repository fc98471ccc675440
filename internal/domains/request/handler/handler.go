package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"friendshavestuff-backend/internal/domains/request/model"
	"friendshavestuff-backend/internal/domains/request/service"
	"friendshavestuff-backend/internal/shared/middleware"
	"friendshavestuff-backend/internal/shared/response"
	"friendshavestuff-backend/internal/shared/utils"
)

type RequestHandler struct {
	requestService service.ServiceInterface
}

func NewRequestHandler(requestService service.ServiceInterface) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
	}
}

func mapRequestError(err error) (int, string) {
	var reqErr *model.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.Code {
		case model.ErrCodeRequestNotFound, model.ErrCodeItemNotFound:
			return http.StatusNotFound, reqErr.Code
		case model.ErrCodeOwnItem:
			return http.StatusBadRequest, reqErr.Code
		case model.ErrCodeUnavailable, model.ErrCodeConflict:
			return http.StatusConflict, reqErr.Code
		case model.ErrCodeUnauthorized:
			return http.StatusForbidden, reqErr.Code
		}
	}

	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		return http.StatusBadRequest, "VALIDATION_ERROR"
	}

	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// CreateRequest files a new borrow request.
// POST /api/v1/requests
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp, err := h.requestService.CreateRequest(c.Request.Context(), principal, req)
	if err != nil {
		statusCode, errCode := mapRequestError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetRequest returns one request visible to the caller.
// GET /api/v1/requests/:id
func (h *RequestHandler) GetRequest(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	resp, err := h.requestService.GetRequest(c.Request.Context(), principal, id)
	if err != nil {
		statusCode, errCode := mapRequestError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListMine returns the caller's outgoing requests.
// GET /api/v1/requests
func (h *RequestHandler) ListMine(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.ListRequestsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	req.SetDefaults()

	requests, total, err := h.requestService.ListMine(c.Request.Context(), principal, req)
	if err != nil {
		statusCode, errCode := mapRequestError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, requests, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// ListIncoming returns requests against the caller's items, pending first.
// GET /api/v1/requests/incoming
func (h *RequestHandler) ListIncoming(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.ListRequestsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	req.SetDefaults()

	requests, total, err := h.requestService.ListIncoming(c.Request.Context(), principal, req)
	if err != nil {
		statusCode, errCode := mapRequestError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, requests, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// Approve moves a pending request to approved.
// POST /api/v1/requests/:id/approve
func (h *RequestHandler) Approve(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	resp, err := h.requestService.Approve(c.Request.Context(), principal, id)
	if err != nil {
		statusCode, errCode := mapRequestError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Decline moves a pending request to declined, optionally with a note.
// POST /api/v1/requests/:id/decline
func (h *RequestHandler) Decline(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	// Body is optional on decline.
	var req model.DeclineRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	resp, err := h.requestService.Decline(c.Request.Context(), principal, id, req)
	if err != nil {
		statusCode, errCode := mapRequestError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// MarkReturned closes out an approved loan.
// POST /api/v1/requests/:id/return
func (h *RequestHandler) MarkReturned(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	resp, err := h.requestService.MarkReturned(c.Request.Context(), principal, id)
	if err != nil {
		statusCode, errCode := mapRequestError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetItemRequests returns the per-item scheduling view.
// GET /api/v1/items/:id/requests
func (h *RequestHandler) GetItemRequests(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	itemID := utils.ParseStringToUUID(c.Param("id"))
	if itemID == uuid.Nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	resp, err := h.requestService.GetItemRequests(c.Request.Context(), principal, itemID)
	if err != nil {
		statusCode, errCode := mapRequestError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}
