package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"friendshavestuff-backend/internal/domains/comment/model"
	"friendshavestuff-backend/internal/domains/comment/service"
	"friendshavestuff-backend/internal/shared/middleware"
	"friendshavestuff-backend/internal/shared/response"
	"friendshavestuff-backend/internal/shared/utils"
)

type CommentHandler struct {
	commentService service.ServiceInterface
}

func NewCommentHandler(commentService service.ServiceInterface) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

func mapCommentError(err error) (int, string) {
	var cmtErr *model.CommentError
	if errors.As(err, &cmtErr) {
		switch cmtErr.Code {
		case model.ErrCodeCommentNotFound, model.ErrCodeItemNotFound:
			return http.StatusNotFound, cmtErr.Code
		case model.ErrCodeUnauthorized:
			return http.StatusForbidden, cmtErr.Code
		case model.ErrCodeInvalidParent:
			return http.StatusBadRequest, cmtErr.Code
		}
	}

	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		return http.StatusBadRequest, "VALIDATION_ERROR"
	}

	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// CreateComment posts a comment or reply on an item.
// POST /api/v1/items/:id/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
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

	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp, err := h.commentService.CreateComment(c.Request.Context(), principal, itemID, req)
	if err != nil {
		statusCode, errCode := mapCommentError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ListComments returns the item's thread, replies grouped under parents.
// GET /api/v1/items/:id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	itemID := utils.ParseStringToUUID(c.Param("id"))
	if itemID == uuid.Nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	resp, err := h.commentService.ListComments(c.Request.Context(), itemID)
	if err != nil {
		statusCode, errCode := mapCommentError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// DeleteComment removes the caller's comment (and its replies if top-level).
// DELETE /api/v1/comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid comment ID")
		return
	}

	deleted, err := h.commentService.DeleteComment(c.Request.Context(), principal, id)
	if err != nil {
		statusCode, errCode := mapCommentError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}
