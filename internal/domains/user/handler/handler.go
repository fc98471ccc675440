package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"friendshavestuff-backend/internal/domains/user/model"
	"friendshavestuff-backend/internal/domains/user/service"
	"friendshavestuff-backend/internal/shared/middleware"
	"friendshavestuff-backend/internal/shared/response"
	"friendshavestuff-backend/internal/shared/utils"
)

type UserHandler struct {
	userService service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// mapUserError translates domain errors to HTTP status + code.
func mapUserError(err error) (int, string) {
	var userErr *model.UserError
	if errors.As(err, &userErr) {
		switch userErr.Code {
		case model.ErrCodeUserNotFound:
			return http.StatusNotFound, userErr.Code
		case model.ErrCodeAlreadyInvited:
			return http.StatusConflict, userErr.Code
		case model.ErrCodeNotInvited:
			return http.StatusForbidden, userErr.Code
		case model.ErrCodeUnauthorized:
			return http.StatusForbidden, userErr.Code
		case model.ErrCodeLastAdmin:
			return http.StatusConflict, userErr.Code
		}
	}

	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		return http.StatusBadRequest, "VALIDATION_ERROR"
	}

	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// CreateSession links a sign-in to an invited member and issues a token.
// POST /api/v1/auth/session
func (h *UserHandler) CreateSession(c *gin.Context) {
	var req model.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp, err := h.userService.CreateSession(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Me returns the signed-in member's profile.
// GET /api/v1/auth/me
func (h *UserHandler) Me(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	resp, err := h.userService.GetUser(c.Request.Context(), principal.ID)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListUsers returns the member directory.
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req model.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	req.SetDefaults()

	users, total, err := h.userService.ListUsers(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, users, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// GetUser returns one member's profile.
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	resp, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UpdateProfile updates the signed-in member's display name.
// PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp, err := h.userService.UpdateProfile(c.Request.Context(), principal, req)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// InviteUser adds a member to the invite list.
// POST /api/v1/users (admin)
func (h *UserHandler) InviteUser(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.InviteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp, err := h.userService.InviteUser(c.Request.Context(), principal, req)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// RemoveUser removes a member.
// DELETE /api/v1/users/:id (admin)
func (h *UserHandler) RemoveUser(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.userService.RemoveUser(c.Request.Context(), principal, id); err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
