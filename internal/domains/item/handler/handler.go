package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"friendshavestuff-backend/internal/domains/item/model"
	"friendshavestuff-backend/internal/domains/item/service"
	"friendshavestuff-backend/internal/shared/middleware"
	"friendshavestuff-backend/internal/shared/response"
	"friendshavestuff-backend/internal/shared/utils"
)

type ItemHandler struct {
	itemService service.ServiceInterface
}

func NewItemHandler(itemService service.ServiceInterface) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
	}
}

func mapItemError(err error) (int, string) {
	var itemErr *model.ItemError
	if errors.As(err, &itemErr) {
		switch itemErr.Code {
		case model.ErrCodeItemNotFound:
			return http.StatusNotFound, itemErr.Code
		case model.ErrCodeUnauthorized:
			return http.StatusForbidden, itemErr.Code
		case model.ErrCodeInvalidImage, model.ErrCodeTooManyImages:
			return http.StatusBadRequest, itemErr.Code
		}
	}

	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		return http.StatusBadRequest, "VALIDATION_ERROR"
	}

	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// CreateItem lists a new item owned by the caller.
// POST /api/v1/items
func (h *ItemHandler) CreateItem(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp, err := h.itemService.CreateItem(c.Request.Context(), principal, req)
	if err != nil {
		statusCode, errCode := mapItemError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetItem returns one catalog item.
// GET /api/v1/items/:id
func (h *ItemHandler) GetItem(c *gin.Context) {
	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	resp, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		statusCode, errCode := mapItemError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListItems browses the catalog, newest first.
// GET /api/v1/items
func (h *ItemHandler) ListItems(c *gin.Context) {
	var req model.ListItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	req.SetDefaults()

	items, total, err := h.itemService.ListItems(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapItemError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// ListCategories returns the canonical category set.
// GET /api/v1/items/categories
func (h *ItemHandler) ListCategories(c *gin.Context) {
	response.Success(c, http.StatusOK, model.Categories)
}

// UpdateItem edits a listing.
// PUT /api/v1/items/:id
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	var req model.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp, err := h.itemService.UpdateItem(c.Request.Context(), principal, id, req)
	if err != nil {
		statusCode, errCode := mapItemError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// SetBlackouts replaces the item's unavailable days.
// PUT /api/v1/items/:id/blackouts
func (h *ItemHandler) SetBlackouts(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	var req model.SetBlackoutsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp, err := h.itemService.SetBlackouts(c.Request.Context(), principal, id, req)
	if err != nil {
		statusCode, errCode := mapItemError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UploadImages attaches photos to a listing (multipart field "images").
// POST /api/v1/items/:id/images
func (h *ItemHandler) UploadImages(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Expected multipart form")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "No images provided")
		return
	}

	var images [][]byte
	for _, file := range files {
		f, err := file.Open()
		if err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Cannot read uploaded file")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Cannot read uploaded file")
			return
		}
		images = append(images, data)
	}

	resp, err := h.itemService.UploadImages(c.Request.Context(), principal, id, images)
	if err != nil {
		statusCode, errCode := mapItemError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// DeleteItem removes a listing.
// DELETE /api/v1/items/:id
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID")
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), principal, id); err != nil {
		statusCode, errCode := mapItemError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
