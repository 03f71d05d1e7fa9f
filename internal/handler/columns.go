package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/model"
)

type columnService interface {
	Create(ctx context.Context, ownerID string, req model.CreateColumnRequest) (*model.Column, error)
	Get(ctx context.Context, id string) (*model.Column, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Column, error)
	Update(ctx context.Context, id string, req model.UpdateColumnRequest) (*model.Column, error)
	Delete(ctx context.Context, id string) error
}

type ColumnHandler struct {
	svc columnService
}

func NewColumnHandler(svc columnService) *ColumnHandler {
	return &ColumnHandler{svc: svc}
}

// CreateColumn godoc
// @Summary Create a column
// @Tags columns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateColumnRequest true "Column"
// @Success 201 {object} model.Column
// @Failure 400,401,500 {object} model.ErrorResponse
// @Router /columns [post]
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req model.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	column, err := h.svc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, column)
}

// ListColumns godoc
// @Summary List the caller's columns
// @Tags columns
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Column
// @Failure 401,500 {object} model.ErrorResponse
// @Router /columns [get]
func (h *ColumnHandler) ListColumns(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	columns, err := h.svc.ListByOwner(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, columns)
}

// GetColumn godoc
// @Summary Get a column by ID
// @Tags columns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Column ID" format(uuid)
// @Success 200 {object} model.Column
// @Failure 400,401,404 {object} model.ErrorResponse
// @Router /columns/{id} [get]
func (h *ColumnHandler) GetColumn(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	column, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, column)
}

// UpdateColumn godoc
// @Summary Update a column
// @Description Owner only.
// @Tags columns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Column ID" format(uuid)
// @Param request body model.UpdateColumnRequest true "Fields to change"
// @Success 200 {object} model.Column
// @Failure 400,401,403,404 {object} model.ErrorResponse
// @Router /columns/{id} [patch]
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	var req model.UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	column, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, column)
}

// DeleteColumn godoc
// @Summary Delete a column
// @Description Owner only. Removes the column's cards and their comments.
// @Tags columns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Column ID" format(uuid)
// @Success 200 {object} model.SuccessResponse
// @Failure 400,401,403,404 {object} model.ErrorResponse
// @Router /columns/{id} [delete]
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Success: true})
}
