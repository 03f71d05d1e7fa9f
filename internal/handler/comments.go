package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/model"
)

type commentService interface {
	Create(ctx context.Context, ownerID, cardID string, req model.CreateCommentRequest) (*model.Comment, error)
	Get(ctx context.Context, id string) (*model.Comment, error)
	ListByCard(ctx context.Context, cardID string) ([]model.Comment, error)
	Update(ctx context.Context, id string, req model.UpdateCommentRequest) (*model.Comment, error)
	Delete(ctx context.Context, id string) error
}

type CommentHandler struct {
	svc commentService
}

func NewCommentHandler(svc commentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// CreateComment godoc
// @Summary Comment on a card
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Card ID" format(uuid)
// @Param request body model.CreateCommentRequest true "Comment"
// @Success 201 {object} model.Comment
// @Failure 400,401,404 {object} model.ErrorResponse
// @Router /cards/{id}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), user.ID, cardID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListCardComments godoc
// @Summary List the comments of a card
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Card ID" format(uuid)
// @Success 200 {array} model.Comment
// @Failure 400,401,404 {object} model.ErrorResponse
// @Router /cards/{id}/comments [get]
func (h *CommentHandler) ListCardComments(c *gin.Context) {
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.svc.ListByCard(c.Request.Context(), cardID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// GetComment godoc
// @Summary Get a comment by ID
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID" format(uuid)
// @Success 200 {object} model.Comment
// @Failure 400,401,404 {object} model.ErrorResponse
// @Router /comments/{id} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comment, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// UpdateComment godoc
// @Summary Edit a comment
// @Description Owner only.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID" format(uuid)
// @Param request body model.UpdateCommentRequest true "Fields to change"
// @Success 200 {object} model.Comment
// @Failure 400,401,403,404 {object} model.ErrorResponse
// @Router /comments/{id} [patch]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var req model.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	comment, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Owner only.
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID" format(uuid)
// @Success 200 {object} model.SuccessResponse
// @Failure 400,401,403,404 {object} model.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Success: true})
}
