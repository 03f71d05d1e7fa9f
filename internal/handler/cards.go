package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/model"
)

type cardService interface {
	Create(ctx context.Context, ownerID, columnID string, req model.CreateCardRequest) (*model.Card, error)
	Get(ctx context.Context, id string) (*model.Card, error)
	ListByColumn(ctx context.Context, columnID string) ([]model.Card, error)
	Update(ctx context.Context, callerID, id string, req model.UpdateCardRequest) (*model.Card, error)
	Delete(ctx context.Context, id string) error
}

type CardHandler struct {
	svc cardService
}

func NewCardHandler(svc cardService) *CardHandler {
	return &CardHandler{svc: svc}
}

// CreateCard godoc
// @Summary Create a card in a column
// @Description Column owner only.
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Column ID" format(uuid)
// @Param request body model.CreateCardRequest true "Card"
// @Success 201 {object} model.Card
// @Failure 400,401,403,404 {object} model.ErrorResponse
// @Router /columns/{id}/cards [post]
func (h *CardHandler) CreateCard(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req model.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	card, err := h.svc.Create(c.Request.Context(), user.ID, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

// ListColumnCards godoc
// @Summary List the cards of a column
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Column ID" format(uuid)
// @Success 200 {array} model.Card
// @Failure 400,401,404 {object} model.ErrorResponse
// @Router /columns/{id}/cards [get]
func (h *CardHandler) ListColumnCards(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cards, err := h.svc.ListByColumn(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// GetCard godoc
// @Summary Get a card by ID
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Card ID" format(uuid)
// @Success 200 {object} model.Card
// @Failure 400,401,404 {object} model.ErrorResponse
// @Router /cards/{id} [get]
func (h *CardHandler) GetCard(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	card, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// UpdateCard godoc
// @Summary Update or move a card
// @Description Owner only. Moving requires the target column to belong to the caller.
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Card ID" format(uuid)
// @Param request body model.UpdateCardRequest true "Fields to change"
// @Success 200 {object} model.Card
// @Failure 400,401,403,404 {object} model.ErrorResponse
// @Router /cards/{id} [patch]
func (h *CardHandler) UpdateCard(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req model.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	card, err := h.svc.Update(c.Request.Context(), user.ID, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// DeleteCard godoc
// @Summary Delete a card
// @Description Owner only. Removes the card's comments.
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Card ID" format(uuid)
// @Success 200 {object} model.SuccessResponse
// @Failure 400,401,403,404 {object} model.ErrorResponse
// @Router /cards/{id} [delete]
func (h *CardHandler) DeleteCard(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Success: true})
}
