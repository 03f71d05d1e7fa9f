package model

import "time"

type Column struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Column) Owner() string {
	return c.OwnerID
}

type Card struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	OwnerID     string    `json:"ownerId"`
	ColumnID    string    `json:"columnId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Card) Owner() string {
	return c.OwnerID
}

type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	OwnerID   string    `json:"ownerId"`
	CardID    string    `json:"cardId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) Owner() string {
	return c.OwnerID
}

type CreateColumnRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
}

type UpdateColumnRequest struct {
	Title *string `json:"title" binding:"omitempty,min=1,max=255"`
}

type CreateCardRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,min=1"`
}

type UpdateCardRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,min=1"`
	ColumnID    *string `json:"columnId" binding:"omitempty,uuid"`
}

// CardUpdate holds the card fields to change; nil fields are left untouched.
type CardUpdate struct {
	Title       *string
	Description *string
	ColumnID    *string
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=1000"`
}

type UpdateCommentRequest struct {
	Text *string `json:"text" binding:"omitempty,min=1,max=1000"`
}
