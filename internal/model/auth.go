package model

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=6,max=255"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=255"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}
