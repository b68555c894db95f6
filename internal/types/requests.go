package types

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// SaveRecipeRequest is the body of POST /saved
type SaveRecipeRequest struct {
	ID    string `json:"id" binding:"required"`
	Notes string `json:"notes" binding:"max=2000"`
}
