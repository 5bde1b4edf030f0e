package dto

import "time"

type RegisterDTO struct {
	Email    string `json:"email"    validate:"required,basicemail"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type CreateTodoDTO struct {
	Title       string  `json:"title"       validate:"required,notblank"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// UpdateTodoDTO: a nil field was absent from the request body and is left untouched.
type UpdateTodoDTO struct {
	Title       *string `json:"title"       validate:"omitnil,notblank"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type TodoResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	UserID      int64      `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
