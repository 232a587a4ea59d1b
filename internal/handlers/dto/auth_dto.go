package dto

// SignupRequest representa a requisição de cadastro
type SignupRequest struct {
	Name     string `json:"name" binding:"required,displayname"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=16"`
	Address  string `json:"address" binding:"omitempty,max=400"`
	Role     string `json:"role" binding:"omitempty,oneof=user owner"`
}

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse representa a resposta de cadastro/login
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
