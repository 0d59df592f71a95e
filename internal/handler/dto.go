package handler

import (
	"time"

	"github.com/msomdec/tankermade/internal/domain"
	"github.com/msomdec/tankermade/internal/service"
)

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expiresAt"`
}

func toAuthResponse(res *service.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     res.Token,
		Username:  res.User.Username,
		Email:     res.User.Email,
		Role:      string(res.User.Role),
		ExpiresAt: res.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

// UserDTO is the JSON representation of a user. The password hash never
// leaves the service layer.
type UserDTO struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	CreatedAt   string  `json:"createdAt"`
	LastLoginAt *string `json:"lastLoginAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	dto := UserDTO{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if u.LastLoginAt != nil {
		s := u.LastLoginAt.UTC().Format(time.RFC3339)
		dto.LastLoginAt = &s
	}
	return dto
}

func toUserDTOs(users []domain.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	return dtos
}

// CatalogItemDTO is the JSON representation of a reference row.
type CatalogItemDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func toCatalogItemDTOs(items []domain.CatalogItem) []CatalogItemDTO {
	dtos := make([]CatalogItemDTO, len(items))
	for i, it := range items {
		dtos[i] = CatalogItemDTO{ID: it.ID.String(), Name: it.Name, Slug: it.Slug}
	}
	return dtos
}
