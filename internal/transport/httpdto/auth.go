package httpdto

import (
	"courseshare/internal/domain/user"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	IsLoggedIn bool     `json:"isLoggedIn"`
	User       *UserDTO `json:"user,omitempty"`
}

type LogoutResponse struct {
	Success bool `json:"success"`
}

// UserDTO is the client-visible view of a user. The password hash never
// leaves the server.
type UserDTO struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	CreatedCourses []uuid.UUID `json:"createdCourses"`
	LikedCourses   []uuid.UUID `json:"likedCourses"`
}

func FromUser(u user.User) *UserDTO {
	return &UserDTO{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		CreatedCourses: u.CreatedCourses,
		LikedCourses:   u.LikedCourses,
	}
}
