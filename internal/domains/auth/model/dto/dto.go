package dto

import (
	"time"
	"venuedesk/infras/jwt"
	userModel "venuedesk/internal/domains/user/model"
	"venuedesk/shared/constant"
	gModel "venuedesk/shared/model"
	"venuedesk/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username   string `json:"username"   validate:"required,min=3,max=50"`
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required,min=8"`
	Department string `json:"department" validate:"omitempty,max=100"`
}

// ToUserModel builds a regular user account. Approver roles are assigned by
// an administrator through the user endpoints, never at registration.
func (r *RegisterRequest) ToUserModel(createdBy string, hashedPassword string) userModel.User {
	return userModel.User{
		ID:         uuid.NewString(),
		Username:   r.Username,
		Email:      r.Email,
		Password:   hashedPassword,
		Role:       constant.RoleUser,
		Department: r.Department,
		Active:     true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
