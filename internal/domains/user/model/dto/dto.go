package dto

import (
	"venuedesk/internal/domains/user/model"
	"venuedesk/shared"
	"venuedesk/shared/constant"
	gDto "venuedesk/shared/dto"
	gModel "venuedesk/shared/model"
	"venuedesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Username   string `json:"username"   validate:"required,min=3,max=50"`
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required,min=8"`
	Role       string `json:"role"       validate:"omitempty,oneof=user group_director secretary it_team"`
	Department string `json:"department" validate:"omitempty,max=100"`
}

func (r *CreateUserRequest) ToModel(createdBy string, hashedPassword string) model.User {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleUser
	}

	return model.User{
		ID:         uuid.NewString(),
		Username:   r.Username,
		Email:      r.Email,
		Password:   hashedPassword,
		Role:       role,
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

type UpdateUserRequest struct {
	Username   *string `db:"username"   json:"username"   validate:"omitempty,min=3,max=50"`
	Email      *string `db:"email"      json:"email"      validate:"omitempty,email"`
	Role       *string `db:"role"       json:"role"       validate:"omitempty,oneof=user group_director secretary it_team"`
	Department *string `db:"department" json:"department" validate:"omitempty,max=100"`
	Active     *bool   `db:"active"     json:"active"`
}

type UserResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Department string  `json:"department"`
	LastLogin  *string `json:"last_login,omitempty"`
	Active     bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Username = user.Username
	r.Email = user.Email
	r.Role = user.Role
	r.Department = user.Department
	r.LastLogin = user.LastLogin
	r.Active = user.Active
	r.Metadata.FromModel(user.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(users []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(users))
	for i, user := range users {
		r.Users[i].FromModel(user)
	}
}
