package model

import "venuedesk/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID         = "id"
	FieldUsername   = "username"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldRole       = "role"
	FieldDepartment = "department"
	FieldLastLogin  = "last_login"
	FieldActive     = "active"
)

type User struct {
	ID         string  `db:"id"`
	Username   string  `db:"username"`
	Email      string  `db:"email"`
	Password   string  `db:"password"`
	Role       string  `db:"role"`
	Department string  `db:"department"`
	LastLogin  *string `db:"last_login"`
	Active     bool    `db:"active"`
	model.Metadata
}
