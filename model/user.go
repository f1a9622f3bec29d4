package model

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Role is the authorization category of a user
type Role = string

const (
	// RoleManager registers employees, owns teams and lists the staff
	RoleManager Role = "gerente"
	// RoleEmployee maintains their own career plan
	RoleEmployee Role = "funcionario"
)

// User is the identity model. Email is unique at the storage level; the
// application-side duplicate check is only a fast path.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"nome,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Role          Role       `bun:"user_role,notnull" json:"perfil,omitempty"`
	CareerPlan    string     `bun:"career_plan" json:"planoCarreira,omitempty"`
	TeamID        *uuid.UUID `bun:"team_id,nullzero,type:uuid" json:"equipeId,omitempty"`
	Team          *Team      `bun:"rel:belongs-to,join:team_id=id" json:"equipe,omitempty"`
}

// IsEmployee reports whether the user holds the employee role.
func (u *User) IsEmployee() bool {
	return u != nil && u.Role == RoleEmployee
}

// IsManager reports whether the user holds the manager role.
func (u *User) IsManager() bool {
	return u != nil && u.Role == RoleManager
}
