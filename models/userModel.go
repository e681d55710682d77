package models

import (
	"slices"
	"time"
)

const (
	RoleCustomer = "Customer"
	RoleManager  = "Manager"
	RoleAdmin    = "Admin"
)

// User is the caller identity resolved from the bearer token. The first
// authenticated request registers the account; address and birthdate are
// filled in later by the owner or an Admin.
type User struct {
	Username  string    `gorm:"primaryKey;size:191" json:"username"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Role      string    `gorm:"size:16;not null;index" json:"role"`
	Address   string    `json:"address"`
	Birthdate string    `gorm:"size:10" json:"birthdate"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (u User) IsCustomer() bool {
	return u.Role == RoleCustomer
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func ValidRole(role string) bool {
	return slices.Contains([]string{RoleCustomer, RoleManager, RoleAdmin}, role)
}
