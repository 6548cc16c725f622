package domain

import (
	"errors"
	"time"
)

var (
	// ErrEmployeeNotFound indicates that the employee is not found.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrWrongPassword indicates that the supplied password does not match.
	ErrWrongPassword = errors.New("invalid username or password")
	// ErrUnknownRole indicates a role outside the closed set.
	ErrUnknownRole = errors.New("unknown role")
)

// Employee roles, weakest to strongest. A route's required role is a
// minimum: an admin may do everything a manager may, and so on.
const (
	RoleTeller  = "teller"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

var roleRank = map[string]int{
	RoleTeller:  1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// RoleAtLeast reports whether role meets the required minimum role.
// Unknown roles never qualify.
func RoleAtLeast(role, required string) bool {
	return roleRank[role] >= roleRank[required] && roleRank[required] > 0
}

// Employee holds credentials and the role of a bank employee.
type Employee struct {
	ID             int32     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}
