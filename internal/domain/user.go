package domain

import (
	"errors"
	"time"
)

var (
	// ErrUsernameAlreadyExists indicates that the user with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrEmailAlreadyExists indicates that the user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("wrong password")
	// ErrUserAlreadyApproved indicates a repeated approval of the same user.
	ErrUserAlreadyApproved = errors.New("user is already approved")
	// ErrPermissionDenied indicates that the acting user lacks the role for the operation.
	ErrPermissionDenied = errors.New("insufficient role for this operation")
)

// Role defines what a user is allowed to do.
type Role string

// Supported roles.
const (
	RoleCustomer Role = "CUSTOMER"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// User holds user data. New users start unapproved; approval provisions accounts.
type User struct {
	Username       string    `json:"username"`
	HashedPassword string    `json:"hashed_password"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	Approved       bool      `json:"approved"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
}

// UserWithoutPassword is User data excluding password data.
type UserWithoutPassword struct {
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

// Actor is the acting principal threaded through every ledger operation.
type Actor struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsStaff returns true for employees and administrators.
func (a Actor) IsStaff() bool {
	return a.Role == RoleEmployee || a.Role == RoleAdmin
}

// CanAccess reports whether the actor may operate on an account of the given owner.
// Customers are restricted to their own accounts.
func (a Actor) CanAccess(owner string) bool {
	if a.Role == RoleCustomer {
		return a.Username == owner
	}

	return true
}

// BypassesDailyLimit reports whether the daily-limit check is skipped for the actor.
// Administrators bypass it; the exemption is a deliberate back-office policy.
func (a Actor) BypassesDailyLimit() bool {
	return a.Role == RoleAdmin
}
