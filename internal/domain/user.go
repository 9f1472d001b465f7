// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

// Roles a user account can hold.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
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
	// ErrInvalidRole indicates a role outside of buyer/seller.
	ErrInvalidRole = errors.New("role must be buyer or seller")
)

// User holds user account data.
//
// Deposit is the user's coin balance in cents. It never goes below zero and
// changes only through wallet operations.
type User struct {
	Username       string    `json:"username"`
	HashedPassword string    `json:"hashed_password"`
	Role           string    `json:"role"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Deposit        int64     `json:"deposit"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	Role           string `json:"role"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
}

// UserWithoutPassword is User data excluding password data.
type UserWithoutPassword struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Deposit   int64     `json:"deposit"`
	CreatedAt time.Time `json:"created_at"`
}
