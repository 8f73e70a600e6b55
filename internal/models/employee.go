package models

import (
	"strings"
	"time"
)

// Role is the access level of an employee account.
type Role string

const (
	RoleOwner   Role = "Owner"
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleStaff   Role = "Staff"
)

// NormalizeRole maps legacy case-insensitive role spellings ("OWNER",
// "admin", " staff ") onto the four canonical roles. Unknown values degrade
// to Staff so stale rows stay renderable; use ValidRole to reject them on
// write paths.
func NormalizeRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "owner":
		return RoleOwner
	case "admin", "administrator":
		return RoleAdmin
	case "manager":
		return RoleManager
	case "staff", "employee":
		return RoleStaff
	}
	return RoleStaff
}

// ValidRole reports whether raw maps to a known role alias.
func ValidRole(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "owner", "admin", "administrator", "manager", "staff", "employee":
		return true
	}
	return false
}

type Employee struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         Role      `json:"role"`
	Address      string    `json:"address,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Name returns the display name used on exports and dashboards.
func (e *Employee) Name() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token    string    `json:"token"`
	Employee *Employee `json:"employee"`
}

// CreateEmployeeRequest represents the request body for creating an employee
type CreateEmployeeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Address   string `json:"address"`
	PhotoURL  string `json:"photo_url"`
}

// UpdateEmployeeRequest represents the request body for updating an employee
type UpdateEmployeeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password,omitempty"` // Optional
	Role      string `json:"role"`
	Address   string `json:"address"`
	PhotoURL  string `json:"photo_url"`
}
