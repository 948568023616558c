// models/user.go
package models

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RolePatient Role = "patient"
)

// User is an account of the clinic: the psychologist (admin) or a registered patient.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Role         Role      `bson:"role" json:"role"`
	Username     string    `bson:"username" json:"username"`
	Name         string    `bson:"name" json:"name"`
	Lastname     string    `bson:"lastname" json:"lastname"`
	DNI          string    `bson:"dni" json:"dni"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone" json:"phone"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	VirtualLink  string    `bson:"virtual_link,omitempty" json:"virtual_link,omitempty"`
	IsActive     bool      `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// SignupRequest is what the admin submits to register a patient.
type SignupRequest struct {
	Username    string `json:"username" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Lastname    string `json:"lastname" binding:"required"`
	DNI         string `json:"dni" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	Password    string `json:"password"`
	VirtualLink string `json:"virtual_link"`
	Role        Role   `json:"role"`
}

// UserUpdateRequest carries a partial update; nil fields are left untouched.
type UserUpdateRequest struct {
	Username    *string `json:"username,omitempty"`
	Name        *string `json:"name,omitempty"`
	Lastname    *string `json:"lastname,omitempty"`
	DNI         *string `json:"dni,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Password    *string `json:"password,omitempty"`
	VirtualLink *string `json:"virtual_link,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token   string `json:"token"`
	Role    Role   `json:"role"`
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ChangePasswordRequest struct {
	Username    string `json:"username" binding:"required"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// BlockedToken is a revoked access token, kept until it would have expired anyway.
type BlockedToken struct {
	JTI       string    `bson:"jti" json:"jti"`
	CreatedAt time.Time `bson:"date_time" json:"date_time"`
	ExpiresAt time.Time `bson:"expires" json:"expires"`
}
