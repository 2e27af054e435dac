package dto

import "strings"

// LoginRequest is the admin login body.
//
// @Description Admin credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"change-me"`
} // @name LoginRequest

// LoginResponse is returned after a successful admin login.
//
// @Description Admin access token
type LoginResponse struct {
	Token     string        `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType string        `json:"token_type" example:"Bearer"`
	ExpiresIn int64         `json:"expires_in" example:"28800"`
	User      AdminResponse `json:"user"`
} // @name LoginResponse

// AdminResponse describes the signed-in admin.
type AdminResponse struct {
	Username string `json:"username" example:"admin"`
	FullName string `json:"full_name,omitempty" example:"Admin User"`
} // @name AdminResponse

// AdminClaims are the identity fields carried in an admin token.
type AdminClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Validate rejects a username made only of whitespace, which binding accepts.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return &ValidationError{Field: "username", Message: "username is required"}
	}
	return nil
}
