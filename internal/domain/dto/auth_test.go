package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   LoginRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:    "valid request",
			request: LoginRequest{Username: "admin", Password: "secret"},
		},
		{
			name:      "empty username",
			request:   LoginRequest{Username: "  ", Password: "secret"},
			wantError: true,
			errorMsg:  "username is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_BindingRules(t *testing.T) {
	tests := []struct {
		name      string
		request   LoginRequest
		wantError bool
	}{
		{name: "both credentials", request: LoginRequest{Username: "admin", Password: "secret"}},
		{name: "missing password", request: LoginRequest{Username: "admin"}, wantError: true},
		{name: "missing username", request: LoginRequest{Password: "secret"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.request)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
