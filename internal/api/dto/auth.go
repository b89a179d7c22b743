package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/jurisflow/jurisflow/internal/types"
)

type SignUpRequest struct {
	Phone    string `json:"phone" binding:"required" validate:"required"`
	Email    string `json:"email" binding:"omitempty,email" validate:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=8" validate:"omitempty,min=8"`
	FullName string `json:"full_name" binding:"omitempty" validate:"omitempty"`
	FirmName string `json:"firm_name" binding:"omitempty" validate:"omitempty"`
	// OTP is the one time code sent to the phone
	OTP string `json:"otp" binding:"omitempty" validate:"omitempty"`

	ProfessionalRole types.ProfessionalRole `json:"professional_role" binding:"omitempty" validate:"omitempty"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required" validate:"required"`
	Password string `json:"password" binding:"omitempty" validate:"omitempty"`
	OTP      string `json:"otp" binding:"omitempty" validate:"omitempty"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	// IsNewUser is true when this login created the profile
	IsNewUser bool `json:"is_new_user"`
}

func (r *SignUpRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return err
	}
	if r.ProfessionalRole != "" {
		if err := r.ProfessionalRole.Validate(); err != nil {
			return err
		}
	}
	return types.ValidatePhone(r.Phone)
}

func (r *LoginRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return err
	}
	return types.ValidatePhone(r.Phone)
}
