package auth

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/config"
	"github.com/jurisflow/jurisflow/internal/domain/auth"
	"github.com/jurisflow/jurisflow/internal/types"
)

type AuthRequest struct {
	UserID   string
	TenantID string
	Phone    string
	Email    string
	Password string
	// OTP is the one time code entered during phone verification
	OTP string
}

type AuthResponse struct {
	ProviderToken string
	AuthToken     string
	ID            string
}

type Provider interface {

	// User Management
	GetProvider() types.AuthProvider
	SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error)
	Login(ctx context.Context, req AuthRequest, userAuthInfo *auth.Auth) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
	AssignUserToTenant(ctx context.Context, userID string, tenantID string) error
}

func NewProvider(cfg *config.Configuration) Provider {
	switch cfg.Auth.Provider {
	case types.AuthProviderSupabase:
		return NewSupabaseAuth(cfg)
	default:
		return NewLocalAuth(cfg)
	}
}
