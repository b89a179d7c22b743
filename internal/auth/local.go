package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jurisflow/jurisflow/internal/config"
	"github.com/jurisflow/jurisflow/internal/domain/auth"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
	"golang.org/x/crypto/bcrypt"
)

type localAuth struct {
	AuthConfig config.AuthConfig
}

func NewLocalAuth(cfg *config.Configuration) Provider {
	return &localAuth{
		AuthConfig: cfg.Auth,
	}
}

func (l *localAuth) GetProvider() types.AuthProvider {
	return types.AuthProviderLocal
}

func (l *localAuth) SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	if req.Password == "" {
		return nil, ierr.NewError("password is required").
			WithHint("Password is required").
			Mark(ierr.ErrValidation)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to hash password").
			Mark(ierr.ErrSystem)
	}

	userID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROFILE)

	authToken, err := l.generateToken(userID, req.TenantID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}

	response := &AuthResponse{
		ProviderToken: string(hashedPassword),
		AuthToken:     authToken,
		ID:            userID,
	}

	return response, nil
}

func (l *localAuth) Login(ctx context.Context, req AuthRequest, userAuthInfo *auth.Auth) (*AuthResponse, error) {
	// Validate the user provided password against the saved hash
	err := bcrypt.CompareHashAndPassword([]byte(userAuthInfo.Token), []byte(req.Password))
	if err != nil {
		return nil, ierr.NewError("invalid password").
			WithHint("Invalid password").
			Mark(ierr.ErrNotAuthenticated)
	}

	// Validated then generate a JWT token
	authToken, err := l.generateToken(userAuthInfo.UserID, req.TenantID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}

	response := &AuthResponse{
		ProviderToken: userAuthInfo.Token,
		AuthToken:     authToken,
		ID:            userAuthInfo.UserID,
	}

	return response, nil
}

func (l *localAuth) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", token.Header["alg"])).
				Mark(ierr.ErrNotAuthenticated)
		}
		return []byte(l.AuthConfig.Secret), nil
	})

	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrNotAuthenticated)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrNotAuthenticated)
	}

	userID, userOk := claims["user_id"].(string)
	if !userOk {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Token missing user ID").
			Mark(ierr.ErrNotAuthenticated)
	}

	tenantID, tenantOk := claims["tenant_id"].(string)
	if !tenantOk {
		tenantID = types.DefaultTenantID
	}

	return &auth.Claims{UserID: userID, TenantID: tenantID}, nil
}

func (l *localAuth) generateToken(userID, tenantID string) (string, error) {
	// generate a JWT token with the user ID and tenant ID with 30 days expiration
	expiration := time.Now().Add(30 * 24 * time.Hour)

	claims := jwt.MapClaims{
		"user_id":   userID,
		"tenant_id": tenantID,
		"exp":       expiration.Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(l.AuthConfig.Secret))
}

func (l *localAuth) AssignUserToTenant(ctx context.Context, userID string, tenantID string) error {
	// Tenant membership is carried in the JWT issued at login, so
	// nothing to update on the provider side.
	return nil
}
