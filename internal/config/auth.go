package config

import "github.com/jurisflow/jurisflow/internal/types"

type AuthConfig struct {
	Provider types.AuthProvider `validate:"required"`
	Secret   string
	Supabase SupabaseConfig
	APIKey   APIKeyConfig
}

type SupabaseConfig struct {
	BaseURL    string
	ServiceKey string
}

type APIKeyConfig struct {
	Header string
	Keys   map[string]APIKeyDetails
}

// APIKeyDetails holds the identity bound to a hashed API key
type APIKeyDetails struct {
	TenantID string
	UserID   string
	Name     string
	IsActive bool
}
