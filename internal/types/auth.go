package types

// AuthProvider identifies the backing identity provider
type AuthProvider string

const (
	AuthProviderLocal    AuthProvider = "local"
	AuthProviderSupabase AuthProvider = "supabase"
)

func (p AuthProvider) String() string {
	return string(p)
}
