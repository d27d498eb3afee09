package kernel

// AuthContext is the authentication context injected into each request
type AuthContext struct {
	UserID   UserID   `json:"user_id"`
	TenantID TenantID `json:"tenant_id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
}

// IsValid reports whether the AuthContext identifies a user within a tenant
func (ac *AuthContext) IsValid() bool {
	return !ac.UserID.IsEmpty() && !ac.TenantID.IsEmpty()
}

// ContextKey is a typed key for context.Context values
type ContextKey string

const (
	// AuthContextKey stores the AuthContext on a request context
	AuthContextKey ContextKey = "auth_context"

	// RequestIDKey stores the request correlation ID
	RequestIDKey ContextKey = "request_id"
)
