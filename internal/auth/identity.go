package auth

import "github.com/imeelinew/paper-library/internal/entities"

// Identity is the authenticated caller attached to a request. It is
// produced by the token middleware and passed explicitly into service
// operations; it is never persisted.
type Identity struct {
	ID       uint              `json:"id"`
	Username string            `json:"username"`
	Role     entities.UserRole `json:"role"`
}
