// internal/membership/service.go
package membership

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the membership service.
type Service interface {
	RegisterMember(ctx context.Context, in Registration) (*Member, error)
	Authenticate(ctx context.Context, email, password string) (*Member, error)
	GetMember(ctx context.Context, id uuid.UUID) (*Member, error)
}

// Registration carries the fields needed to register a member.
type Registration struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	Role     Role    `json:"role"`
	Password string  `json:"password"`
}
