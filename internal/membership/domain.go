// internal/membership/domain.go
package membership

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("membership: member not found")
	ErrDuplicateEmail     = errors.New("membership: email already registered")
	ErrInvalidRole        = errors.New("membership: unknown role")
	ErrInvalidCredentials = errors.New("membership: invalid credentials")
	ErrRateLimited        = errors.New("membership: registration rate limit exceeded")
)

// Role classifies a member for reporting and policy purposes.
type Role string

const (
	RoleStudent   Role = "student"
	RoleFaculty   Role = "faculty"
	RoleStaff     Role = "staff"
	RoleLibrarian Role = "librarian"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleStaff, RoleLibrarian:
		return true
	}
	return false
}

// Member represents a library member.
type Member struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Credential represents a member's login credentials.
type Credential struct {
	MemberID     uuid.UUID `json:"-" db:"member_id"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Salt         string    `json:"-" db:"salt"`
}
