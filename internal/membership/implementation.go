// internal/membership/implementation.go
package membership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"libralend/internal/postgres"
)

// service implements the Service interface.
type service struct {
	db          *sqlx.DB
	logger      *zap.Logger
	rateLimiter *rate.Limiter
}

// NewService creates a new membership service instance.
func NewService(db *sqlx.DB, logger *zap.Logger) Service {
	return &service{
		db:          db,
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Every(1*time.Minute), 5), // 5 registrations per minute
	}
}

// RegisterMember creates a new member with hashed credentials.
func (s *service) RegisterMember(ctx context.Context, in Registration) (*Member, error) {
	if !s.rateLimiter.Allow() {
		return nil, ErrRateLimited
	}
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}

	passwordHash, salt, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &Member{
		ID:    uuid.New(),
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
		Role:  in.Role,
	}
	credential := &Credential{
		MemberID:     member.ID,
		PasswordHash: passwordHash,
		Salt:         salt,
	}

	err = postgres.RunSerializable(ctx, s.db, func(tx *sqlx.Tx) error {
		insertMember := `
			INSERT INTO members (id, name, email, phone, role)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`
		err := tx.QueryRowContext(ctx, insertMember,
			member.ID, member.Name, member.Email, member.Phone, member.Role,
		).Scan(&member.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert member: %w", postgres.MapError(err))
		}

		insertCredential := `
			INSERT INTO credentials (member_id, password_hash, salt)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, insertCredential, credential.MemberID, credential.PasswordHash, credential.Salt); err != nil {
			return fmt.Errorf("insert credential: %w", postgres.MapError(err))
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, postgres.ErrConflict) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.logger.Info("member registered",
		zap.String("member_id", member.ID.String()),
		zap.String("role", string(member.Role)),
	)

	return member, nil
}

// Authenticate verifies a member's email and password.
func (s *service) Authenticate(ctx context.Context, email, password string) (*Member, error) {
	var row struct {
		Member
		Credential
	}

	query := `
		SELECT m.id, m.name, m.email, m.phone, m.role, m.created_at,
		       c.password_hash, c.salt
		FROM members m
		JOIN credentials c ON c.member_id = m.id
		WHERE m.email = $1
	`
	if err := s.db.GetContext(ctx, &row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up credentials: %w", err)
	}

	ok, err := verifyPassword(password, row.Salt, row.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	member := row.Member
	return &member, nil
}

// GetMember retrieves a member by ID.
func (s *service) GetMember(ctx context.Context, id uuid.UUID) (*Member, error) {
	member := &Member{}
	query := `
		SELECT id, name, email, phone, role, created_at
		FROM members
		WHERE id = $1
	`
	if err := s.db.GetContext(ctx, member, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}

	return member, nil
}
