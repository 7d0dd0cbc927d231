// internal/catalog/implementation.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"libralend/internal/postgres"
)

// Item types are immutable once created, so cached entries never go stale.
const typeCacheSize = 256

// service implements the Service interface.
type service struct {
	db        *sqlx.DB
	typeCache *lru.Cache[uuid.UUID, ItemType]
	logger    *zap.Logger
}

// NewService creates a new catalog service instance.
func NewService(db *sqlx.DB, logger *zap.Logger) (Service, error) {
	cache, err := lru.New[uuid.UUID, ItemType](typeCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create item type cache: %w", err)
	}

	return &service{
		db:        db,
		typeCache: cache,
		logger:    logger,
	}, nil
}

// AddItemType registers a new item type.
func (s *service) AddItemType(ctx context.Context, name string, loanPeriodDays int) (*ItemType, error) {
	if loanPeriodDays <= 0 {
		return nil, ErrInvalidLoanPeriod
	}

	itemType := &ItemType{
		ID:             uuid.New(),
		Name:           name,
		LoanPeriodDays: loanPeriodDays,
	}

	query := `
		INSERT INTO item_types (id, name, loan_period_days)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.ExecContext(ctx, query, itemType.ID, itemType.Name, itemType.LoanPeriodDays); err != nil {
		return nil, fmt.Errorf("insert item type: %w", postgres.MapError(err))
	}

	s.typeCache.Add(itemType.ID, *itemType)
	return itemType, nil
}

// GetItemType retrieves an item type, serving repeat lookups from the cache.
func (s *service) GetItemType(ctx context.Context, id uuid.UUID) (*ItemType, error) {
	if cached, ok := s.typeCache.Get(id); ok {
		return &cached, nil
	}

	itemType := &ItemType{}
	query := `
		SELECT id, name, loan_period_days
		FROM item_types
		WHERE id = $1
	`
	if err := s.db.GetContext(ctx, itemType, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item type: %w", err)
	}

	s.typeCache.Add(id, *itemType)
	return itemType, nil
}

// AddItem registers a new title in the catalog.
func (s *service) AddItem(ctx context.Context, in NewItem) (*Item, error) {
	if _, err := s.GetItemType(ctx, in.ItemTypeID); err != nil {
		return nil, err
	}

	item := &Item{
		ID:         uuid.New(),
		Title:      in.Title,
		Author:     in.Author,
		ISBN:       in.ISBN,
		ISSN:       in.ISSN,
		ItemTypeID: in.ItemTypeID,
	}

	query := `
		INSERT INTO items (id, title, author, isbn, issn, item_type_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		item.ID, item.Title, item.Author, item.ISBN, item.ISSN, item.ItemTypeID,
	).Scan(&item.CreatedAt)
	if err != nil {
		mapped := postgres.MapError(err)
		if errors.Is(mapped, postgres.ErrConflict) {
			return nil, ErrDuplicateISBN
		}
		return nil, fmt.Errorf("insert item: %w", mapped)
	}

	return item, nil
}

// GetItem retrieves a title from the catalog by its ID.
func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	item := &Item{}
	query := `
		SELECT id, title, author, isbn, issn, item_type_id, created_at
		FROM items
		WHERE id = $1
	`
	if err := s.db.GetContext(ctx, item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	return item, nil
}

// AddCopy registers a physical copy of an item.
func (s *service) AddCopy(ctx context.Context, in NewCopy) (*Copy, error) {
	cp := &Copy{
		ID:        uuid.New(),
		Condition: in.Condition,
		Location:  in.Location,
		ItemID:    in.ItemID,
	}

	query := `
		INSERT INTO copies (id, condition, location, item_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		cp.ID, cp.Condition, cp.Location, cp.ItemID,
	).Scan(&cp.CreatedAt)
	if err != nil {
		mapped := postgres.MapError(err)
		if errors.Is(mapped, postgres.ErrForeignKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("insert copy: %w", mapped)
	}

	return cp, nil
}

// GetCopy retrieves a physical copy by its ID.
func (s *service) GetCopy(ctx context.Context, id uuid.UUID) (*Copy, error) {
	cp := &Copy{}
	query := `
		SELECT id, condition, location, item_id, created_at
		FROM copies
		WHERE id = $1
	`
	if err := s.db.GetContext(ctx, cp, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get copy: %w", err)
	}

	return cp, nil
}

// ListCopies returns all physical copies of an item.
func (s *service) ListCopies(ctx context.Context, itemID uuid.UUID) ([]*Copy, error) {
	copies := []*Copy{}
	query := `
		SELECT id, condition, location, item_id, created_at
		FROM copies
		WHERE item_id = $1
		ORDER BY created_at ASC
	`
	if err := s.db.SelectContext(ctx, &copies, query, itemID); err != nil {
		return nil, fmt.Errorf("list copies: %w", err)
	}

	return copies, nil
}
