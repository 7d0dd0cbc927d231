// internal/catalog/service.go
package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the catalog service.
type Service interface {
	AddItemType(ctx context.Context, name string, loanPeriodDays int) (*ItemType, error)
	GetItemType(ctx context.Context, id uuid.UUID) (*ItemType, error)
	AddItem(ctx context.Context, in NewItem) (*Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	AddCopy(ctx context.Context, in NewCopy) (*Copy, error)
	GetCopy(ctx context.Context, id uuid.UUID) (*Copy, error)
	ListCopies(ctx context.Context, itemID uuid.UUID) ([]*Copy, error)
}
