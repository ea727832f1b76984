package repository

import (
	"context"

	"warranty-tracker/internal/warranty"
)

// Repository is the composed interface for the warranty data store.
type Repository interface {
	ItemRepository
}

// ItemRepository defines all data access methods for the Item entity.
// Implementations are strongly consistent: a read observes every completed write.
type ItemRepository interface {
	CreateItem(ctx context.Context, opt CreateItemOptions) (warranty.Item, error)
	// GetItem returns a zero Item (ID == 0) when no row matches.
	GetItem(ctx context.Context, id int64) (warranty.Item, error)
	ListItems(ctx context.Context, opt ListItemsOptions) ([]warranty.Item, int, error)
	// UpdateItem returns a zero Item (ID == 0) when no row matches.
	UpdateItem(ctx context.Context, opt UpdateItemOptions) (warranty.Item, error)
	DeleteItem(ctx context.Context, id int64) (bool, error)
	DeleteAllItems(ctx context.Context) (int64, error)
}
