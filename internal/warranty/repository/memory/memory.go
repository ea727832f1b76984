package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"warranty-tracker/internal/warranty"
	repo "warranty-tracker/internal/warranty/repository"
)

type implRepository struct {
	mu     sync.RWMutex
	items  map[int64]warranty.Item
	lastID int64
	now    func() time.Time
}

// New creates an in-memory Repository. IDs start at 1 and are never reused,
// even after DeleteAllItems.
func New() repo.Repository {
	return &implRepository{
		items: make(map[int64]warranty.Item),
		now:   time.Now,
	}
}

func (r *implRepository) CreateItem(ctx context.Context, opt repo.CreateItemOptions) (warranty.Item, error) {
	if err := ctx.Err(); err != nil {
		return warranty.Item{}, fmt.Errorf("create item: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	item := warranty.Item{
		ID:               r.lastID,
		Name:             opt.Name,
		WarrantyDuration: opt.WarrantyDuration,
		DurationUnit:     opt.DurationUnit,
		DateBought:       opt.DateBought,
		ThumbnailPath:    opt.ThumbnailPath,
		ExpirationDate:   opt.ExpirationDate,
		CreatedAt:        r.now().UTC().Truncate(time.Second),
	}
	r.items[item.ID] = item

	return item, nil
}

func (r *implRepository) GetItem(ctx context.Context, id int64) (warranty.Item, error) {
	if err := ctx.Err(); err != nil {
		return warranty.Item{}, fmt.Errorf("get item: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.items[id], nil
}

func (r *implRepository) ListItems(ctx context.Context, opt repo.ListItemsOptions) ([]warranty.Item, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}

	less, err := lessFunc(opt.Order)
	if err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	items := make([]warranty.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	r.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if opt.Order.Desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})

	total := len(items)
	if opt.Offset > 0 {
		if opt.Offset >= len(items) {
			return []warranty.Item{}, total, nil
		}
		items = items[opt.Offset:]
	}
	if opt.Limit > 0 && len(items) > opt.Limit {
		items = items[:opt.Limit]
	}

	return items, total, nil
}

func (r *implRepository) UpdateItem(ctx context.Context, opt repo.UpdateItemOptions) (warranty.Item, error) {
	if err := ctx.Err(); err != nil {
		return warranty.Item{}, fmt.Errorf("update item: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[opt.ID]
	if !ok {
		return warranty.Item{}, nil
	}

	item.Name = opt.Name
	item.WarrantyDuration = opt.WarrantyDuration
	item.DurationUnit = opt.DurationUnit
	item.DateBought = opt.DateBought
	item.ThumbnailPath = opt.ThumbnailPath
	item.ExpirationDate = opt.ExpirationDate
	r.items[item.ID] = item

	return item, nil
}

func (r *implRepository) DeleteItem(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *implRepository) DeleteAllItems(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("delete all items: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.items))
	r.items = make(map[int64]warranty.Item)
	return n, nil
}

// lessFunc returns the ascending comparison for an order field. Ties fall
// back to id so the result is deterministic.
func lessFunc(o repo.Order) (func(a, b warranty.Item) bool, error) {
	byID := func(a, b warranty.Item) bool { return a.ID < b.ID }

	switch o.Field {
	case "", repo.OrderByID:
		return byID, nil
	case repo.OrderByName:
		return func(a, b warranty.Item) bool {
			an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if an != bn {
				return an < bn
			}
			return byID(a, b)
		}, nil
	case repo.OrderByExpiration:
		return func(a, b warranty.Item) bool {
			if !a.ExpirationDate.Equal(b.ExpirationDate) {
				return a.ExpirationDate.Before(b.ExpirationDate)
			}
			return byID(a, b)
		}, nil
	case repo.OrderByDateBought:
		return func(a, b warranty.Item) bool {
			if !a.DateBought.Equal(b.DateBought) {
				return a.DateBought.Before(b.DateBought)
			}
			return byID(a, b)
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", repo.ErrInvalidOrder, o.Field)
}
