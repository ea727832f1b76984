package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"warranty-tracker/internal/warranty/repository"
	"warranty-tracker/internal/warranty/repository/memory"
	"warranty-tracker/internal/warranty/repository/repotest"
	"warranty-tracker/pkg/datemath"
)

func TestMemoryRepository(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Repository {
		return memory.New()
	})
}

func TestCancelledContext(t *testing.T) {
	r := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.CreateItem(ctx, repository.CreateItemOptions{Name: "x"}); err == nil {
		t.Error("CreateItem: expected error for cancelled context")
	}
	if _, _, err := r.ListItems(ctx, repository.ListItemsOptions{}); err == nil {
		t.Error("ListItems: expected error for cancelled context")
	}
}

func TestConcurrentCreate(t *testing.T) {
	r := memory.New()
	ctx := context.Background()
	bought := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.CreateItem(ctx, repository.CreateItemOptions{
				Name: "item", WarrantyDuration: 1, DurationUnit: datemath.UnitMonths,
				DateBought: bought, ExpirationDate: bought.AddDate(0, 1, 0),
			})
		}()
	}
	wg.Wait()

	items, total, err := r.ListItems(ctx, repository.ListItemsOptions{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if total != 50 || len(items) != 50 {
		t.Fatalf("got %d items (total %d), want 50", len(items), total)
	}
	seen := map[int64]bool{}
	for _, item := range items {
		if seen[item.ID] {
			t.Fatalf("duplicate id %d", item.ID)
		}
		seen[item.ID] = true
	}
}
