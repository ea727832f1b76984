// Package repotest holds the behavior every warranty repository must share.
package repotest

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"warranty-tracker/internal/warranty"
	"warranty-tracker/internal/warranty/repository"
	"warranty-tracker/pkg/datemath"
)

// Factory returns an empty repository for one subtest.
type Factory func(t *testing.T) repository.Repository

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func create(t *testing.T, r repository.Repository, name string, bought, exp time.Time) warranty.Item {
	t.Helper()
	item, err := r.CreateItem(context.Background(), repository.CreateItemOptions{
		Name:             name,
		WarrantyDuration: 12,
		DurationUnit:     datemath.UnitMonths,
		DateBought:       bought,
		ExpirationDate:   exp,
	})
	if err != nil {
		t.Fatalf("CreateItem(%s): %v", name, err)
	}
	return item
}

func ids(items []warranty.Item) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

// Run exercises the ItemRepository contract against repositories built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		r := newRepo(t)
		created, err := r.CreateItem(ctx, repository.CreateItemOptions{
			Name:             "Fridge",
			WarrantyDuration: 30,
			DurationUnit:     datemath.UnitDays,
			DateBought:       date(2024, 2, 28),
			ThumbnailPath:    "abc.png",
			ExpirationDate:   date(2024, 3, 29),
		})
		if err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
		if created.ID == 0 {
			t.Fatal("expected an assigned id")
		}
		if created.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}

		got, err := r.GetItem(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetItem: %v", err)
		}
		if got.Name != "Fridge" || got.WarrantyDuration != 30 || got.DurationUnit != datemath.UnitDays {
			t.Errorf("unexpected item: %+v", got)
		}
		if !got.DateBought.Equal(date(2024, 2, 28)) || !got.ExpirationDate.Equal(date(2024, 3, 29)) {
			t.Errorf("dates not round-tripped: bought=%v exp=%v", got.DateBought, got.ExpirationDate)
		}
		if got.ThumbnailPath != "abc.png" {
			t.Errorf("ThumbnailPath = %q", got.ThumbnailPath)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		r := newRepo(t)
		got, err := r.GetItem(ctx, 42)
		if err != nil {
			t.Fatalf("GetItem: %v", err)
		}
		if got.ID != 0 {
			t.Errorf("expected zero item, got %+v", got)
		}
	})

	t.Run("IDsAreMonotonic", func(t *testing.T) {
		r := newRepo(t)
		a := create(t, r, "A", date(2023, 1, 1), date(2024, 1, 1))
		b := create(t, r, "B", date(2023, 1, 1), date(2024, 1, 1))
		if b.ID <= a.ID {
			t.Fatalf("ids not increasing: %d then %d", a.ID, b.ID)
		}

		if _, err := r.DeleteItem(ctx, b.ID); err != nil {
			t.Fatalf("DeleteItem: %v", err)
		}
		c := create(t, r, "C", date(2023, 1, 1), date(2024, 1, 1))
		if c.ID <= b.ID {
			t.Errorf("id %d reused after delete (last was %d)", c.ID, b.ID)
		}
	})

	t.Run("ListOrderAndPagination", func(t *testing.T) {
		r := newRepo(t)
		a := create(t, r, "charlie", date(2023, 3, 1), date(2024, 3, 1))
		b := create(t, r, "Alpha", date(2023, 1, 1), date(2024, 6, 1))
		c := create(t, r, "bravo", date(2023, 2, 1), date(2024, 3, 1))

		tests := []struct {
			name  string
			opt   repository.ListItemsOptions
			want  []int64
			total int
		}{
			{"Default", repository.ListItemsOptions{}, []int64{a.ID, b.ID, c.ID}, 3},
			{"Id desc", repository.ListItemsOptions{Order: repository.Order{Field: repository.OrderByID, Desc: true}}, []int64{c.ID, b.ID, a.ID}, 3},
			{"Name case-insensitive", repository.ListItemsOptions{Order: repository.Order{Field: repository.OrderByName}}, []int64{b.ID, c.ID, a.ID}, 3},
			{"Expiration ties by id", repository.ListItemsOptions{Order: repository.Order{Field: repository.OrderByExpiration}}, []int64{a.ID, c.ID, b.ID}, 3},
			{"Date bought desc", repository.ListItemsOptions{Order: repository.Order{Field: repository.OrderByDateBought, Desc: true}}, []int64{a.ID, c.ID, b.ID}, 3},
			{"Limit", repository.ListItemsOptions{Limit: 2}, []int64{a.ID, b.ID}, 3},
			{"Offset only", repository.ListItemsOptions{Offset: 1}, []int64{b.ID, c.ID}, 3},
			{"Limit and offset", repository.ListItemsOptions{Limit: 1, Offset: 1}, []int64{b.ID}, 3},
			{"Offset past end", repository.ListItemsOptions{Offset: 10}, []int64{}, 3},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				items, total, err := r.ListItems(ctx, tt.opt)
				if err != nil {
					t.Fatalf("ListItems: %v", err)
				}
				if total != tt.total {
					t.Errorf("total = %d, want %d", total, tt.total)
				}
				if !reflect.DeepEqual(ids(items), tt.want) {
					t.Errorf("ids = %v, want %v", ids(items), tt.want)
				}
			})
		}
	})

	t.Run("ListInvalidOrder", func(t *testing.T) {
		r := newRepo(t)
		_, _, err := r.ListItems(ctx, repository.ListItemsOptions{Order: repository.Order{Field: "price; DROP TABLE items"}})
		if !errors.Is(err, repository.ErrInvalidOrder) {
			t.Errorf("error = %v, want ErrInvalidOrder", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		r := newRepo(t)
		item := create(t, r, "TV", date(2023, 1, 31), date(2023, 2, 28))

		updated, err := r.UpdateItem(ctx, repository.UpdateItemOptions{
			ID:               item.ID,
			Name:             "Television",
			WarrantyDuration: 1,
			DurationUnit:     datemath.UnitMonths,
			DateBought:       date(2024, 1, 31),
			ThumbnailPath:    "tv.jpg",
			ExpirationDate:   date(2024, 2, 29),
		})
		if err != nil {
			t.Fatalf("UpdateItem: %v", err)
		}
		if updated.ID != item.ID || updated.Name != "Television" || !updated.ExpirationDate.Equal(date(2024, 2, 29)) {
			t.Errorf("unexpected updated item: %+v", updated)
		}

		got, _ := r.GetItem(ctx, item.ID)
		if got.Name != "Television" || got.ThumbnailPath != "tv.jpg" || !got.DateBought.Equal(date(2024, 1, 31)) {
			t.Errorf("update not visible on read: %+v", got)
		}
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		r := newRepo(t)
		got, err := r.UpdateItem(ctx, repository.UpdateItemOptions{
			ID: 99, Name: "x", WarrantyDuration: 1, DurationUnit: datemath.UnitDays,
			DateBought: date(2023, 1, 1), ExpirationDate: date(2023, 1, 2),
		})
		if err != nil {
			t.Fatalf("UpdateItem: %v", err)
		}
		if got.ID != 0 {
			t.Errorf("expected zero item, got %+v", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		r := newRepo(t)
		item := create(t, r, "Kettle", date(2023, 1, 1), date(2024, 1, 1))

		deleted, err := r.DeleteItem(ctx, item.ID)
		if err != nil || !deleted {
			t.Fatalf("DeleteItem = %v, %v; want true, nil", deleted, err)
		}
		if got, _ := r.GetItem(ctx, item.ID); got.ID != 0 {
			t.Errorf("item still present after delete: %+v", got)
		}

		deleted, err = r.DeleteItem(ctx, item.ID)
		if err != nil || deleted {
			t.Errorf("second DeleteItem = %v, %v; want false, nil", deleted, err)
		}
	})

	t.Run("DeleteAll", func(t *testing.T) {
		r := newRepo(t)
		create(t, r, "A", date(2023, 1, 1), date(2024, 1, 1))
		create(t, r, "B", date(2023, 1, 1), date(2024, 1, 1))

		n, err := r.DeleteAllItems(ctx)
		if err != nil {
			t.Fatalf("DeleteAllItems: %v", err)
		}
		if n != 2 {
			t.Errorf("deleted = %d, want 2", n)
		}

		items, total, err := r.ListItems(ctx, repository.ListItemsOptions{})
		if err != nil {
			t.Fatalf("ListItems: %v", err)
		}
		if total != 0 || len(items) != 0 {
			t.Errorf("expected empty store, got %d items (total %d)", len(items), total)
		}
		if items == nil {
			t.Error("expected empty slice, got nil")
		}

		n, err = r.DeleteAllItems(ctx)
		if err != nil || n != 0 {
			t.Errorf("DeleteAllItems on empty store = %d, %v", n, err)
		}
	})

	t.Run("FarFutureExpiration", func(t *testing.T) {
		r := newRepo(t)
		far := create(t, r, "Vault", date(2023, 1, 15), date(9999, 12, 15))
		if !far.ExpirationDate.Equal(date(9999, 12, 15)) {
			t.Errorf("expiration = %v, want 9999-12-15", far.ExpirationDate)
		}
		create(t, r, "Kettle", date(2023, 1, 15), date(2024, 1, 15))

		items, total, err := r.ListItems(ctx, repository.ListItemsOptions{})
		if err != nil {
			t.Fatalf("ListItems: %v", err)
		}
		if total != 2 || len(items) != 2 {
			t.Errorf("expected 2 items, got %d (total %d)", len(items), total)
		}
	})
}
