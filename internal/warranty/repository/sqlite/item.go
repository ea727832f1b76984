package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"warranty-tracker/internal/warranty"
	repo "warranty-tracker/internal/warranty/repository"
	"warranty-tracker/pkg/datemath"
)

const itemColumns = `id, name, warranty_duration, duration_unit, date_bought, thumbnail, expiration_date, created_at`

// CreateItem inserts a new Item row and returns the created entity.
func (r *implRepository) CreateItem(ctx context.Context, opt repo.CreateItemOptions) (warranty.Item, error) {
	query := `
		INSERT INTO items (name, warranty_duration, duration_unit, date_bought, thumbnail, expiration_date)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING ` + itemColumns

	row := r.db.QueryRowContext(ctx, query,
		opt.Name, opt.WarrantyDuration, string(opt.DurationUnit),
		formatDate(opt.DateBought), opt.ThumbnailPath, formatDate(opt.ExpirationDate),
	)
	item, err := scanItem(row)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateItem"), err)
		return warranty.Item{}, repo.ErrFailedToInsert
	}
	return item, nil
}

// GetItem retrieves a single Item by ID.
// Returns zero-value Item (ID == 0) when not found.
func (r *implRepository) GetItem(ctx context.Context, id int64) (warranty.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return warranty.Item{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetItem"), err)
		return warranty.Item{}, repo.ErrFailedToGet
	}
	return item, nil
}

// ListItems returns a page of Items and the total count.
func (r *implRepository) ListItems(ctx context.Context, opt repo.ListItemsOptions) ([]warranty.Item, int, error) {
	// 1. Count total (without pagination)
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("ListItems"), err)
		return nil, 0, repo.ErrFailedToList
	}

	// 2. Fetch page
	mods, args, err := r.buildListQuery(opt)
	if err != nil {
		return nil, 0, err
	}
	query := fmt.Sprintf(`SELECT %s FROM items %s`, itemColumns, mods)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListItems"), err)
		return nil, 0, repo.ErrFailedToList
	}
	defer rows.Close()

	items := []warranty.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListItems"), err)
			return nil, 0, repo.ErrFailedToList
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListItems"), err)
		return nil, 0, repo.ErrFailedToList
	}
	return items, total, nil
}

// UpdateItem replaces the mutable fields of an Item in one statement.
func (r *implRepository) UpdateItem(ctx context.Context, opt repo.UpdateItemOptions) (warranty.Item, error) {
	query := `
		UPDATE items
		SET name = ?, warranty_duration = ?, duration_unit = ?, date_bought = ?, thumbnail = ?, expiration_date = ?
		WHERE id = ?
		RETURNING ` + itemColumns

	row := r.db.QueryRowContext(ctx, query,
		opt.Name, opt.WarrantyDuration, string(opt.DurationUnit),
		formatDate(opt.DateBought), opt.ThumbnailPath, formatDate(opt.ExpirationDate),
		opt.ID,
	)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return warranty.Item{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateItem"), err)
		return warranty.Item{}, repo.ErrFailedToUpdate
	}
	return item, nil
}

// DeleteItem removes an Item by ID and reports whether a row was deleted.
func (r *implRepository) DeleteItem(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteItem"), err)
		return false, repo.ErrFailedToDelete
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "%s rows affected: %v", r.dsn("DeleteItem"), err)
		return false, repo.ErrFailedToDelete
	}
	return n > 0, nil
}

// DeleteAllItems removes every Item and returns how many were deleted.
func (r *implRepository) DeleteAllItems(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items`)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteAllItems"), err)
		return 0, repo.ErrFailedToDelete
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "%s rows affected: %v", r.dsn("DeleteAllItems"), err)
		return 0, repo.ErrFailedToDelete
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (warranty.Item, error) {
	var (
		item                              warranty.Item
		unit, bought, expiration, created string
	)
	if err := s.Scan(
		&item.ID, &item.Name, &item.WarrantyDuration, &unit,
		&bought, &item.ThumbnailPath, &expiration, &created,
	); err != nil {
		return warranty.Item{}, err
	}

	var err error
	item.DurationUnit = datemath.Unit(unit)
	if item.DateBought, err = parseDate(bought); err != nil {
		return warranty.Item{}, fmt.Errorf("date_bought: %w", err)
	}
	if item.ExpirationDate, err = parseDate(expiration); err != nil {
		return warranty.Item{}, fmt.Errorf("expiration_date: %w", err)
	}
	if item.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return warranty.Item{}, fmt.Errorf("created_at: %w", err)
	}
	return item, nil
}

func formatDate(t time.Time) string {
	return t.Format(datemath.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(datemath.DateLayout, s)
}
