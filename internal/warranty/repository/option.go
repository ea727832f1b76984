package repository

import (
	"fmt"
	"strings"
	"time"

	"warranty-tracker/pkg/datemath"
)

// Order fields accepted by ListItemsOptions.
const (
	OrderByID         = "id"
	OrderByName       = "name"
	OrderByExpiration = "expiration"
	OrderByDateBought = "date_bought"
)

// CreateItemOptions holds parameters for inserting a new Item.
type CreateItemOptions struct {
	Name             string
	WarrantyDuration int
	DurationUnit     datemath.Unit
	DateBought       time.Time
	ThumbnailPath    string
	ExpirationDate   time.Time
}

// ListItemsOptions holds ordering and pagination parameters for listing Items.
// A zero Limit returns every row.
type ListItemsOptions struct {
	Order  Order
	Limit  int
	Offset int
}

// UpdateItemOptions replaces every mutable field of an existing Item.
type UpdateItemOptions struct {
	ID               int64
	Name             string
	WarrantyDuration int
	DurationUnit     datemath.Unit
	DateBought       time.Time
	ThumbnailPath    string
	ExpirationDate   time.Time
}

// Order is a whitelisted sort field with direction.
type Order struct {
	Field string
	Desc  bool
}

// ParseOrder parses "field" or "field_asc"/"field_desc" and "-field". An empty
// string yields the zero Order, which sorts by id ascending.
func ParseOrder(s string) (Order, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Order{}, nil
	}

	var o Order
	switch {
	case strings.HasPrefix(s, "-"):
		o.Desc = true
		s = s[1:]
	case strings.HasSuffix(s, "_desc"):
		o.Desc = true
		s = strings.TrimSuffix(s, "_desc")
	case strings.HasSuffix(s, "_asc"):
		s = strings.TrimSuffix(s, "_asc")
	}

	switch s {
	case OrderByID, OrderByName, OrderByExpiration, OrderByDateBought:
		o.Field = s
		return o, nil
	}
	return Order{}, fmt.Errorf("%w: %q", ErrInvalidOrder, s)
}
