package sqlite

import (
	"fmt"
	"strings"

	repo "warranty-tracker/internal/warranty/repository"
)

var orderColumns = map[string]string{
	"":                     "id",
	repo.OrderByID:         "id",
	repo.OrderByName:       "name COLLATE NOCASE",
	repo.OrderByExpiration: "expiration_date",
	repo.OrderByDateBought: "date_bought",
}

// buildListQuery builds the ORDER + LIMIT + OFFSET clause for ListItems.
// Order fields are whitelisted; id breaks ties so pages are stable.
func (r *implRepository) buildListQuery(opt repo.ListItemsOptions) (string, []any, error) {
	var parts []string
	var args []any

	// Sorting
	column, ok := orderColumns[opt.Order.Field]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", repo.ErrInvalidOrder, opt.Order.Field)
	}
	dir := "ASC"
	if opt.Order.Desc {
		dir = "DESC"
	}
	order := fmt.Sprintf("ORDER BY %s %s", column, dir)
	if column != "id" {
		order += ", id " + dir
	}
	parts = append(parts, order)

	// Pagination. SQLite needs a LIMIT before OFFSET; -1 means unbounded.
	switch {
	case opt.Limit > 0:
		parts = append(parts, "LIMIT ?")
		args = append(args, opt.Limit)
	case opt.Offset > 0:
		parts = append(parts, "LIMIT -1")
	}
	if opt.Offset > 0 {
		parts = append(parts, "OFFSET ?")
		args = append(args, opt.Offset)
	}

	return strings.Join(parts, " "), args, nil
}
