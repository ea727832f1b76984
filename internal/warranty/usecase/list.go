package usecase

import (
	"context"
	"fmt"

	"warranty-tracker/internal/warranty"
	repo "warranty-tracker/internal/warranty/repository"
)

// List returns a sorted, paginated page of enriched Items.
func (uc *implUseCase) List(ctx context.Context, input warranty.ListItemsInput) (warranty.ListItemsOutput, error) {
	order, err := repo.ParseOrder(input.Sort)
	if err != nil {
		return warranty.ListItemsOutput{}, fmt.Errorf("%w: %q", warranty.ErrInvalidSort, input.Sort)
	}

	items, total, err := uc.repo.ListItems(ctx, repo.ListItemsOptions{
		Order:  order,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListItems: %v", err)
		return warranty.ListItemsOutput{}, err
	}

	return warranty.ListItemsOutput{
		Items:  uc.ranker.EnrichAll(items, uc.today()),
		Total:  total,
		Limit:  input.Limit,
		Offset: input.Offset,
	}, nil
}
