package usecase

import (
	"context"

	"warranty-tracker/internal/warranty"
	repo "warranty-tracker/internal/warranty/repository"
)

// ClosestToExpiry returns the non-expired items expiring soonest.
// A zero limit uses the configured one.
func (uc *implUseCase) ClosestToExpiry(ctx context.Context, input warranty.ViewInput) (warranty.ViewOutput, error) {
	items, err := uc.allItems(ctx, "ClosestToExpiry")
	if err != nil {
		return warranty.ViewOutput{}, err
	}

	today := uc.today()
	limit := uc.limitOr(input.Limit, uc.closest)
	return warranty.ViewOutput{
		Today: today,
		Items: uc.ranker.EnrichAll(uc.ranker.ClosestToExpiring(items, today, limit), today),
	}, nil
}

// RecentlyAdded returns the newest items. A zero limit uses the configured one.
func (uc *implUseCase) RecentlyAdded(ctx context.Context, input warranty.ViewInput) (warranty.ViewOutput, error) {
	items, err := uc.allItems(ctx, "RecentlyAdded")
	if err != nil {
		return warranty.ViewOutput{}, err
	}

	today := uc.today()
	limit := uc.limitOr(input.Limit, uc.recent)
	return warranty.ViewOutput{
		Today: today,
		Items: uc.ranker.EnrichAll(uc.ranker.MostRecentlyAdded(items, limit), today),
	}, nil
}

// Dashboard returns both views computed from one read and one "today".
func (uc *implUseCase) Dashboard(ctx context.Context) (warranty.DashboardOutput, error) {
	items, err := uc.allItems(ctx, "Dashboard")
	if err != nil {
		return warranty.DashboardOutput{}, err
	}

	today := uc.today()
	return warranty.DashboardOutput{
		Today:   today,
		Closest: uc.ranker.EnrichAll(uc.ranker.ClosestToExpiring(items, today, uc.closest), today),
		Recent:  uc.ranker.EnrichAll(uc.ranker.MostRecentlyAdded(items, uc.recent), today),
	}, nil
}

func (uc *implUseCase) allItems(ctx context.Context, op string) ([]warranty.Item, error) {
	items, _, err := uc.repo.ListItems(ctx, repo.ListItemsOptions{})
	if err != nil {
		uc.l.Errorf(ctx, "uc.%s ListItems: %v", op, err)
		return nil, err
	}
	return items, nil
}

func (uc *implUseCase) limitOr(limit, fallback int) int {
	if limit == 0 {
		return fallback
	}
	return limit
}
