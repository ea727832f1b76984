package usecase

import (
	"context"

	"warranty-tracker/internal/warranty"
	repo "warranty-tracker/internal/warranty/repository"
	"warranty-tracker/pkg/datemath"
)

// Create validates and stores a new Item. A thumbnail that cannot be stored
// does not fail the call: the item keeps the placeholder and the cause is
// returned in ThumbnailError.
func (uc *implUseCase) Create(ctx context.Context, input warranty.CreateItemInput) (warranty.CreateItemOutput, error) {
	today := uc.today()

	name, err := uc.validateName(input.Name)
	if err != nil {
		return warranty.CreateItemOutput{}, err
	}
	unit, err := uc.validateUnit(input.DurationUnit)
	if err != nil {
		return warranty.CreateItemOutput{}, err
	}
	bought, err := uc.validateDateBought(input.DateBought, today)
	if err != nil {
		return warranty.CreateItemOutput{}, err
	}
	expiration, err := datemath.ComputeExpiration(bought, input.WarrantyDuration, unit)
	if err != nil {
		return warranty.CreateItemOutput{}, err
	}

	thumbnail, thumbErr := uc.saveThumbnail(ctx, input.Thumbnail)
	if thumbErr != nil {
		uc.l.Warnf(ctx, "uc.Create saveThumbnail: %v", thumbErr)
	}

	item, err := uc.repo.CreateItem(ctx, repo.CreateItemOptions{
		Name:             name,
		WarrantyDuration: input.WarrantyDuration,
		DurationUnit:     unit,
		DateBought:       bought,
		ThumbnailPath:    thumbnail,
		ExpirationDate:   expiration,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create CreateItem: %v", err)
		return warranty.CreateItemOutput{}, err
	}

	return warranty.CreateItemOutput{
		Item:           uc.ranker.Enrich(item, today),
		ThumbnailError: thumbErr,
	}, nil
}
