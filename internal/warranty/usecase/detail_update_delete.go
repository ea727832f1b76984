package usecase

import (
	"context"
	"fmt"

	"warranty-tracker/internal/warranty"
	repo "warranty-tracker/internal/warranty/repository"
	"warranty-tracker/pkg/datemath"
)

// Detail retrieves a single Item by ID. Returns ErrItemNotFound when not found.
func (uc *implUseCase) Detail(ctx context.Context, id int64) (warranty.DetailItemOutput, error) {
	item, err := uc.getItem(ctx, "Detail", id)
	if err != nil {
		return warranty.DetailItemOutput{}, err
	}
	return warranty.DetailItemOutput{Item: uc.ranker.Enrich(item, uc.today())}, nil
}

// Update applies a partial update and recomputes the expiration date.
// Returns ErrItemNotFound when not found. A new thumbnail that cannot be
// stored leaves the current one in place and is reported in ThumbnailError.
func (uc *implUseCase) Update(ctx context.Context, input warranty.UpdateItemInput) (warranty.UpdateItemOutput, error) {
	existing, err := uc.getItem(ctx, "Update", input.ID)
	if err != nil {
		return warranty.UpdateItemOutput{}, err
	}
	today := uc.today()

	name := existing.Name
	if input.Name != "" {
		if name, err = uc.validateName(input.Name); err != nil {
			return warranty.UpdateItemOutput{}, err
		}
	}

	duration := existing.WarrantyDuration
	if input.WarrantyDuration < 0 {
		return warranty.UpdateItemOutput{}, fmt.Errorf("%w: got %d", datemath.ErrInvalidDuration, input.WarrantyDuration)
	}
	if input.WarrantyDuration > 0 {
		duration = input.WarrantyDuration
	}

	unit, err := uc.validateUnit(datemath.Unit(uc.coalesce(string(input.DurationUnit), string(existing.DurationUnit))))
	if err != nil {
		return warranty.UpdateItemOutput{}, err
	}

	bought := existing.DateBought
	if !input.DateBought.IsZero() {
		if bought, err = uc.validateDateBought(input.DateBought, today); err != nil {
			return warranty.UpdateItemOutput{}, err
		}
	}

	expiration, err := datemath.ComputeExpiration(bought, duration, unit)
	if err != nil {
		return warranty.UpdateItemOutput{}, err
	}

	thumbnail, thumbErr := uc.saveThumbnail(ctx, input.Thumbnail)
	if thumbErr != nil {
		uc.l.Warnf(ctx, "uc.Update saveThumbnail: %v", thumbErr)
	}

	item, err := uc.repo.UpdateItem(ctx, repo.UpdateItemOptions{
		ID:               existing.ID,
		Name:             name,
		WarrantyDuration: duration,
		DurationUnit:     unit,
		DateBought:       bought,
		ThumbnailPath:    uc.coalesce(thumbnail, existing.ThumbnailPath),
		ExpirationDate:   expiration,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Update UpdateItem: %v", err)
		return warranty.UpdateItemOutput{}, err
	}
	if item.ID == 0 {
		return warranty.UpdateItemOutput{}, warranty.ErrItemNotFound
	}

	return warranty.UpdateItemOutput{
		Item:           uc.ranker.Enrich(item, today),
		ThumbnailError: thumbErr,
	}, nil
}

// ReplaceThumbnail stores a new image for an Item. Unlike Create and Update,
// a failed upload is returned as the error.
func (uc *implUseCase) ReplaceThumbnail(ctx context.Context, input warranty.ReplaceThumbnailInput) (warranty.DetailItemOutput, error) {
	existing, err := uc.getItem(ctx, "ReplaceThumbnail", input.ID)
	if err != nil {
		return warranty.DetailItemOutput{}, err
	}

	thumbnail, err := uc.saveThumbnail(ctx, &input.Thumbnail)
	if err != nil {
		uc.l.Warnf(ctx, "uc.ReplaceThumbnail saveThumbnail: %v", err)
		return warranty.DetailItemOutput{}, err
	}

	item, err := uc.repo.UpdateItem(ctx, repo.UpdateItemOptions{
		ID:               existing.ID,
		Name:             existing.Name,
		WarrantyDuration: existing.WarrantyDuration,
		DurationUnit:     existing.DurationUnit,
		DateBought:       existing.DateBought,
		ThumbnailPath:    thumbnail,
		ExpirationDate:   existing.ExpirationDate,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ReplaceThumbnail UpdateItem: %v", err)
		return warranty.DetailItemOutput{}, err
	}
	if item.ID == 0 {
		return warranty.DetailItemOutput{}, warranty.ErrItemNotFound
	}

	return warranty.DetailItemOutput{Item: uc.ranker.Enrich(item, uc.today())}, nil
}

// Delete removes an Item by ID. Returns ErrItemNotFound when not found.
// The thumbnail file stays on disk.
func (uc *implUseCase) Delete(ctx context.Context, id int64) error {
	deleted, err := uc.repo.DeleteItem(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Delete DeleteItem: %v", err)
		return err
	}
	if !deleted {
		return warranty.ErrItemNotFound
	}
	return nil
}

// DeleteAll removes every Item.
func (uc *implUseCase) DeleteAll(ctx context.Context) (warranty.DeleteAllOutput, error) {
	n, err := uc.repo.DeleteAllItems(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "uc.DeleteAll DeleteAllItems: %v", err)
		return warranty.DeleteAllOutput{}, err
	}
	uc.l.Infof(ctx, "uc.DeleteAll: removed %d items", n)
	return warranty.DeleteAllOutput{Deleted: n}, nil
}

func (uc *implUseCase) getItem(ctx context.Context, op string, id int64) (warranty.Item, error) {
	item, err := uc.repo.GetItem(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "uc.%s GetItem: %v", op, err)
		return warranty.Item{}, err
	}
	if item.ID == 0 {
		return warranty.Item{}, warranty.ErrItemNotFound
	}
	return item, nil
}
