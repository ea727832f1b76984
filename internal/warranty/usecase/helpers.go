package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"warranty-tracker/internal/warranty"
	"warranty-tracker/pkg/datemath"
)

var errNoThumbnailStore = errors.New("thumbnail storage is not configured")

// today reads the clock once and returns the civil date in the configured zone.
func (uc *implUseCase) today() time.Time {
	return uc.parser.Today(uc.now())
}

// coalesce returns newVal when set, otherwise existing. Used for partial updates.
func (uc *implUseCase) coalesce(newVal, existing string) string {
	if newVal != "" {
		return newVal
	}
	return existing
}

func (uc *implUseCase) validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", warranty.ErrEmptyName
	}
	return name, nil
}

func (uc *implUseCase) validateUnit(unit datemath.Unit) (datemath.Unit, error) {
	if unit == "" {
		return datemath.UnitMonths, nil
	}
	if !unit.Valid() {
		return "", fmt.Errorf("%w: %q", datemath.ErrUnknownUnit, unit)
	}
	return unit, nil
}

func (uc *implUseCase) validateDateBought(bought, today time.Time) (time.Time, error) {
	if bought.IsZero() {
		return time.Time{}, fmt.Errorf("%w: date bought is required", warranty.ErrInvalidDate)
	}
	bought = datemath.Date(bought)
	if bought.After(today) {
		return time.Time{}, fmt.Errorf("%w: %s", warranty.ErrDateBoughtInFuture, bought.Format(datemath.DateLayout))
	}
	return bought, nil
}

// saveThumbnail stores an optional upload. A nil upload is not an error.
func (uc *implUseCase) saveThumbnail(ctx context.Context, up *warranty.Upload) (string, error) {
	if up == nil {
		return "", nil
	}
	if uc.thumbs == nil {
		return "", errNoThumbnailStore
	}
	name, err := uc.thumbs.Save(up.Reader, up.Filename)
	if err != nil {
		return "", err
	}
	return name, nil
}
