package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"warranty-tracker/internal/warranty"
	"warranty-tracker/pkg/datemath"
	pkgErrors "warranty-tracker/pkg/errors"
	"warranty-tracker/pkg/response"
	"warranty-tracker/pkg/thumbnail"
)

var (
	errInvalidID        = pkgErrors.NewBadRequestError("invalid item id")
	errThumbnailMissing = pkgErrors.NewBadRequestError("thumbnail file is required")
	errUploadTooLarge   = pkgErrors.NewHTTPError(http.StatusRequestEntityTooLarge, "upload is too large")
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
// Anything unrecognised is an internal error.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, warranty.ErrItemNotFound):
		return pkgErrors.NewNotFoundError(err.Error())
	case errors.Is(err, warranty.ErrEmptyName),
		errors.Is(err, warranty.ErrDateBoughtInFuture),
		errors.Is(err, warranty.ErrInvalidDate),
		errors.Is(err, warranty.ErrInvalidSort),
		errors.Is(err, warranty.ErrReminderInPast),
		errors.Is(err, datemath.ErrInvalidDuration),
		errors.Is(err, datemath.ErrUnknownUnit),
		errors.Is(err, datemath.ErrInvalidDate),
		errors.Is(err, thumbnail.ErrUnsupportedFormat),
		errors.Is(err, thumbnail.ErrEmptyUpload):
		return pkgErrors.NewBadRequestError(err.Error())
	case errors.Is(err, warranty.ErrCalendarDisabled):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}

// invalid renders a request that failed to bind or validate. Validator
// failures list the offending fields and their rules in data.
func (h *handler) invalid(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]interface{}, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		response.ErrorWithData(c, err, fields)
		return
	}
	response.Error(c, err)
}
