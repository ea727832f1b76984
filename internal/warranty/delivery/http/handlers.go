package http

import (
	"github.com/gin-gonic/gin"

	"warranty-tracker/internal/warranty"
	"warranty-tracker/pkg/response"
)

// Create godoc
// @Summary     Create a new item
// @Description Creates an item from JSON or multipart form data. A thumbnail that cannot be stored does not fail the request; the item falls back to the placeholder and thumbnail_error explains why.
// @Tags        Items
// @Accept      json,mpfd
// @Produce     json
// @Param       body      body     createReq true  "Item data"
// @Param       thumbnail formData file      false "Thumbnail image (JPEG or PNG)"
// @Success     201 {object} createResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     413 {object} response.Resp "Upload too large"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateReq(c)
	if err != nil {
		h.invalid(c, err)
		return
	}

	up, closeUpload, err := openUpload(req.thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeUpload()

	output, err := h.uc.Create(ctx, req.toInput(up))
	if err != nil {
		h.l.Errorf(ctx, "uc.Create: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.Created(c, h.newCreateResp(output))
}

// List godoc
// @Summary     List items
// @Description Returns all items with derived warranty values. Sort by id, name, expiration or date_bought; prefix with "-" for descending.
// @Tags        Items
// @Produce     json
// @Param       sort   query string false "Sort order, e.g. -expiration"
// @Param       limit  query int    false "Page size (0 = all)"
// @Param       offset query int    false "Page offset"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		h.invalid(c, err)
		return
	}

	output, err := h.uc.List(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(output))
}

// Detail godoc
// @Summary     Get item detail
// @Tags        Items
// @Produce     json
// @Param       id path int true "Item ID"
// @Success     200 {object} detailResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDParam(c)
	if err != nil {
		h.invalid(c, err)
		return
	}

	output, err := h.uc.Detail(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Detail: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDetailResp(output))
}

// Update godoc
// @Summary     Update an item
// @Description Partial update from JSON or multipart form data. The expiration date is recomputed.
// @Tags        Items
// @Accept      json,mpfd
// @Produce     json
// @Param       id        path     int       true  "Item ID"
// @Param       body      body     updateReq true  "Fields to update"
// @Param       thumbnail formData file      false "New thumbnail image"
// @Success     200 {object} updateResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/{id} [PUT]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpdateReq(c)
	if err != nil {
		h.invalid(c, err)
		return
	}

	up, closeUpload, err := openUpload(req.thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeUpload()

	output, err := h.uc.Update(ctx, req.toInput(up))
	if err != nil {
		h.l.Errorf(ctx, "uc.Update: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newUpdateResp(output))
}

// ReplaceThumbnail godoc
// @Summary     Replace an item's thumbnail
// @Tags        Items
// @Accept      mpfd
// @Produce     json
// @Param       id        path     int  true "Item ID"
// @Param       thumbnail formData file true "Thumbnail image (JPEG or PNG)"
// @Success     200 {object} detailResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     413 {object} response.Resp "Upload too large"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/{id}/thumbnail [PUT]
func (h *handler) ReplaceThumbnail(c *gin.Context) {
	ctx := c.Request.Context()

	id, fh, err := h.processThumbnailReq(c)
	if err != nil {
		h.invalid(c, err)
		return
	}

	up, closeUpload, err := openUpload(fh)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeUpload()

	output, err := h.uc.ReplaceThumbnail(ctx, warranty.ReplaceThumbnailInput{ID: id, Thumbnail: *up})
	if err != nil {
		h.l.Errorf(ctx, "uc.ReplaceThumbnail: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDetailResp(output))
}

// Delete godoc
// @Summary     Delete an item
// @Tags        Items
// @Produce     json
// @Param       id path int true "Item ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processIDParam(c)
	if err != nil {
		h.invalid(c, err)
		return
	}

	if err := h.uc.Delete(ctx, id); err != nil {
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

// DeleteAll godoc
// @Summary     Delete every item
// @Tags        Items
// @Produce     json
// @Success     200 {object} deleteAllResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items [DELETE]
func (h *handler) DeleteAll(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.DeleteAll(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.DeleteAll: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, deleteAllResp{Deleted: output.Deleted})
}

// Closest godoc
// @Summary     Items closest to expiry
// @Description Non-expired items ordered by expiration date, soonest first.
// @Tags        Dashboard
// @Produce     json
// @Param       limit query int false "Maximum items (default from config)"
// @Success     200 {object} viewResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/closest [GET]
func (h *handler) Closest(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processViewReq(c)
	if err != nil {
		h.invalid(c, err)
		return
	}

	output, err := h.uc.ClosestToExpiry(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ClosestToExpiry: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newViewResp(output))
}

// Recent godoc
// @Summary     Recently added items
// @Tags        Dashboard
// @Produce     json
// @Param       limit query int false "Maximum items (default from config)"
// @Success     200 {object} viewResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/recent [GET]
func (h *handler) Recent(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processViewReq(c)
	if err != nil {
		h.invalid(c, err)
		return
	}

	output, err := h.uc.RecentlyAdded(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.RecentlyAdded: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newViewResp(output))
}

// Dashboard godoc
// @Summary     Dashboard
// @Description Both views computed for the same day.
// @Tags        Dashboard
// @Produce     json
// @Success     200 {object} dashboardResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/dashboard [GET]
func (h *handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Dashboard(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.Dashboard: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDashboardResp(output))
}

// ScheduleReminder godoc
// @Summary     Schedule a calendar reminder
// @Description Creates a one-hour Google Calendar event ahead of the item's expiration.
// @Tags        Calendar
// @Accept      json
// @Produce     json
// @Param       id   path int         true  "Item ID"
// @Param       body body reminderReq false "Lead time, e.g. {\"lead\": \"2 weeks\"}"
// @Success     200 {object} reminderResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     503 {object} response.Resp "Calendar not configured"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/{id}/reminder [POST]
func (h *handler) ScheduleReminder(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processReminderReq(c)
	if err != nil {
		h.invalid(c, err)
		return
	}

	output, err := h.uc.ScheduleReminder(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ScheduleReminder: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newReminderResp(output))
}
