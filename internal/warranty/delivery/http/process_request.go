package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"warranty-tracker/internal/warranty"
)

const thumbnailField = "thumbnail"

// processCreateReq binds a JSON or multipart create request.
func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	fh, err := h.bindWithUpload(c, &req)
	if err != nil {
		return req, err
	}
	req.thumbnail = fh
	return req, req.validate(h.parser)
}

// processListReq binds the list query parameters.
func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processViewReq binds the limit of a dashboard view.
func (h *handler) processViewReq(c *gin.Context) (viewReq, error) {
	var req viewReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processUpdateReq binds the update body + URI param.
func (h *handler) processUpdateReq(c *gin.Context) (updateReq, error) {
	var req updateReq
	id, err := h.processIDParam(c)
	if err != nil {
		return req, err
	}

	fh, err := h.bindWithUpload(c, &req)
	if err != nil {
		return req, err
	}
	req.ID = id
	req.thumbnail = fh
	return req, req.validate(h.parser)
}

// processThumbnailReq reads the required thumbnail part of a multipart request.
func (h *handler) processThumbnailReq(c *gin.Context) (int64, *multipart.FileHeader, error) {
	id, err := h.processIDParam(c)
	if err != nil {
		return 0, nil, err
	}
	if !isMultipart(c) {
		return 0, nil, errThumbnailMissing
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	fh, err := c.FormFile(thumbnailField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return 0, nil, errThumbnailMissing
		}
		return 0, nil, uploadError(err)
	}
	return id, fh, nil
}

// processReminderReq binds an optional {"lead": "1 month"} body.
func (h *handler) processReminderReq(c *gin.Context) (reminderReq, error) {
	var req reminderReq
	id, err := h.processIDParam(c)
	if err != nil {
		return req, err
	}
	req.id = id

	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	return req, req.validate()
}

func (h *handler) processIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// bindWithUpload binds obj from JSON or multipart form fields and returns the
// optional thumbnail part.
func (h *handler) bindWithUpload(c *gin.Context, obj any) (*multipart.FileHeader, error) {
	if !isMultipart(c) {
		return nil, c.ShouldBindJSON(obj)
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	if err := c.ShouldBind(obj); err != nil {
		return nil, uploadError(err)
	}

	fh, err := c.FormFile(thumbnailField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, uploadError(err)
	}
	return fh, nil
}

// openUpload opens a multipart file part. The returned close func is never nil.
func openUpload(fh *multipart.FileHeader) (*warranty.Upload, func(), error) {
	if fh == nil {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &warranty.Upload{Reader: f, Filename: fh.Filename}, func() { f.Close() }, nil
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errUploadTooLarge
	}
	return err
}
