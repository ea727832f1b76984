package http

import (
	"mime/multipart"
	"strings"
	"time"

	"warranty-tracker/internal/warranty"
	"warranty-tracker/pkg/datemath"
	"warranty-tracker/pkg/response"
)

// --- Request DTOs ---

// createReq is accepted as JSON or as multipart form fields. Warranty is a
// shorthand such as "12 months" that fills duration and unit together.
type createReq struct {
	Name             string `json:"name"              form:"name"`
	WarrantyDuration int    `json:"warranty_duration" form:"warranty_duration" binding:"min=0"`
	DurationUnit     string `json:"duration_unit"     form:"duration_unit"`
	Warranty         string `json:"warranty"          form:"warranty"`
	DateBought       string `json:"date_bought"       form:"date_bought"`

	thumbnail  *multipart.FileHeader
	dateBought time.Time
	duration   datemath.Duration
}

func (r *createReq) validate(p *datemath.Parser) error {
	if strings.TrimSpace(r.Name) == "" {
		return warranty.ErrEmptyName
	}
	if strings.TrimSpace(r.DateBought) == "" {
		return warranty.ErrInvalidDate
	}

	d, err := p.ParseDate(r.DateBought)
	if err != nil {
		return err
	}
	r.dateBought = d

	r.duration, err = parseWarranty(r.Warranty, r.WarrantyDuration, r.DurationUnit)
	return err
}

func (r createReq) toInput(up *warranty.Upload) warranty.CreateItemInput {
	return warranty.CreateItemInput{
		Name:             r.Name,
		WarrantyDuration: r.duration.Amount,
		DurationUnit:     r.duration.Unit,
		DateBought:       r.dateBought,
		Thumbnail:        up,
	}
}

// ---

type listReq struct {
	Sort   string `form:"sort"`
	Limit  int    `form:"limit"  binding:"min=0"`
	Offset int    `form:"offset" binding:"min=0"`
}

func (r listReq) toInput() warranty.ListItemsInput {
	return warranty.ListItemsInput{
		Sort:   r.Sort,
		Limit:  r.Limit,
		Offset: r.Offset,
	}
}

// ---

type viewReq struct {
	Limit int `form:"limit" binding:"min=0"`
}

func (r viewReq) toInput() warranty.ViewInput {
	return warranty.ViewInput{Limit: r.Limit}
}

// ---

// updateReq is a partial update; omitted fields keep their stored values.
type updateReq struct {
	ID               int64  `json:"-"                 form:"-"` // populated from URI param
	Name             string `json:"name"              form:"name"`
	WarrantyDuration int    `json:"warranty_duration" form:"warranty_duration" binding:"min=0"`
	DurationUnit     string `json:"duration_unit"     form:"duration_unit"`
	Warranty         string `json:"warranty"          form:"warranty"`
	DateBought       string `json:"date_bought"       form:"date_bought"`

	thumbnail  *multipart.FileHeader
	dateBought time.Time
	duration   datemath.Duration
}

func (r *updateReq) validate(p *datemath.Parser) error {
	if r.Name != "" && strings.TrimSpace(r.Name) == "" {
		return warranty.ErrEmptyName
	}
	if r.DateBought != "" {
		d, err := p.ParseDate(r.DateBought)
		if err != nil {
			return err
		}
		r.dateBought = d
	}

	if r.Warranty == "" && r.WarrantyDuration == 0 && r.DurationUnit == "" {
		return nil
	}
	var err error
	if r.Warranty == "" && r.WarrantyDuration == 0 {
		// Unit alone: reinterpret the stored amount.
		r.duration.Unit, err = datemath.ParseUnit(r.DurationUnit)
		return err
	}
	r.duration, err = parseWarranty(r.Warranty, r.WarrantyDuration, r.DurationUnit)
	return err
}

func (r updateReq) toInput(up *warranty.Upload) warranty.UpdateItemInput {
	return warranty.UpdateItemInput{
		ID:               r.ID,
		Name:             r.Name,
		WarrantyDuration: r.duration.Amount,
		DurationUnit:     r.duration.Unit,
		DateBought:       r.dateBought,
		Thumbnail:        up,
	}
}

// ---

type reminderReq struct {
	Lead string `json:"lead"`

	id   int64
	lead datemath.Duration
}

func (r *reminderReq) validate() error {
	if strings.TrimSpace(r.Lead) == "" {
		return nil
	}
	lead, err := datemath.ParseDuration(r.Lead)
	if err != nil {
		return err
	}
	r.lead = lead
	return nil
}

func (r reminderReq) toInput() warranty.ScheduleReminderInput {
	return warranty.ScheduleReminderInput{ID: r.id, Lead: r.lead}
}

// parseWarranty resolves either the "12 months" shorthand or the separate
// amount and unit fields. A missing unit means months.
func parseWarranty(shorthand string, amount int, unit string) (datemath.Duration, error) {
	if strings.TrimSpace(shorthand) != "" {
		return datemath.ParseDuration(shorthand)
	}
	if amount <= 0 {
		return datemath.Duration{}, datemath.ErrInvalidDuration
	}
	if unit == "" {
		return datemath.Duration{Amount: amount, Unit: datemath.UnitMonths}, nil
	}
	u, err := datemath.ParseUnit(unit)
	if err != nil {
		return datemath.Duration{}, err
	}
	return datemath.Duration{Amount: amount, Unit: u}, nil
}

// --- Response DTOs ---

type itemResp struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	WarrantyDuration int               `json:"warranty_duration"`
	DurationUnit     string            `json:"duration_unit"`
	Warranty         string            `json:"warranty"`
	DateBought       response.Date     `json:"date_bought"       swaggertype:"string" example:"2023-01-15"`
	ExpirationDate   response.Date     `json:"expiration_date"   swaggertype:"string" example:"2024-01-15"`
	DaysRemaining    int               `json:"days_remaining"`
	Progress         float64           `json:"progress"`
	ProgressPercent  int               `json:"progress_percent"`
	Expired          bool              `json:"expired"`
	ThumbnailURL     string            `json:"thumbnail_url"`
	CreatedAt        response.DateTime `json:"created_at"        swaggertype:"string"`
}

func newItemResp(item warranty.EnrichedItem) itemResp {
	return itemResp{
		ID:               item.ID,
		Name:             item.Name,
		WarrantyDuration: item.WarrantyDuration,
		DurationUnit:     string(item.DurationUnit),
		Warranty:         datemath.Duration{Amount: item.WarrantyDuration, Unit: item.DurationUnit}.String(),
		DateBought:       response.Date(item.DateBought),
		ExpirationDate:   response.Date(item.ExpirationDate),
		DaysRemaining:    item.DaysRemaining,
		Progress:         item.ProgressFraction,
		ProgressPercent:  progressPercent(item.ProgressFraction),
		Expired:          item.Expired,
		ThumbnailURL:     item.ThumbnailURL,
		CreatedAt:        response.DateTime(item.CreatedAt),
	}
}

// progressPercent is the display value of a progress bar, clamped to 0..100.
func progressPercent(f float64) int {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 100
	}
	return int(f*100 + 0.5)
}

func newItemResps(items []warranty.EnrichedItem) []itemResp {
	out := make([]itemResp, len(items))
	for i, item := range items {
		out[i] = newItemResp(item)
	}
	return out
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

type createResp struct {
	Item           itemResp `json:"item"`
	ThumbnailError string   `json:"thumbnail_error,omitempty"`
}

func (h *handler) newCreateResp(out warranty.CreateItemOutput) createResp {
	return createResp{
		Item:           newItemResp(out.Item),
		ThumbnailError: errString(out.ThumbnailError),
	}
}

type listResp struct {
	Items  []itemResp `json:"items"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

func (h *handler) newListResp(out warranty.ListItemsOutput) listResp {
	return listResp{
		Items:  newItemResps(out.Items),
		Total:  out.Total,
		Limit:  out.Limit,
		Offset: out.Offset,
	}
}

type detailResp struct {
	Item itemResp `json:"item"`
}

func (h *handler) newDetailResp(out warranty.DetailItemOutput) detailResp {
	return detailResp{Item: newItemResp(out.Item)}
}

type updateResp struct {
	Item           itemResp `json:"item"`
	ThumbnailError string   `json:"thumbnail_error,omitempty"`
}

func (h *handler) newUpdateResp(out warranty.UpdateItemOutput) updateResp {
	return updateResp{
		Item:           newItemResp(out.Item),
		ThumbnailError: errString(out.ThumbnailError),
	}
}

type deleteAllResp struct {
	Deleted int64 `json:"deleted"`
}

type viewResp struct {
	Today response.Date `json:"today" swaggertype:"string" example:"2023-07-15"`
	Items []itemResp    `json:"items"`
}

func (h *handler) newViewResp(out warranty.ViewOutput) viewResp {
	return viewResp{
		Today: response.Date(out.Today),
		Items: newItemResps(out.Items),
	}
}

type dashboardResp struct {
	Today   response.Date `json:"today" swaggertype:"string" example:"2023-07-15"`
	Closest []itemResp    `json:"closest"`
	Recent  []itemResp    `json:"recent"`
}

func (h *handler) newDashboardResp(out warranty.DashboardOutput) dashboardResp {
	return dashboardResp{
		Today:   response.Date(out.Today),
		Closest: newItemResps(out.Closest),
		Recent:  newItemResps(out.Recent),
	}
}

type reminderResp struct {
	EventID   string    `json:"event_id"`
	EventLink string    `json:"event_link"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

func (h *handler) newReminderResp(out warranty.ScheduleReminderOutput) reminderResp {
	return reminderResp{
		EventID:   out.EventID,
		EventLink: out.EventLink,
		Start:     out.Start,
		End:       out.End,
	}
}
