package warranty

import (
	"io"
	"time"

	"warranty-tracker/pkg/datemath"
)

// --- Item Domain Model ---

// Item is a purchased household item under warranty.
type Item struct {
	ID               int64
	Name             string
	WarrantyDuration int
	DurationUnit     datemath.Unit
	DateBought       time.Time
	ThumbnailPath    string
	ExpirationDate   time.Time
	CreatedAt        time.Time
}

// EnrichedItem is an Item with the values derived for display on a given day.
type EnrichedItem struct {
	Item
	DaysRemaining    int
	ProgressFraction float64
	// DegenerateRange is set when the warranty window has zero length and
	// ProgressFraction holds the fallback value instead of a computed one.
	DegenerateRange bool
	Expired         bool
	ThumbnailURL    string
}

// Upload is an uploaded thumbnail image.
type Upload struct {
	Reader   io.Reader
	Filename string
}

// --- UseCase Inputs ---

type CreateItemInput struct {
	Name             string
	WarrantyDuration int
	DurationUnit     datemath.Unit
	DateBought       time.Time
	Thumbnail        *Upload
}

type ListItemsInput struct {
	Sort   string
	Limit  int
	Offset int
}

// UpdateItemInput is a partial update. Zero-valued fields keep the stored value.
type UpdateItemInput struct {
	ID               int64
	Name             string
	WarrantyDuration int
	DurationUnit     datemath.Unit
	DateBought       time.Time
	Thumbnail        *Upload
}

type ReplaceThumbnailInput struct {
	ID        int64
	Thumbnail Upload
}

type ViewInput struct {
	Limit int
}

// ScheduleReminderInput asks for a calendar reminder ahead of expiration.
// A zero Lead uses the configured default.
type ScheduleReminderInput struct {
	ID   int64
	Lead datemath.Duration
}

// --- UseCase Outputs ---

type CreateItemOutput struct {
	Item EnrichedItem
	// ThumbnailError is set when the upload could not be stored and the item
	// was saved with the placeholder instead.
	ThumbnailError error
}

type ListItemsOutput struct {
	Items  []EnrichedItem
	Total  int
	Limit  int
	Offset int
}

type DetailItemOutput struct {
	Item EnrichedItem
}

type UpdateItemOutput struct {
	Item           EnrichedItem
	ThumbnailError error
}

type DeleteAllOutput struct {
	Deleted int64
}

type ViewOutput struct {
	Today time.Time
	Items []EnrichedItem
}

type DashboardOutput struct {
	Today   time.Time
	Closest []EnrichedItem
	Recent  []EnrichedItem
}

type ScheduleReminderOutput struct {
	EventID   string
	EventLink string
	Start     time.Time
	End       time.Time
}
