package ranker

import (
	"errors"
	"path"
	"sort"
	"strings"
	"time"

	"warranty-tracker/internal/warranty"
	"warranty-tracker/pkg/datemath"
	"warranty-tracker/pkg/thumbnail"
)

// DegenerateProgress is reported for items whose warranty window has zero length.
const DegenerateProgress = 1.0

// Ranker orders and enriches items for the dashboard views. Every method is a
// pure function of its arguments; "today" is always supplied by the caller.
type Ranker interface {
	// ClosestToExpiring keeps items expiring today or later, soonest first.
	ClosestToExpiring(items []warranty.Item, today time.Time, limit int) []warranty.Item

	// MostRecentlyAdded returns the newest items by id, newest first.
	MostRecentlyAdded(items []warranty.Item, limit int) []warranty.Item

	// Enrich attaches the values derived for today.
	Enrich(item warranty.Item, today time.Time) warranty.EnrichedItem

	// EnrichAll enriches every item, preserving order.
	EnrichAll(items []warranty.Item, today time.Time) []warranty.EnrichedItem
}

// Options configures how thumbnail paths are resolved for display.
// DefaultThumbnail falls back to thumbnail.DefaultName.
type Options struct {
	ThumbnailURLPrefix string
	DefaultThumbnail   string
}

type ranker struct {
	urlPrefix        string
	defaultThumbnail string
}

func New(opts Options) Ranker {
	if opts.DefaultThumbnail == "" {
		opts.DefaultThumbnail = thumbnail.DefaultName
	}
	return &ranker{
		urlPrefix:        opts.ThumbnailURLPrefix,
		defaultThumbnail: opts.DefaultThumbnail,
	}
}

func (r *ranker) ClosestToExpiring(items []warranty.Item, today time.Time, limit int) []warranty.Item {
	if limit <= 0 {
		return []warranty.Item{}
	}

	today = datemath.Date(today)
	active := make([]warranty.Item, 0, len(items))
	for _, item := range items {
		if !datemath.Date(item.ExpirationDate).Before(today) {
			active = append(active, item)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		ei, ej := datemath.Date(active[i].ExpirationDate), datemath.Date(active[j].ExpirationDate)
		if !ei.Equal(ej) {
			return ei.Before(ej)
		}
		return active[i].ID < active[j].ID
	})

	return truncate(active, limit)
}

func (r *ranker) MostRecentlyAdded(items []warranty.Item, limit int) []warranty.Item {
	if limit <= 0 {
		return []warranty.Item{}
	}

	recent := make([]warranty.Item, len(items))
	copy(recent, items)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ID > recent[j].ID
	})

	return truncate(recent, limit)
}

func (r *ranker) Enrich(item warranty.Item, today time.Time) warranty.EnrichedItem {
	days := datemath.DaysUntil(item.ExpirationDate, today)

	progress, err := datemath.ProgressFraction(item.DateBought, item.ExpirationDate, today)
	degenerate := errors.Is(err, datemath.ErrDegenerateRange)
	if degenerate {
		progress = DegenerateProgress
	}

	return warranty.EnrichedItem{
		Item:             item,
		DaysRemaining:    days,
		ProgressFraction: progress,
		DegenerateRange:  degenerate,
		Expired:          days < 0,
		ThumbnailURL:     r.thumbnailURL(item.ThumbnailPath),
	}
}

func (r *ranker) EnrichAll(items []warranty.Item, today time.Time) []warranty.EnrichedItem {
	out := make([]warranty.EnrichedItem, len(items))
	for i, item := range items {
		out[i] = r.Enrich(item, today)
	}
	return out
}

// thumbnailURL resolves a stored thumbnail reference to the path clients fetch.
// Older rows hold a full upload path with OS separators; only the file name
// is kept since every thumbnail lives in one directory.
func (r *ranker) thumbnailURL(stored string) string {
	name := stored
	if name == "" {
		name = r.defaultThumbnail
	}
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if r.urlPrefix == "" {
		return name
	}
	return path.Join(r.urlPrefix, name)
}

func truncate(items []warranty.Item, limit int) []warranty.Item {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
