package warranty

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Item CRUD
	Create(ctx context.Context, input CreateItemInput) (CreateItemOutput, error)
	List(ctx context.Context, input ListItemsInput) (ListItemsOutput, error)
	Detail(ctx context.Context, id int64) (DetailItemOutput, error)
	Update(ctx context.Context, input UpdateItemInput) (UpdateItemOutput, error)
	ReplaceThumbnail(ctx context.Context, input ReplaceThumbnailInput) (DetailItemOutput, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (DeleteAllOutput, error)

	// Dashboard views
	ClosestToExpiry(ctx context.Context, input ViewInput) (ViewOutput, error)
	RecentlyAdded(ctx context.Context, input ViewInput) (ViewOutput, error)
	Dashboard(ctx context.Context) (DashboardOutput, error)

	// Calendar
	ScheduleReminder(ctx context.Context, input ScheduleReminderInput) (ScheduleReminderOutput, error)
}
