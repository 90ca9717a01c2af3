package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	ListByUser(ctx context.Context, userID string, limit int, unreadOnly bool) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id string, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

// Sink delivers notifications after status transitions. Delivery failures
// must never roll back the transition that produced them.
type Sink interface {
	Notify(ctx context.Context, userID string, typ Type, title, message string, link *string)
}
