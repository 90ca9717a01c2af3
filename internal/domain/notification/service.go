package notification

import "context"

type Service interface {
	ListMine(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, userID string) (UnreadCountResponse, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}
