package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/punchdesk/attendance-backend-go/internal/domain/notification"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/clock"
)

const defaultListLimit = 50

// NotificationService is both the query Service and the Sink that
// status transitions publish into.
type NotificationService struct {
	repo   notification.Repository
	clk    clock.Clock
	logger *slog.Logger
}

func NewNotificationService(repo notification.Repository, clk clock.Clock, logger *slog.Logger) *NotificationService {
	return &NotificationService{repo: repo, clk: clk, logger: logger}
}

var (
	_ notification.Service = (*NotificationService)(nil)
	_ notification.Sink    = (*NotificationService)(nil)
)

// Notify persists the notification. Failures are logged and swallowed so a
// delivery problem never rolls back the transition that produced it.
func (s *NotificationService) Notify(ctx context.Context, userID string, typ notification.Type, title, message string, link *string) {
	_, err := s.repo.Create(ctx, notification.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		Link:      link,
		IsRead:    false,
		CreatedAt: s.clk.Now(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to deliver notification",
			slog.String("user_id", userID),
			slog.String("type", string(typ)),
			slog.Any("error", err),
		)
	}
}

func (s *NotificationService) ListMine(ctx context.Context, userID string, unreadOnly bool) ([]notification.NotificationResponse, error) {
	items, err := s.repo.ListByUser(ctx, userID, defaultListLimit, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, 0, len(items))
	for _, n := range items {
		responses = append(responses, notification.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			Link:      n.Link,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return responses, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (notification.UnreadCountResponse, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return notification.UnreadCountResponse{}, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return notification.UnreadCountResponse{Count: count}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.repo.MarkRead(ctx, notificationID, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}
