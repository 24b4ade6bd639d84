package notifications

import (
	"context"

	"mounti/internal/store"
	apperrors "mounti/pkg/errors"
	"mounti/pkg/logger"
	"mounti/pkg/model"
)

type Service interface {
	List(ctx context.Context, actor *model.User) ([]*model.Notification, error)
	// MarkRead succeeds even when the notification does not exist or
	// belongs to another user.
	MarkRead(ctx context.Context, id string, actor *model.User) error
	UnreadCount(ctx context.Context, actor *model.User) (int64, error)
}

type notificationService struct {
	notifications store.NotificationRepository
	log           *logger.Logger
}

func NewService(notifications store.NotificationRepository, log *logger.Logger) Service {
	return &notificationService{
		notifications: notifications,
		log:           log,
	}
}

func (s *notificationService) List(ctx context.Context, actor *model.User) ([]*model.Notification, error) {
	notifications, err := s.notifications.FindByUser(ctx, actor.ID)
	if err != nil {
		s.log.Error("Failed to list notifications", "user_id", actor.ID, "error", err)
		return nil, apperrors.Internal("Failed to list notifications", err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string, actor *model.User) error {
	if err := s.notifications.MarkRead(ctx, id, actor.ID); err != nil {
		s.log.Error("Failed to mark notification read", "notification_id", id, "error", err)
		return apperrors.Internal("Failed to mark notification read", err)
	}
	return nil
}

func (s *notificationService) UnreadCount(ctx context.Context, actor *model.User) (int64, error) {
	count, err := s.notifications.CountUnread(ctx, actor.ID)
	if err != nil {
		s.log.Error("Failed to count unread notifications", "user_id", actor.ID, "error", err)
		return 0, apperrors.Internal("Failed to count unread notifications", err)
	}
	return count, nil
}
