package notifications

import (
	"context"
	"errors"
	"testing"

	apperrors "mounti/pkg/errors"
	"mounti/pkg/logger"
	"mounti/pkg/model"
)

type mockNotificationRepository struct {
	createFunc      func(ctx context.Context, notification *model.Notification) error
	findByUserFunc  func(ctx context.Context, userID string) ([]*model.Notification, error)
	markReadFunc    func(ctx context.Context, id, userID string) error
	countUnreadFunc func(ctx context.Context, userID string) (int64, error)
}

func (m *mockNotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, notification)
	}
	return nil
}

func (m *mockNotificationRepository) FindByUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID)
	}
	return []*model.Notification{}, nil
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, id, userID)
	}
	return nil
}

func (m *mockNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	if m.countUnreadFunc != nil {
		return m.countUnreadFunc(ctx, userID)
	}
	return 0, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func TestList_ScopedToActor(t *testing.T) {
	var queriedUser string
	repo := &mockNotificationRepository{
		findByUserFunc: func(ctx context.Context, userID string) ([]*model.Notification, error) {
			queriedUser = userID
			return []*model.Notification{{ID: "n-1", UserID: userID}}, nil
		},
	}
	service := NewService(repo, testLogger())

	result, err := service.List(context.Background(), &model.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if queriedUser != "user-1" {
		t.Errorf("expected query for user-1, got %s", queriedUser)
	}
	if len(result) != 1 {
		t.Errorf("expected 1 notification, got %d", len(result))
	}
}

func TestMarkRead_PassesActorID(t *testing.T) {
	var gotID, gotUserID string
	repo := &mockNotificationRepository{
		markReadFunc: func(ctx context.Context, id, userID string) error {
			gotID, gotUserID = id, userID
			return nil
		},
	}
	service := NewService(repo, testLogger())

	if err := service.MarkRead(context.Background(), "n-1", &model.User{ID: "user-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != "n-1" || gotUserID != "user-1" {
		t.Errorf("expected (n-1, user-1), got (%s, %s)", gotID, gotUserID)
	}
}

func TestMarkRead_ForeignNotificationSucceeds(t *testing.T) {
	// The repository silently matches nothing for another user's
	// notification; the operation still reports success.
	service := NewService(&mockNotificationRepository{}, testLogger())

	if err := service.MarkRead(context.Background(), "someone-elses", &model.User{ID: "user-1"}); err != nil {
		t.Errorf("expected success for a foreign notification, got %v", err)
	}
}

func TestUnreadCount(t *testing.T) {
	repo := &mockNotificationRepository{
		countUnreadFunc: func(ctx context.Context, userID string) (int64, error) {
			return 7, nil
		},
	}
	service := NewService(repo, testLogger())

	count, err := service.UnreadCount(context.Background(), &model.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 7 {
		t.Errorf("expected 7, got %d", count)
	}
}

func TestList_RepositoryFailure(t *testing.T) {
	repo := &mockNotificationRepository{
		findByUserFunc: func(ctx context.Context, userID string) ([]*model.Notification, error) {
			return nil, errors.New("connection reset")
		},
	}
	service := NewService(repo, testLogger())

	_, err := service.List(context.Background(), &model.User{ID: "user-1"})
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInternal {
		t.Errorf("expected %s, got %s", apperrors.CodeInternal, appErr.Code)
	}
}
