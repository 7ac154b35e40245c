package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/repository"
	"github.com/praxishq/praxis-api/pkg/apperror"
	"github.com/praxishq/praxis-api/pkg/pagination"
)

// NotificationService handles in-app notifications
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListNotificationsInput represents the input for listing notifications
type ListNotificationsInput struct {
	UserID     uuid.UUID
	Pagination *pagination.PaginationParams
	UnreadOnly bool
}

// ListNotifications lists the user's notifications, newest first
func (s *NotificationService) ListNotifications(ctx context.Context, input *ListNotificationsInput) (*pagination.PaginatedResult[entity.Notification], error) {
	notifications, total, err := s.notificationRepo.ListForUser(ctx, input.UserID, input.Pagination, input.UnreadOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(notifications, pag), nil
}

// CountUnread returns the number of unread notifications for a user
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return apperror.NewNotFoundError("Notification")
	}
	if notification.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.notificationRepo.MarkRead(ctx, id)
}

// MarkAllRead marks every unread notification of the user as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
