package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/apperr"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/repos"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/requestdata"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	ListUsers(ctx context.Context) ([]*types.User, error)
	ListNotifications(ctx context.Context, unreadOnly bool) ([]*types.Notification, error)
	MarkNotificationsRead(ctx context.Context, ids []uuid.UUID) error
}

type userService struct {
	log              *logger.Logger
	userRepo         repos.UserRepo
	notificationRepo repos.NotificationRepo
}

func NewUserService(baseLog *logger.Logger, userRepo repos.UserRepo, notificationRepo repos.NotificationRepo) UserService {
	return &userService{
		log:              baseLog.With("service", "UserService"),
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *userService) GetMe(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, apperr.Dependency(err, "load user")
	}
	if user == nil {
		return nil, apperr.NotFound("user %s", rd.UserID)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	rows, err := s.userRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.Dependency(err, "list users")
	}
	return rows, nil
}

func (s *userService) ListNotifications(ctx context.Context, unreadOnly bool) ([]*types.Notification, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	rows, err := s.notificationRepo.ListByUserID(ctx, nil, rd.UserID, unreadOnly)
	if err != nil {
		return nil, apperr.Dependency(err, "list notifications")
	}
	return rows, nil
}

func (s *userService) MarkNotificationsRead(ctx context.Context, ids []uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apperr.ErrUnauthorized
	}
	if len(ids) == 0 {
		return apperr.Validation("no notifications selected")
	}
	if err := s.notificationRepo.MarkRead(ctx, nil, ids); err != nil {
		return apperr.Dependency(err, "mark notifications read")
	}
	return nil
}
