package service

import (
	"context"
	"errors"

	"github.com/heyZakaria/01Blog/internal/model"
	"github.com/heyZakaria/01Blog/internal/repository/mysql"

	"gorm.io/gorm"
)

type SubscriptionService struct {
	repo   *mysql.SubscriptionRepository
	users  *mysql.UserRepository
	notifs *NotificationService
}

func NewSubscriptionService() *SubscriptionService {
	return &SubscriptionService{
		repo:   &mysql.SubscriptionRepository{},
		users:  &mysql.UserRepository{},
		notifs: NewNotificationService(),
	}
}

// ToggleFollow is the only mutation path for follow edges. It returns true
// when the actor now follows the target, false when the edge was removed.
func (s *SubscriptionService) ToggleFollow(ctx context.Context, targetID, actorID uint64) (bool, error) {
	if actorID == targetID {
		return false, ErrSelfFollow
	}

	actor, err := s.users.FindByID(ctx, actorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, err
	}
	target, err := s.users.FindByID(ctx, targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, err
	}

	removed, err := s.repo.DeleteByPair(ctx, actorID, targetID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	err = mysql.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := &model.Subscription{FollowerID: actorID, FollowingID: targetID}
		if err := s.repo.Create(tx, sub); err != nil {
			return err
		}
		msg := actor.Name + " started following you"
		return s.notifs.Emit(tx, target.ID, model.NotificationNewFollower, msg, &actor.ID, nil)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race against an identical follow; same outcome.
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SubscriptionService) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	return s.repo.Exists(ctx, followerID, followingID)
}

func (s *SubscriptionService) Followers(ctx context.Context, userID uint64) ([]UserView, error) {
	if err := s.mustExist(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.repo.FollowersOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserViews(users), nil
}

func (s *SubscriptionService) Following(ctx context.Context, userID uint64) ([]UserView, error) {
	if err := s.mustExist(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.repo.FollowingOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserViews(users), nil
}

func (s *SubscriptionService) FollowerCount(ctx context.Context, userID uint64) (int64, error) {
	return s.repo.CountFollowers(ctx, userID)
}

func (s *SubscriptionService) FollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return s.repo.CountFollowing(ctx, userID)
}

func (s *SubscriptionService) mustExist(ctx context.Context, userID uint64) error {
	_, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}

func toUserViews(users []model.User) []UserView {
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, toUserView(&users[i]))
	}
	return views
}
