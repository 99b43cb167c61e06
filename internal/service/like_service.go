package service

import (
	"context"
	"errors"

	"github.com/heyZakaria/01Blog/internal/model"
	"github.com/heyZakaria/01Blog/internal/repository/mysql"

	"gorm.io/gorm"
)

type LikeService struct {
	repo   *mysql.LikeRepository
	posts  *mysql.PostRepository
	users  *mysql.UserRepository
	notifs *NotificationService
}

func NewLikeService() *LikeService {
	return &LikeService{
		repo:   &mysql.LikeRepository{},
		posts:  &mysql.PostRepository{},
		users:  &mysql.UserRepository{},
		notifs: NewNotificationService(),
	}
}

// Toggle flips the like state for (user, post) and returns the new state.
// A concurrent duplicate like hits the unique index and is treated as
// already liked.
func (s *LikeService) Toggle(ctx context.Context, postID, userID uint64) (bool, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrPostNotFound
	}
	if err != nil {
		return false, err
	}

	removed, err := s.repo.DeleteByUserAndPost(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, err
	}

	err = mysql.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(tx, &model.Like{UserID: userID, PostID: postID}); err != nil {
			return err
		}
		if post.AuthorID == userID {
			return nil
		}
		msg := user.Name + " liked your post: " + post.Title
		return s.notifs.Emit(tx, post.AuthorID, model.NotificationPostLike, msg, &user.ID, &post.ID)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *LikeService) HasLiked(ctx context.Context, postID, userID uint64) (bool, error) {
	return s.repo.Exists(ctx, userID, postID)
}

func (s *LikeService) CountFor(ctx context.Context, postID uint64) (int64, error) {
	return s.repo.CountByPost(ctx, postID)
}
