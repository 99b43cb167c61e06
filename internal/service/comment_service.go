package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/heyZakaria/01Blog/internal/model"
	"github.com/heyZakaria/01Blog/internal/repository/mysql"

	"gorm.io/gorm"
)

type CommentService struct {
	repo   *mysql.CommentRepository
	posts  *mysql.PostRepository
	users  *mysql.UserRepository
	notifs *NotificationService
}

func NewCommentService() *CommentService {
	return &CommentService{
		repo:   &mysql.CommentRepository{},
		posts:  &mysql.PostRepository{},
		users:  &mysql.UserRepository{},
		notifs: NewNotificationService(),
	}
}

func (s *CommentService) Create(ctx context.Context, postID, authorID uint64, content string) (*CommentView, error) {
	if n := utf8.RuneCountInString(content); n < 1 || n > 500 {
		return nil, fmt.Errorf("%w: content must be 1-500 characters", ErrValidation)
	}

	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, authorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{Content: content, PostID: postID, AuthorID: authorID}
	err = mysql.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(tx, comment); err != nil {
			return err
		}
		if post.AuthorID == authorID {
			return nil
		}
		msg := author.Name + " commented on your post: " + post.Title
		return s.notifs.Emit(tx, post.AuthorID, model.NotificationPostComment, msg, &author.ID, &post.ID)
	})
	if err != nil {
		return nil, err
	}

	comment.Author = author
	view := toCommentView(comment)
	return &view, nil
}

func (s *CommentService) Update(ctx context.Context, id, actorID uint64, content string) (*CommentView, error) {
	if n := utf8.RuneCountInString(content); n < 1 || n > 500 {
		return nil, fmt.Errorf("%w: content must be 1-500 characters", ErrValidation)
	}

	comment, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actorID {
		return nil, ErrForbidden
	}

	comment.Content = content
	if err := s.repo.Save(ctx, comment); err != nil {
		return nil, err
	}
	view := toCommentView(comment)
	return &view, nil
}

func (s *CommentService) Delete(ctx context.Context, id, actorID uint64) error {
	comment, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCommentNotFound
	}
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *CommentService) ListForPost(ctx context.Context, postID uint64) ([]CommentView, error) {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	comments, err := s.repo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, toCommentView(&comments[i]))
	}
	return views, nil
}

func (s *CommentService) CountFor(ctx context.Context, postID uint64) (int64, error) {
	return s.repo.CountByPost(ctx, postID)
}
