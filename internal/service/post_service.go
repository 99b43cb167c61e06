package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/heyZakaria/01Blog/internal/model"
	"github.com/heyZakaria/01Blog/internal/repository/mysql"
	"github.com/heyZakaria/01Blog/internal/storage"

	"gorm.io/gorm"
)

// MediaURLPrefix is the public path stored media is served from.
const MediaURLPrefix = "/api/v1/media/"

type PostService struct {
	repo     *mysql.PostRepository
	likes    *mysql.LikeRepository
	comments *mysql.CommentRepository
	subs     *mysql.SubscriptionRepository
	users    *mysql.UserRepository
	store    *storage.FileStore
	notifs   *NotificationService
}

func NewPostService(store *storage.FileStore) *PostService {
	return &PostService{
		repo:     &mysql.PostRepository{},
		likes:    &mysql.LikeRepository{},
		comments: &mysql.CommentRepository{},
		subs:     &mysql.SubscriptionRepository{},
		users:    &mysql.UserRepository{},
		store:    store,
		notifs:   NewNotificationService(),
	}
}

func validatePostInput(title, description string) error {
	if n := utf8.RuneCountInString(title); n < 3 || n > 150 {
		return fmt.Errorf("%w: title must be 3-150 characters", ErrValidation)
	}
	if n := utf8.RuneCountInString(description); n < 10 || n > 1000 {
		return fmt.Errorf("%w: description must be 10-1000 characters", ErrValidation)
	}
	return nil
}

// Create stores the post and notifies every follower of the author in the
// same transaction.
func (s *PostService) Create(ctx context.Context, authorID uint64, title, description string) (*PostView, error) {
	if err := validatePostInput(title, description); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, authorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	// Read the follower set before the transaction opens; a query on the
	// shared pool from inside the closure would need a second connection.
	followerIDs, err := s.subs.FollowerIDs(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post := &model.Post{Title: title, Description: description, AuthorID: authorID}
	err = mysql.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(tx, post); err != nil {
			return err
		}
		msg := author.Name + " created a new post: " + post.Title
		for _, fid := range followerIDs {
			if err := s.notifs.Emit(tx, fid, model.NotificationNewPost, msg, &author.ID, &post.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	post.Author = author
	return s.buildView(ctx, post, authorID)
}

func (s *PostService) Update(ctx context.Context, id, actorID uint64, title, description string) (*PostView, error) {
	if err := validatePostInput(title, description); err != nil {
		return nil, err
	}

	post, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, ErrForbidden
	}

	post.Title = title
	post.Description = description
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, err
	}
	return s.buildView(ctx, post, actorID)
}

// Delete removes the post with its comments, likes and related notifications,
// then cleans up its media file. Admins may delete any post.
func (s *PostService) Delete(ctx context.Context, id, actorID uint64, isAdmin bool) error {
	post, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return err
	}
	if post.AuthorID != actorID && !isAdmin {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeMedia(post)
	return nil
}

// UploadMedia stores the file and attaches it to the post, replacing any
// previous media.
func (s *PostService) UploadMedia(ctx context.Context, id, actorID uint64, src io.Reader, size int64, contentType string) (*PostView, error) {
	post, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, ErrForbidden
	}

	filename, err := s.store.Store(src, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	old := post.MediaURL
	mediaType := storage.Classify(contentType)
	post.MediaURL = &filename
	post.MediaType = &mediaType
	if err := s.repo.Save(ctx, post); err != nil {
		if derr := s.store.Delete(filename); derr != nil {
			slog.Warn("could not remove orphaned media file", "file", filename, "error", derr)
		}
		return nil, err
	}

	if old != nil {
		if derr := s.store.Delete(*old); derr != nil {
			slog.Warn("could not remove replaced media file", "file", *old, "error", derr)
		}
	}
	return s.buildView(ctx, post, actorID)
}

// DeleteMedia detaches and removes the post's media file.
func (s *PostService) DeleteMedia(ctx context.Context, id, actorID uint64) (*PostView, error) {
	post, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, ErrForbidden
	}

	old := post.MediaURL
	post.MediaURL = nil
	post.MediaType = nil
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, err
	}
	if old != nil {
		if derr := s.store.Delete(*old); derr != nil {
			slog.Warn("could not remove media file", "file", *old, "error", derr)
		}
	}
	return s.buildView(ctx, post, actorID)
}

func (s *PostService) GetByID(ctx context.Context, id, viewerID uint64) (*PostView, error) {
	post, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, post, viewerID)
}

func (s *PostService) GetAll(ctx context.Context, viewerID uint64) ([]PostView, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, posts, viewerID)
}

func (s *PostService) PostsByUser(ctx context.Context, authorID, viewerID uint64) ([]PostView, error) {
	if _, err := s.users.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	posts, err := s.repo.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, posts, viewerID)
}

// Feed returns posts by the users the viewer follows, newest first. A viewer
// following nobody gets an empty feed.
func (s *PostService) Feed(ctx context.Context, viewerID uint64) ([]PostView, error) {
	followingIDs, err := s.subs.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(followingIDs) == 0 {
		return []PostView{}, nil
	}
	posts, err := s.repo.FindFeed(ctx, followingIDs)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, posts, viewerID)
}

func (s *PostService) buildView(ctx context.Context, post *model.Post, viewerID uint64) (*PostView, error) {
	likeCount, err := s.likes.CountByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	commentCount, err := s.comments.CountByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	liked, err := s.likes.Exists(ctx, viewerID, post.ID)
	if err != nil {
		return nil, err
	}

	view := &PostView{
		ID:            post.ID,
		Title:         post.Title,
		Description:   post.Description,
		LikeCount:     likeCount,
		CommentCount:  commentCount,
		LikedByViewer: liked,
		MediaType:     post.MediaType,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
	if post.Author != nil {
		view.Author = toUserView(post.Author)
	}
	if post.MediaURL != nil {
		url := MediaURLPrefix + *post.MediaURL
		view.MediaURL = &url
	}
	return view, nil
}

func (s *PostService) buildViews(ctx context.Context, posts []model.Post, viewerID uint64) ([]PostView, error) {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		v, err := s.buildView(ctx, &posts[i], viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *PostService) removeMedia(post *model.Post) {
	if post.MediaURL == nil {
		return
	}
	if err := s.store.Delete(*post.MediaURL); err != nil {
		slog.Warn("could not remove media file", "file", *post.MediaURL, "error", err)
	}
}
