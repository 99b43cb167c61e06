package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/heyZakaria/01Blog/internal/model"
	"github.com/heyZakaria/01Blog/internal/repository/mysql"
)

func TestPostCreateFansOutToFollowers(t *testing.T) {
	setupDB(t)
	svc := NewPostService(newFileStore(t))
	ctx := context.Background()

	author := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	carol := seedUser(t, "carol")
	seedFollow(t, bob, author)
	seedFollow(t, carol, author)

	post, err := svc.Create(ctx, author.ID, "my first post", "a description long enough")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.Author.ID != author.ID {
		t.Fatalf("author = %d, want %d", post.Author.ID, author.ID)
	}

	for _, u := range []*model.User{bob, carol} {
		if n := countNotifications(t, u.ID, model.NotificationNewPost); n != 1 {
			t.Fatalf("follower %s notifications = %d, want 1", u.Name, n)
		}
	}
	// The author does not get notified about their own post.
	if n := countNotifications(t, author.ID, model.NotificationNewPost); n != 0 {
		t.Fatalf("author notifications = %d, want 0", n)
	}
}

func TestPostCreateValidation(t *testing.T) {
	setupDB(t)
	svc := NewPostService(newFileStore(t))
	ctx := context.Background()
	author := seedUser(t, "alice")

	cases := []struct {
		name        string
		title, desc string
	}{
		{"short title", "ab", "a description long enough"},
		{"long title", strings.Repeat("x", 151), "a description long enough"},
		{"short description", "a fine title", "too short"},
		{"long description", "a fine title", strings.Repeat("x", 1001)},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, author.ID, tc.title, tc.desc); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", tc.name, err)
		}
	}
}

func TestPostUpdateOwnership(t *testing.T) {
	setupDB(t)
	svc := NewPostService(newFileStore(t))
	ctx := context.Background()

	author := seedUser(t, "alice")
	other := seedUser(t, "bob")
	post := seedPost(t, author, "original title")

	if _, err := svc.Update(ctx, post.ID, other.ID, "hijacked title", "a description long enough"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	updated, err := svc.Update(ctx, post.ID, author.ID, "new title", "a description long enough")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "new title" {
		t.Fatalf("title = %q, want %q", updated.Title, "new title")
	}
}

func TestPostDeleteCascades(t *testing.T) {
	setupDB(t)
	svc := NewPostService(newFileStore(t))
	likes := NewLikeService()
	comments := NewCommentService()
	ctx := context.Background()

	author := seedUser(t, "alice")
	reader := seedUser(t, "bob")
	post := seedPost(t, author, "doomed post")

	if _, err := likes.Toggle(ctx, post.ID, reader.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, err := comments.Create(ctx, post.ID, reader.ID, "nice one"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	if err := svc.Delete(ctx, post.ID, author.ID, false); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var n int64
	mysql.DB.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&n)
	if n != 0 {
		t.Fatalf("comments left = %d, want 0", n)
	}
	mysql.DB.Model(&model.Like{}).Where("post_id = ?", post.ID).Count(&n)
	if n != 0 {
		t.Fatalf("likes left = %d, want 0", n)
	}
	mysql.DB.Model(&model.Notification{}).Where("related_post_id = ?", post.ID).Count(&n)
	if n != 0 {
		t.Fatalf("notifications left = %d, want 0", n)
	}

	if _, err := svc.GetByID(ctx, post.ID, author.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("err = %v, want ErrPostNotFound", err)
	}
}

func TestPostDeleteByAdmin(t *testing.T) {
	setupDB(t)
	svc := NewPostService(newFileStore(t))
	ctx := context.Background()

	author := seedUser(t, "alice")
	admin := seedUser(t, "admin")
	post := seedPost(t, author, "flagged post")

	if err := svc.Delete(ctx, post.ID, admin.ID, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-admin err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, post.ID, admin.ID, true); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestPostViewComposition(t *testing.T) {
	setupDB(t)
	svc := NewPostService(newFileStore(t))
	likes := NewLikeService()
	comments := NewCommentService()
	ctx := context.Background()

	author := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	carol := seedUser(t, "carol")
	post := seedPost(t, author, "popular post")

	for _, u := range []*model.User{bob, carol} {
		if _, err := likes.Toggle(ctx, post.ID, u.ID); err != nil {
			t.Fatalf("like: %v", err)
		}
	}
	if _, err := comments.Create(ctx, post.ID, bob.ID, "first"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	view, err := svc.GetByID(ctx, post.ID, bob.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.LikeCount != 2 {
		t.Errorf("like count = %d, want 2", view.LikeCount)
	}
	if view.CommentCount != 1 {
		t.Errorf("comment count = %d, want 1", view.CommentCount)
	}
	if !view.LikedByViewer {
		t.Error("bob should see liked_by_current_user = true")
	}

	view, _ = svc.GetByID(ctx, post.ID, author.ID)
	if view.LikedByViewer {
		t.Error("author should see liked_by_current_user = false")
	}
}

func TestFeed(t *testing.T) {
	setupDB(t)
	svc := NewPostService(newFileStore(t))
	ctx := context.Background()

	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	carol := seedUser(t, "carol")

	seedPost(t, bob, "bob one")
	seedPost(t, bob, "bob two")
	seedPost(t, carol, "carol one")

	// No subscriptions yet: empty feed, not everything.
	feed, err := svc.Feed(ctx, alice.ID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 0 {
		t.Fatalf("feed = %d posts, want 0", len(feed))
	}

	seedFollow(t, alice, bob)
	feed, err = svc.Feed(ctx, alice.ID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("feed = %d posts, want 2", len(feed))
	}
	// Newest first.
	if feed[0].Title != "bob two" || feed[1].Title != "bob one" {
		t.Fatalf("feed order = [%s, %s], want newest first", feed[0].Title, feed[1].Title)
	}
	for _, p := range feed {
		if p.Author.ID != bob.ID {
			t.Fatalf("feed contains post by %d, want only %d", p.Author.ID, bob.ID)
		}
	}
}

func TestPostUploadMedia(t *testing.T) {
	setupDB(t)
	svc := NewPostService(newFileStore(t))
	ctx := context.Background()

	author := seedUser(t, "alice")
	other := seedUser(t, "bob")
	post := seedPost(t, author, "with media")

	body := strings.NewReader("fake image bytes")
	if _, err := svc.UploadMedia(ctx, post.ID, other.ID, body, int64(body.Len()), "image/png"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	body = strings.NewReader("fake image bytes")
	view, err := svc.UploadMedia(ctx, post.ID, author.ID, body, int64(body.Len()), "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if view.MediaURL == nil || !strings.HasPrefix(*view.MediaURL, MediaURLPrefix) {
		t.Fatalf("media url = %v, want %s prefix", view.MediaURL, MediaURLPrefix)
	}
	if view.MediaType == nil || *view.MediaType != "image" {
		t.Fatalf("media type = %v, want image", view.MediaType)
	}

	body = strings.NewReader("bad")
	if _, err := svc.UploadMedia(ctx, post.ID, author.ID, body, int64(body.Len()), "application/pdf"); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for disallowed type", err)
	}

	view, err = svc.DeleteMedia(ctx, post.ID, author.ID)
	if err != nil {
		t.Fatalf("delete media: %v", err)
	}
	if view.MediaURL != nil {
		t.Fatalf("media url = %v after delete, want nil", view.MediaURL)
	}
}
