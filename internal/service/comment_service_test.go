package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/heyZakaria/01Blog/internal/model"
)

func TestCommentCreate(t *testing.T) {
	setupDB(t)
	svc := NewCommentService()
	ctx := context.Background()

	author := seedUser(t, "alice")
	reader := seedUser(t, "bob")
	post := seedPost(t, author, "commented post")

	comment, err := svc.Create(ctx, post.ID, reader.ID, "great write-up")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if comment.Author.ID != reader.ID {
		t.Fatalf("author = %d, want %d", comment.Author.ID, reader.ID)
	}
	if n := countNotifications(t, author.ID, model.NotificationPostComment); n != 1 {
		t.Fatalf("author notifications = %d, want 1", n)
	}
}

func TestCommentOnOwnPostNoNotification(t *testing.T) {
	setupDB(t)
	svc := NewCommentService()
	ctx := context.Background()

	author := seedUser(t, "alice")
	post := seedPost(t, author, "own post")

	if _, err := svc.Create(ctx, post.ID, author.ID, "note to self"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if n := countNotifications(t, author.ID, model.NotificationPostComment); n != 0 {
		t.Fatalf("notifications = %d, want 0", n)
	}
}

func TestCommentValidation(t *testing.T) {
	setupDB(t)
	svc := NewCommentService()
	ctx := context.Background()

	author := seedUser(t, "alice")
	post := seedPost(t, author, "a post")

	if _, err := svc.Create(ctx, post.ID, author.ID, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty content err = %v, want ErrValidation", err)
	}
	if _, err := svc.Create(ctx, post.ID, author.ID, strings.Repeat("x", 501)); !errors.Is(err, ErrValidation) {
		t.Fatalf("long content err = %v, want ErrValidation", err)
	}
	if _, err := svc.Create(ctx, 9999, author.ID, "orphan"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("missing post err = %v, want ErrPostNotFound", err)
	}
}

func TestCommentUpdateAndDeleteOwnership(t *testing.T) {
	setupDB(t)
	svc := NewCommentService()
	ctx := context.Background()

	author := seedUser(t, "alice")
	commenter := seedUser(t, "bob")
	other := seedUser(t, "carol")
	post := seedPost(t, author, "a post")

	comment, err := svc.Create(ctx, post.ID, commenter.ID, "first version")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, comment.ID, other.ID, "rewritten"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("update by other err = %v, want ErrForbidden", err)
	}
	updated, err := svc.Update(ctx, comment.ID, commenter.ID, "second version")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Content != "second version" {
		t.Fatalf("content = %q, want %q", updated.Content, "second version")
	}

	if err := svc.Delete(ctx, comment.ID, other.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete by other err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, comment.ID, commenter.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, comment.ID, commenter.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("second delete err = %v, want ErrCommentNotFound", err)
	}
}

func TestCommentListForPost(t *testing.T) {
	setupDB(t)
	svc := NewCommentService()
	ctx := context.Background()

	author := seedUser(t, "alice")
	reader := seedUser(t, "bob")
	post := seedPost(t, author, "a post")

	for _, content := range []string{"one", "two", "three"} {
		if _, err := svc.Create(ctx, post.ID, reader.ID, content); err != nil {
			t.Fatalf("create %s: %v", content, err)
		}
	}

	list, err := svc.ListForPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("comments = %d, want 3", len(list))
	}
	// Oldest first.
	if list[0].Content != "one" || list[2].Content != "three" {
		t.Fatalf("order = [%s .. %s], want oldest first", list[0].Content, list[2].Content)
	}

	if _, err := svc.ListForPost(ctx, 9999); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("missing post err = %v, want ErrPostNotFound", err)
	}
}
