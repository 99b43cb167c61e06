package service

import (
	"context"
	"errors"
	"testing"

	"github.com/heyZakaria/01Blog/internal/model"
)

// Runs a realistic interaction sequence and checks what each inbox sees.
func TestNotificationFlow(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	notifs := NewNotificationService()
	subs := NewSubscriptionService()
	likes := NewLikeService()
	comments := NewCommentService()

	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")

	post := seedPost(t, alice, "launch day")

	if _, err := subs.ToggleFollow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if _, err := likes.Toggle(ctx, post.ID, bob.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, err := comments.Create(ctx, post.ID, bob.ID, "congrats!"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	// Alice: follow + like + comment.
	count, err := notifs.UnreadCount(ctx, alice.ID)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 3 {
		t.Fatalf("alice unread = %d, want 3", count)
	}
	// Bob triggered everything, receives nothing.
	count, _ = notifs.UnreadCount(ctx, bob.ID)
	if count != 0 {
		t.Fatalf("bob unread = %d, want 0", count)
	}

	list, err := notifs.ListFor(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("alice notifications = %d, want 3", len(list))
	}
	// Newest first: the comment came last.
	if list[0].Type != model.NotificationPostComment {
		t.Fatalf("newest type = %s, want POST_COMMENT", list[0].Type)
	}
	for _, n := range list {
		if n.RelatedUser == nil || n.RelatedUser.ID != bob.ID {
			t.Fatalf("related user = %+v, want bob", n.RelatedUser)
		}
	}
}

func TestNotificationMarkReadScoping(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	notifs := NewNotificationService()
	subs := NewSubscriptionService()

	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	if _, err := subs.ToggleFollow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	list, err := notifs.ListFor(ctx, alice.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %d, %v; want 1", len(list), err)
	}
	id := list[0].ID

	// Only the recipient may mark or delete.
	if err := notifs.MarkRead(ctx, id, bob.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("mark by other err = %v, want ErrForbidden", err)
	}
	if err := notifs.Delete(ctx, id, bob.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete by other err = %v, want ErrForbidden", err)
	}

	if err := notifs.MarkRead(ctx, id, alice.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	count, _ := notifs.UnreadCount(ctx, alice.ID)
	if count != 0 {
		t.Fatalf("unread = %d after mark, want 0", count)
	}

	if err := notifs.Delete(ctx, id, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := notifs.MarkRead(ctx, id, alice.ID); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("err = %v, want ErrNotificationNotFound", err)
	}
}

func TestNotificationMarkAllAndDeleteAll(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	notifs := NewNotificationService()
	likes := NewLikeService()

	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	carol := seedUser(t, "carol")
	post := seedPost(t, alice, "busy post")

	for _, u := range []*model.User{bob, carol} {
		if _, err := likes.Toggle(ctx, post.ID, u.ID); err != nil {
			t.Fatalf("like: %v", err)
		}
	}

	if err := notifs.MarkAllRead(ctx, alice.ID); err != nil {
		t.Fatalf("mark all: %v", err)
	}
	count, _ := notifs.UnreadCount(ctx, alice.ID)
	if count != 0 {
		t.Fatalf("unread = %d, want 0", count)
	}
	unread, _ := notifs.ListUnread(ctx, alice.ID)
	if len(unread) != 0 {
		t.Fatalf("unread list = %d, want 0", len(unread))
	}

	if err := notifs.DeleteAllFor(ctx, alice.ID); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	list, _ := notifs.ListFor(ctx, alice.ID)
	if len(list) != 0 {
		t.Fatalf("list = %d after delete all, want 0", len(list))
	}
}
