package service

import (
	"context"
	"errors"
	"testing"

	"github.com/heyZakaria/01Blog/internal/model"
	"github.com/heyZakaria/01Blog/internal/repository/mysql"

	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	setupDB(t)
	svc := NewUserService(newFileStore(t))
	ctx := context.Background()

	user, err := svc.Register(ctx, "Dana", "  Dana@Example.COM ", "s3cretpass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "dana@example.com" {
		t.Fatalf("email = %q, want normalized lowercase", user.Email)
	}
	if user.Role != model.RoleUser {
		t.Fatalf("role = %q, want USER", user.Role)
	}

	var stored model.User
	if err := mysql.DB.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Password == "s3cretpass" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cretpass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	// Same email, different case: taken.
	if _, err := svc.Register(ctx, "Other", "DANA@example.com", "anotherpass"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	setupDB(t)
	svc := NewUserService(newFileStore(t))
	ctx := context.Background()

	cases := []struct {
		name                 string
		uname, email, passwd string
	}{
		{"short name", "D", "d@example.com", "s3cretpass"},
		{"bad email", "Dana", "not-an-email", "s3cretpass"},
		{"short password", "Dana", "d@example.com", "short"},
	}
	for _, tc := range cases {
		if _, err := svc.Register(ctx, tc.uname, tc.email, tc.passwd); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", tc.name, err)
		}
	}
}

func TestGetByEmail(t *testing.T) {
	setupDB(t)
	svc := NewUserService(newFileStore(t))
	ctx := context.Background()

	created, err := svc.Register(ctx, "Dana", "dana@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Lookups normalize the same way registration does.
	for _, email := range []string{"dana@example.com", "DANA@Example.COM", "  dana@example.com "} {
		found, err := svc.GetByEmail(ctx, email)
		if err != nil {
			t.Fatalf("GetByEmail(%q): %v", email, err)
		}
		if found.ID != created.ID {
			t.Fatalf("GetByEmail(%q) = user %d, want %d", email, found.ID, created.ID)
		}
	}

	if _, err := svc.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	setupDB(t)
	svc := NewUserService(newFileStore(t))
	ctx := context.Background()

	u := seedUser(t, "alice")
	view, err := svc.UpdateProfile(ctx, u.ID, "Alice Cooper")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Name != "Alice Cooper" {
		t.Fatalf("name = %q", view.Name)
	}

	if _, err := svc.UpdateProfile(ctx, u.ID, "A"); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if _, err := svc.UpdateProfile(ctx, 9999, "Nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestToggleBan(t *testing.T) {
	setupDB(t)
	svc := NewUserService(newFileStore(t))
	ctx := context.Background()

	u := seedUser(t, "alice")

	banned, err := svc.ToggleBan(ctx, u.ID)
	if err != nil {
		t.Fatalf("ban: %v", err)
	}
	if !banned {
		t.Fatal("expected banned = true")
	}

	var stored model.User
	mysql.DB.First(&stored, u.ID)
	if !stored.Banned {
		t.Fatal("ban not persisted")
	}

	banned, err = svc.ToggleBan(ctx, u.ID)
	if err != nil || banned {
		t.Fatalf("unban = %v, %v; want false, nil", banned, err)
	}
}

func TestUserDeleteCascades(t *testing.T) {
	setupDB(t)
	svc := NewUserService(newFileStore(t))
	likes := NewLikeService()
	comments := NewCommentService()
	subs := NewSubscriptionService()
	reports := NewReportService()
	ctx := context.Background()

	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")

	post := seedPost(t, alice, "alice post")
	bobPost := seedPost(t, bob, "bob post")

	if _, err := subs.ToggleFollow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if _, err := likes.Toggle(ctx, post.ID, bob.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, err := comments.Create(ctx, bobPost.ID, alice.ID, "a comment by alice"); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if _, err := reports.Create(ctx, bob.ID, alice.ID, "some serious accusation"); err != nil {
		t.Fatalf("report: %v", err)
	}

	if err := svc.Delete(ctx, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var n int64
	mysql.DB.Model(&model.Post{}).Where("author_id = ?", alice.ID).Count(&n)
	if n != 0 {
		t.Fatalf("posts left = %d", n)
	}
	mysql.DB.Model(&model.Comment{}).Where("author_id = ?", alice.ID).Count(&n)
	if n != 0 {
		t.Fatalf("comments left = %d", n)
	}
	mysql.DB.Model(&model.Subscription{}).
		Where("follower_id = ? OR following_id = ?", alice.ID, alice.ID).Count(&n)
	if n != 0 {
		t.Fatalf("subscriptions left = %d", n)
	}
	mysql.DB.Model(&model.Notification{}).
		Where("recipient_id = ? OR related_user_id = ?", alice.ID, alice.ID).Count(&n)
	if n != 0 {
		t.Fatalf("notifications left = %d", n)
	}
	mysql.DB.Model(&model.Report{}).
		Where("reporter_id = ? OR reported_user_id = ?", alice.ID, alice.ID).Count(&n)
	if n != 0 {
		t.Fatalf("reports left = %d", n)
	}

	if _, err := svc.GetByID(ctx, alice.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
	// Bob and his post are untouched.
	if _, err := svc.GetByID(ctx, bob.ID); err != nil {
		t.Fatalf("bob gone: %v", err)
	}
	mysql.DB.Model(&model.Post{}).Where("id = ?", bobPost.ID).Count(&n)
	if n != 1 {
		t.Fatal("bob's post disappeared")
	}
}

func TestChangePasswordWrongOld(t *testing.T) {
	setupDB(t)
	svc := NewUserService(newFileStore(t))
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("rightpass1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := seedUser(t, "alice")
	mysql.DB.Model(u).Update("password", string(hash))

	if err := svc.ChangePassword(ctx, u.ID, "wrongpass1", "newpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
