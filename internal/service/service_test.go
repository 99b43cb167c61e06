package service

import (
	"fmt"
	"testing"

	"github.com/heyZakaria/01Blog/internal/model"
	"github.com/heyZakaria/01Blog/internal/repository/mysql"
	redisrepo "github.com/heyZakaria/01Blog/internal/repository/redis"
	"github.com/heyZakaria/01Blog/internal/storage"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB points the shared repository handle at an in-memory database for
// the duration of one test. Single connection so every query sees the same
// memory store.
func setupDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Notification{},
		&model.Report{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := mysql.DB
	mysql.DB = db
	t.Cleanup(func() {
		mysql.DB = prev
		sqlDB.Close()
	})

	// Session calls are best-effort in the paths under test; point the
	// client at a closed port so they fail fast instead of panicking.
	redisrepo.Client = goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
}

func newFileStore(t *testing.T) *storage.FileStore {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	return store
}

var userSeq int

func seedUser(t *testing.T, name string) *model.User {
	t.Helper()
	userSeq++
	u := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s%d@example.com", name, userSeq),
		Password: "not-a-real-hash",
		Role:     model.RoleUser,
	}
	if err := mysql.DB.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func seedPost(t *testing.T, author *model.User, title string) *model.Post {
	t.Helper()
	p := &model.Post{
		Title:       title,
		Description: "some long enough description",
		AuthorID:    author.ID,
	}
	if err := mysql.DB.Create(p).Error; err != nil {
		t.Fatalf("seed post %s: %v", title, err)
	}
	return p
}

func seedFollow(t *testing.T, follower, following *model.User) {
	t.Helper()
	s := &model.Subscription{FollowerID: follower.ID, FollowingID: following.ID}
	if err := mysql.DB.Create(s).Error; err != nil {
		t.Fatalf("seed follow: %v", err)
	}
}

func countNotifications(t *testing.T, recipientID uint64, typ model.NotificationType) int64 {
	t.Helper()
	var n int64
	err := mysql.DB.Model(&model.Notification{}).
		Where("recipient_id = ? AND type = ?", recipientID, typ).
		Count(&n).Error
	if err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	return n
}
