package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heyZakaria/01Blog/internal/model"
	"github.com/heyZakaria/01Blog/internal/pkg"
	"github.com/heyZakaria/01Blog/internal/repository/mysql"
	"github.com/heyZakaria/01Blog/internal/repository/redis"
	"github.com/heyZakaria/01Blog/internal/storage"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo     *mysql.UserRepository
	sessions *redis.SessionRepository
	store    *storage.FileStore
}

func NewUserService(store *storage.FileStore) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{},
		sessions: &redis.SessionRepository{},
		store:    store,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateUserInput(name, email, password string) error {
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		return fmt.Errorf("%w: name must be 2-50 characters", ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	return nil
}

// Register creates an account with a bcrypt-hashed password. Duplicate email
// detection relies on the unique index, so concurrent registrations cannot
// both succeed.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*UserView, error) {
	email = normalizeEmail(email)
	if err := validateUserInput(name, email, password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     model.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	view := toUserView(user)
	return &view, nil
}

// Login verifies credentials, rejects banned accounts, and stores the access
// token as the user's single active session.
func (s *UserService) Login(ctx context.Context, email, password string) (*pkg.Pair, *UserView, error) {
	email = normalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if user.Banned {
		return nil, nil, ErrAccountBanned
	}

	pair, err := pkg.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}
	if err := s.sessions.AddToken(user.ID, pair.AccessToken); err != nil {
		return nil, nil, err
	}

	view := toUserView(user)
	return pair, &view, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.sessions.DeleteToken(userID)
}

// RefreshTokens exchanges a valid refresh token for a fresh pair and rotates
// the stored session token.
func (s *UserService) RefreshTokens(ctx context.Context, refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if user.Banned {
		return nil, ErrAccountBanned
	}

	if err := s.sessions.AddToken(user.ID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user, string(hashed)); err != nil {
		return err
	}
	// Force re-login with the new password.
	return s.sessions.DeleteToken(userID)
}

// ResetPassword sets a new password without the old one; callers must have
// verified ownership of the email first.
func (s *UserService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user, string(hashed)); err != nil {
		return err
	}
	return s.sessions.DeleteToken(user.ID)
}

func (s *UserService) GetByID(ctx context.Context, id uint64) (*UserView, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	view := toUserView(user)
	return &view, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*UserView, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	view := toUserView(user)
	return &view, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]UserView, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toUserViews(users), nil
}

// UpdateProfile changes the display name; email and role are immutable here.
func (s *UserService) UpdateProfile(ctx context.Context, id uint64, name string) (*UserView, error) {
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		return nil, fmt.Errorf("%w: name must be 2-50 characters", ErrValidation)
	}

	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user.Name = name
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	view := toUserView(user)
	return &view, nil
}

// ToggleBan flips the banned flag and, when banning, kills the active session.
func (s *UserService) ToggleBan(ctx context.Context, id uint64) (bool, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, err
	}

	banned := !user.Banned
	if err := s.repo.SetBanned(mysql.DB.WithContext(ctx), id, banned); err != nil {
		return false, err
	}
	if banned {
		if err := s.sessions.DeleteToken(id); err != nil {
			slog.Warn("could not drop session for banned user", "user_id", id, "error", err)
		}
	}
	return banned, nil
}

// Delete removes the user and everything referencing them, then cleans up
// media files best-effort after commit.
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	mediaFiles, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}

	if err := s.sessions.DeleteToken(id); err != nil {
		slog.Warn("could not drop session for deleted user", "user_id", id, "error", err)
	}
	for _, f := range mediaFiles {
		if err := s.store.Delete(f); err != nil {
			slog.Warn("could not remove media file of deleted user", "file", f, "error", err)
		}
	}
	return nil
}
