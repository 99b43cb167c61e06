package service

import (
	"errors"
	"fmt"

	"github.com/heyZakaria/01Blog/internal/pkg"
	"github.com/heyZakaria/01Blog/internal/repository/redis"
)

var ErrEmailCodeMismatch = errors.New("email code mismatch")

const (
	EmailScopeRegister = "register"
	EmailScopeReset    = "reset"
)

// ValidEmailScope limits which scopes clients may request a code for.
func ValidEmailScope(scope string) bool {
	return scope == EmailScopeRegister || scope == EmailScopeReset
}

// EmailService issues short-lived verification codes over SMTP. A code is
// written as pending first and only promoted to confirmed after the mail
// actually went out, so a delivery failure never leaves a usable code behind.
type EmailService struct {
	repo *redis.EmailRepository
	smtp pkg.SMTPConfig
}

func NewEmailService(smtp pkg.SMTPConfig) *EmailService {
	return &EmailService{
		repo: &redis.EmailRepository{},
		smtp: smtp,
	}
}

func (s *EmailService) SendCode(scope, email string) error {
	email = normalizeEmail(email)

	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err := s.repo.PutPending(scope, email, code); err != nil {
		return err
	}

	subject := fmt.Sprintf("01Blog %s verification", scope)
	body := pkg.EmailCodeHTML(scope, code, redis.DefaultEmailCodeTTL)
	if err := pkg.SendEmail(s.smtp, email, subject, body); err != nil {
		// Drop the pending code so a failed send cannot be verified.
		_ = s.repo.DeletePending(scope, email)
		return err
	}

	return s.repo.Confirm(scope, email)
}

// VerifyCode checks the submitted code and consumes it on success.
func (s *EmailService) VerifyCode(scope, email, code string) error {
	email = normalizeEmail(email)

	stored, err := s.repo.GetConfirmed(scope, email)
	if err != nil {
		return ErrEmailCodeMismatch
	}
	if stored != code {
		return ErrEmailCodeMismatch
	}
	return s.repo.DeleteConfirmed(scope, email)
}
