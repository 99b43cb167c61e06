package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultEmailCodeTTL = 5 * time.Minute
	EmailCodePrefix     = "email:code"

	// Two-phase keys: a code is written as pending, then promoted to
	// confirmed only after the mail actually went out.
	pendingSuffix   = "pending"
	confirmedSuffix = "confirmed"
)

var (
	ErrEmailCodeNotFound   = errors.New("email code not found")
	ErrEmailCodeDelFailed  = errors.New("email code delete failed")
	ErrCodePendingFailed   = errors.New("code pending failed")
	ErrCodeConfirmedFailed = errors.New("code confirmed failed")
)

type EmailRepository struct{}

func codeKey(scope, phase, email string) string {
	return fmt.Sprintf("%s:%s:%s:%s", EmailCodePrefix, scope, phase, email)
}

func (e *EmailRepository) PutPending(scope, email, code string) error {
	key := codeKey(scope, pendingSuffix, email)
	if err := Client.Set(context.Background(), key, code, DefaultEmailCodeTTL).Err(); err != nil {
		return ErrCodePendingFailed
	}
	return nil
}

// Confirm atomically moves the pending code to confirmed with a fresh TTL.
func (e *EmailRepository) Confirm(scope, email string) error {
	srcKey := codeKey(scope, pendingSuffix, email)
	dstKey := codeKey(scope, confirmedSuffix, email)

	script := `
local val = redis.call("GET", KEYS[1])
if not val then
  return 0
end
redis.call("SET", KEYS[2], val, "PX", ARGV[1])
redis.call("DEL", KEYS[1])
return 1
`
	px := int64(DefaultEmailCodeTTL / time.Millisecond)
	res := Client.Eval(context.Background(), script, []string{srcKey, dstKey}, px)
	if err := res.Err(); err != nil {
		return ErrCodeConfirmedFailed
	}
	if ok, _ := res.Int(); ok != 1 {
		return ErrCodeConfirmedFailed
	}
	return nil
}

// DeletePending drops the pending key (idempotent).
func (e *EmailRepository) DeletePending(scope, email string) error {
	key := codeKey(scope, pendingSuffix, email)
	if err := Client.Del(context.Background(), key).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}

func (e *EmailRepository) GetConfirmed(scope, email string) (string, error) {
	key := codeKey(scope, confirmedSuffix, email)
	val, err := Client.Get(context.Background(), key).Result()
	if err != nil {
		return "", ErrEmailCodeNotFound
	}
	return val, nil
}

func (e *EmailRepository) DeleteConfirmed(scope, email string) error {
	key := codeKey(scope, confirmedSuffix, email)
	if err := Client.Del(context.Background(), key).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}
