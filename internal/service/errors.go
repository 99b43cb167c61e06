package service

import "errors"

// Error taxonomy surfaced to the HTTP boundary. Handlers map these to
// status codes; anything else is an internal error.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrReportNotFound       = errors.New("report not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrForbidden = errors.New("forbidden")

	ErrSelfFollow = errors.New("cannot follow yourself")
	ErrSelfReport = errors.New("cannot report yourself")

	ErrEmailTaken      = errors.New("email already registered")
	ErrDuplicateReport = errors.New("user already reported")
	ErrReportClosed    = errors.New("report already closed")

	ErrValidation = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBanned      = errors.New("account is banned")
)
