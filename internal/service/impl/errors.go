package impl

import (
	"errors"

	"emotrack/internal/domain"
)

var (
	ErrEmptyPassword = errors.New("empty password")
	ErrPasswordLen   = errors.New("password too short")
)

// invalidPassword turns a Hash rejection into the validation error surfaced
// on account and profile creation.
func invalidPassword(err error) error {
	if errors.Is(err, ErrPasswordLen) {
		return domain.Invalid("password must be at least 8 characters")
	}
	return domain.Invalid("password is required")
}
