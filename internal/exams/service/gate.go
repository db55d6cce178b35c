package service

import (
	"errors"

	"github.com/opencourse/transcripts/internal/exams/domain"
)

// ErrForbidden is returned whenever a caller's role does not grant the
// attempted action. It maps to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// Authorize is the single permission gate for the whole service layer.
// Every protected operation calls it before touching any resource, so an
// unauthorized caller always learns "forbidden" and never whether the
// resource exists.
func Authorize(actor domain.Actor, action domain.Action) error {
	if !actor.Authorized(action) {
		return ErrForbidden
	}

	return nil
}
