// Package access is the single ownership rule: reads are public, and only the
// author of a post or comment may change it.
package access

import (
	"strings"

	"yatube/internal/core/apperr"

	"github.com/gofrs/uuid"
)

// Owned is anything with an owning user.
type Owned interface {
	OwnerID() uuid.UUID
}

// CanMutate reports whether actor may update or delete res.
func CanMutate(actor uuid.UUID, res Owned) bool {
	if actor == uuid.Nil || res == nil {
		return false
	}
	return res.OwnerID() == actor
}

// Authorize runs before every mutating operation.
func Authorize(actor uuid.UUID, res Owned) error {
	if actor == uuid.Nil {
		return apperr.ErrUnauthorized
	}
	if !CanMutate(actor, res) {
		return apperr.ErrForbidden
	}
	return nil
}

// ActorID parses the authenticated user id carried in a request. An empty or
// malformed id is an anonymous caller.
func ActorID(id string) (uuid.UUID, error) {
	if strings.TrimSpace(id) == "" {
		return uuid.Nil, apperr.ErrUnauthorized
	}
	uid, err := uuid.FromString(id)
	if err != nil || uid == uuid.Nil {
		return uuid.Nil, apperr.ErrUnauthorized
	}
	return uid, nil
}
