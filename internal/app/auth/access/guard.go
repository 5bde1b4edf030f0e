// Package access holds the ownership rule every todo operation goes through.
package access

import (
	customErrors "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/model"
)

// Authorize allows access only to the resource owner. No roles, sharing or admin override.
func Authorize(identity model.Identity, ownerID int64) bool {
	return identity.UserID != 0 && identity.UserID == ownerID
}

// Check is Authorize as an error. Existence must be confirmed by the caller first:
// a missing resource is reported as not found before ownership is considered.
func Check(identity model.Identity, ownerID int64) error {
	if !Authorize(identity, ownerID) {
		return customErrors.ErrForbidden
	}
	return nil
}
