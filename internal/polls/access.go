package polls

import (
	"votex/internal/models"
	"votex/internal/utils"
)

// Access is the outcome of a visibility check.
type Access struct {
	Allowed          bool
	RequiresPassword bool
}

// CanView decides whether callerID may see a poll's ballot (options and
// tallies). Poll metadata is visible to any authenticated caller; only the
// ballot is gated.
func CanView(poll *models.Poll, callerID uint) Access {
	if poll.IsPublic() || poll.IsOwner(callerID) {
		return Access{Allowed: true}
	}
	return Access{RequiresPassword: true}
}

// Authorize checks whether callerID may act on the poll with the supplied
// password. Owners bypass the password on their own polls. A private poll
// without a digest is locked for everyone but the owner: no password can
// open it, so callers get ErrForbidden rather than a password prompt.
func Authorize(poll *models.Poll, callerID uint, password string) error {
	if poll.IsPublic() || poll.IsOwner(callerID) {
		return nil
	}
	if poll.PasswordDigest == "" {
		return ErrForbidden
	}
	if password == "" {
		return ErrPasswordRequired
	}
	if !utils.CheckPasswordHash(password, poll.PasswordDigest) {
		return ErrInvalidPassword
	}
	return nil
}
