package usecase

import "github.com/agniveshadhikari/slinky/internal/auth/domain/model"

// Decision is the outcome of an access check.
type Decision int

const (
	// Allow grants the request.
	Allow Decision = iota
	// DenyUnauthenticated rejects because no user is present; callers should
	// send the visitor to login.
	DenyUnauthenticated
	// DenyForbidden rejects because the user lacks the capability.
	DenyForbidden
)

// String returns a readable form of the decision for logs.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny_unauthenticated"
	case DenyForbidden:
		return "deny_forbidden"
	default:
		return "unknown"
	}
}

// Require is a pure decision function over (user, capability). A nil user is
// anonymous.
func Require(user *model.User, capability string) Decision {
	if user == nil {
		return DenyUnauthenticated
	}
	if !user.HasCapability(capability) {
		return DenyForbidden
	}
	return Allow
}
