package sync

import (
	"context"
	"fmt"

	"github.com/xelth-com/siigozoho/internal/apperrors"
	"github.com/xelth-com/siigozoho/internal/services/zoho"
)

// UserSource resolves the CRM user bound to a token
type UserSource interface {
	CurrentUser(ctx context.Context, token string) (*zoho.User, error)
}

// Authorizer checks the CRM user against the configured allow-list
type Authorizer struct {
	users   UserSource
	allowed map[string]struct{}
}

// NewAuthorizer creates an authorizer. Emails are compared exactly, case included.
func NewAuthorizer(users UserSource, allowList []string) *Authorizer {
	allowed := make(map[string]struct{}, len(allowList))
	for _, email := range allowList {
		allowed[email] = struct{}{}
	}
	return &Authorizer{users: users, allowed: allowed}
}

// Check returns nil when the token's user may run the sync. Any denial is an
// AuthError wrapping apperrors.ErrUserDenied with the reason.
func (a *Authorizer) Check(ctx context.Context, token string) error {
	user, err := a.users.CurrentUser(ctx, token)
	if err != nil {
		return deny("could not fetch the CRM user: %v", err)
	}
	if user == nil {
		return deny("the CRM returned no user for this token")
	}
	if user.Email == "" {
		return deny("the CRM user has no email")
	}
	if _, ok := a.allowed[user.Email]; !ok {
		return deny("user %s is not allowed to run the sync", user.Email)
	}
	return nil
}

func deny(format string, args ...any) error {
	return &apperrors.AuthError{
		Op:  "authorize",
		Err: fmt.Errorf("%w: %s", apperrors.ErrUserDenied, fmt.Sprintf(format, args...)),
	}
}
