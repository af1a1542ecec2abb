package user

import "context"

// UserService resolves the authenticated user of the current request.
type UserService interface {
	CurrentUser(ctx context.Context) (User, error)
}
