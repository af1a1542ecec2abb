package user

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-chi/jwtauth/v5"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/user"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/jwt"
)

type userServiceImpl struct {
	userRepo user.UserRepository
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

// CurrentUser loads the user named by the user_id claim of the verified token
// that jwtauth.Verifier stored in ctx.
func (s *userServiceImpl) CurrentUser(ctx context.Context) (user.User, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return user.User{}, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, err
		}
		return user.User{}, fmt.Errorf("failed to load current user: %w", err)
	}

	return u, nil
}

// UserIDFromContext extracts the numeric user id from the JWT claims in ctx.
func UserIDFromContext(ctx context.Context) (int64, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return 0, user.ErrInvalidToken
	}

	raw, ok := claims[jwt.ClaimUserID]
	if !ok {
		return 0, user.ErrUserClaimMissing
	}

	switch v := raw.(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return 0, user.ErrUserClaimMalformed
		}
		return id, nil
	case int:
		if v <= 0 {
			return 0, user.ErrUserClaimMalformed
		}
		return int64(v), nil
	case int64:
		if v <= 0 {
			return 0, user.ErrUserClaimMalformed
		}
		return v, nil
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
		if v <= 0 || v >= float64(math.MaxInt64) || v != math.Trunc(v) {
			return 0, user.ErrUserClaimMalformed
		}
		return int64(v), nil
	default:
		return 0, user.ErrUserClaimMalformed
	}
}
