package user

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type travelerKey struct{}

var ErrNoUser = errors.New("user not found")

// CurrentId returns the id of the traveler stored in ctx, or ErrNoUser.
func CurrentId(ctx context.Context) (int, error) {
	u, err := CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return u.Id, nil
}

// CurrentUser returns the traveler the request middleware resolved from X-User-Id.
func CurrentUser(ctx context.Context) (User, error) {
	u, ok := ctx.Value(travelerKey{}).(User)
	if !ok {
		log.Trace("user not found in context")
		return User{}, ErrNoUser
	}
	return u, nil
}

// WithUser stores the traveler in ctx. Tests use it in place of the middleware.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, travelerKey{}, u)
}
