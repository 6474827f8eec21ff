package app

import (
	"errors"
	"net/http"

	"github.com/busanbiff/tripbudget/internal/rest"
	"github.com/busanbiff/tripbudget/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const userIdHeader = "X-User-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {

	// Propagate X-User-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			uid := req.Header.Get(userIdHeader)
			ctx := req.Context()

			if uid == "" {
				if !isPublic(req) {
					rest.WriteError(w, http.StatusUnauthorized, "Missing "+userIdHeader+" header", "")
					return
				}
				next.ServeHTTP(w, req)
				return
			}

			u, err := deps.UserService.GetUserByUid(ctx, uid)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					log.Debugf("user not found: %s", uid)
					http.Error(w, "user not found", http.StatusForbidden)
					return
				}
				log.Errorf("failed to get user: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			log.Tracef("user found: %s", u.Uid)
			next.ServeHTTP(w, req.WithContext(user.WithUser(ctx, u)))
		})
	})
}

func isPublic(req *http.Request) bool {
	route := mux.CurrentRoute(req)
	return route != nil && publicRoutes[route.GetName()]
}
