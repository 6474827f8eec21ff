package test_utils

import (
	"context"
	"testing"

	"github.com/busanbiff/tripbudget/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

var TestUser = user.User{
	Id:          1,
	Uid:         "test-user-uid",
	Username:    "test_user",
	DisplayName: "Test User",
}

// ContextWithUser returns a context carrying the given user id, the way the auth middleware would.
func ContextWithUser(userId int) context.Context {
	u := TestUser
	u.Id = userId
	return user.WithUser(context.Background(), u)
}

// InsertUser stores a user row so that per-user tables can reference it.
func InsertUser(t *testing.T, db *pgxpool.Pool, username string) int {
	t.Helper()
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO users (uid, username, display_name) VALUES ($1, $2, $3) RETURNING id`,
		username+"-uid", username, username).Scan(&id)
	if err != nil {
		t.Fatalf("failed to insert user %s: %v", username, err)
	}
	return id
}
