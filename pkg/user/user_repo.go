package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username is already taken")
)

const uniqueViolationState = "23505"

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, username, display_name) VALUES ($1, $2, $3) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query, user.Uid, user.Username, user.DisplayName).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationState {
			return 0, ErrUsernameTaken
		}
		err := fmt.Errorf("could not create user: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, display_name FROM users WHERE id = $1`
	return r.queryUser(ctx, query, id)
}

func (r *RepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, display_name FROM users WHERE uid = $1`
	return r.queryUser(ctx, query, uid)
}

func (r *RepoImpl) queryUser(ctx context.Context, query string, arg any) (User, error) {
	var user User
	err := r.db.QueryRow(ctx, query, arg).Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Infof("user %v not found", arg)
		return User{}, ErrUserNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get user: %w", err)
		log.Error(err)
		return User{}, err
	}
	return user, nil
}
