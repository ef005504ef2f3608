package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adedunmol/pulso/api/custom_errors"
	"github.com/Adedunmol/pulso/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) (database.User, error)
	FindUserByEmail(ctx context.Context, email string) (database.User, error)
	SetRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) error
	FindUserWithRefreshToken(ctx context.Context, refreshToken string) (database.User, error)
	UpdateRefreshToken(ctx context.Context, oldRefreshToken, refreshToken string) error
	DeleteRefreshToken(ctx context.Context, refreshToken string) error
}

type Repository struct {
	queries *database.Queries
}

func NewUserStore(queries *database.Queries) *Repository {
	return &Repository{queries: queries}
}

const UniqueViolation = "23505"

func (r *Repository) CreateUser(ctx context.Context, email, passwordHash string) (database.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := r.queries.CreateUser(ctx, database.CreateUserParams{
		ID:       uuid.New(),
		Email:    email,
		Password: passwordHash,
	})
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == UniqueViolation {
			return database.User{}, custom_errors.ErrConflict
		}
		return database.User{}, fmt.Errorf("error creating user: %w", err)
	}

	return data, nil
}

func (r *Repository) FindUserByEmail(ctx context.Context, email string) (database.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := r.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.User{}, custom_errors.ErrNotFound
		}
		return database.User{}, fmt.Errorf("error getting user by email: %w", err)
	}

	return data, nil
}

func (r *Repository) SetRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.queries.SetRefreshToken(ctx, database.SetRefreshTokenParams{
		ID:           userID,
		RefreshToken: pgtype.Text{String: refreshToken, Valid: refreshToken != ""},
	})
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}

	return nil
}

func (r *Repository) UpdateRefreshToken(ctx context.Context, oldRefreshToken, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.queries.RotateRefreshToken(ctx, database.RotateRefreshTokenParams{
		OldToken: pgtype.Text{String: oldRefreshToken, Valid: true},
		NewToken: pgtype.Text{String: refreshToken, Valid: true},
	})
	if err != nil {
		return fmt.Errorf("error updating refresh token: %w", err)
	}
	if rows == 0 {
		return custom_errors.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteRefreshToken(ctx context.Context, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.queries.DeleteRefreshToken(ctx, pgtype.Text{String: refreshToken, Valid: len(refreshToken) > 0})
	if err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}

	return nil
}

func (r *Repository) FindUserWithRefreshToken(ctx context.Context, refreshToken string) (database.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user, err := r.queries.GetUserWithRefreshToken(ctx, pgtype.Text{String: refreshToken, Valid: len(refreshToken) > 0})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.User{}, custom_errors.ErrNotFound
		}
		return database.User{}, fmt.Errorf("error getting user with refresh token: %w", err)
	}
	return user, nil
}
