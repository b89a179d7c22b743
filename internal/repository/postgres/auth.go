package postgres

import (
	"context"

	domainAuth "github.com/jurisflow/jurisflow/internal/domain/auth"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
)

type authRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewAuthRepository(db postgres.IClient, logger *logger.Logger) domainAuth.Repository {
	return &authRepository{db: db, logger: logger}
}

func (r *authRepository) CreateAuth(ctx context.Context, a *domainAuth.Auth) error {
	query := `
	INSERT INTO auths (user_id, provider, token, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		a.UserID,
		a.Provider,
		a.Token,
		a.Status,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("Credentials already exist for this user").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to store credentials").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *authRepository) GetAuthByUserID(ctx context.Context, userID string) (*domainAuth.Auth, error) {
	query := `SELECT * FROM auths WHERE user_id = $1 AND status != 'deleted'`

	var a domainAuth.Auth
	err := r.db.Querier(ctx).GetContext(ctx, &a, query, userID)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("credentials not found").
				WithHint("Credentials not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch credentials").
			Mark(ierr.ErrDatabase)
	}
	return &a, nil
}

func (r *authRepository) UpdateAuth(ctx context.Context, a *domainAuth.Auth) error {
	query := `
	UPDATE auths
	SET token = $2, status = $3, updated_at = now()
	WHERE user_id = $1
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query, a.UserID, a.Token, a.Status)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update credentials").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("credentials not found").
			WithHint("Credentials not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *authRepository) DeleteAuth(ctx context.Context, userID string) error {
	query := `UPDATE auths SET status = 'deleted', updated_at = now() WHERE user_id = $1`

	_, err := r.db.Querier(ctx).ExecContext(ctx, query, userID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete credentials").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
