// Package repository provides data persistence implementations for seller entities.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/storefront/internal/database"
	apperrors "github.com/allisson/storefront/internal/errors"
	"github.com/allisson/storefront/internal/seller/domain"
)

const postgresSellerColumns = `id, username, email, full_name, password, disabled, created_at, updated_at`

// PostgreSQLSellerRepository handles seller persistence for PostgreSQL.
type PostgreSQLSellerRepository struct {
	db *sql.DB
}

// NewPostgreSQLSellerRepository creates a new PostgreSQLSellerRepository.
func NewPostgreSQLSellerRepository(db *sql.DB) *PostgreSQLSellerRepository {
	return &PostgreSQLSellerRepository{
		db: db,
	}
}

// Create inserts a new seller.
func (r *PostgreSQLSellerRepository) Create(ctx context.Context, seller *domain.Seller) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO sellers (id, username, email, full_name, password, disabled, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		seller.ID,
		seller.Username,
		seller.Email,
		seller.FullName,
		seller.Password,
		seller.Disabled,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrSellerAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create seller")
	}
	return nil
}

// GetByID retrieves a seller by ID.
func (r *PostgreSQLSellerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	query := `SELECT ` + postgresSellerColumns + ` FROM sellers WHERE id = $1`
	return r.getOne(ctx, "failed to get seller by id", query, id)
}

// GetByUsername retrieves a seller by username.
func (r *PostgreSQLSellerRepository) GetByUsername(ctx context.Context, username string) (*domain.Seller, error) {
	query := `SELECT ` + postgresSellerColumns + ` FROM sellers WHERE username = $1`
	return r.getOne(ctx, "failed to get seller by username", query, username)
}

func (r *PostgreSQLSellerRepository) getOne(
	ctx context.Context,
	errMsg string,
	query string,
	arg any,
) (*domain.Seller, error) {
	var seller domain.Seller
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&seller.ID,
		&seller.Username,
		&seller.Email,
		&seller.FullName,
		&seller.Password,
		&seller.Disabled,
		&seller.CreatedAt,
		&seller.UpdatedAt,
	)
	if err != nil {
		if apperrors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSellerNotFound
		}
		return nil, apperrors.Wrap(err, errMsg)
	}

	return &seller, nil
}
