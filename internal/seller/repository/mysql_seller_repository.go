package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/storefront/internal/database"
	apperrors "github.com/allisson/storefront/internal/errors"
	"github.com/allisson/storefront/internal/seller/domain"
)

const mysqlSellerColumns = `id, username, email, full_name, password, disabled, created_at, updated_at`

// MySQLSellerRepository handles seller persistence for MySQL. IDs are stored as BINARY(16).
type MySQLSellerRepository struct {
	db *sql.DB
}

// NewMySQLSellerRepository creates a new MySQLSellerRepository.
func NewMySQLSellerRepository(db *sql.DB) *MySQLSellerRepository {
	return &MySQLSellerRepository{
		db: db,
	}
}

// Create inserts a new seller.
func (r *MySQLSellerRepository) Create(ctx context.Context, seller *domain.Seller) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO sellers (id, username, email, full_name, password, disabled, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := seller.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		uuidBytes,
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
func (r *MySQLSellerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT ` + mysqlSellerColumns + ` FROM sellers WHERE id = ?`
	return r.getOne(ctx, "failed to get seller by id", query, uuidBytes)
}

// GetByUsername retrieves a seller by username.
func (r *MySQLSellerRepository) GetByUsername(ctx context.Context, username string) (*domain.Seller, error) {
	query := `SELECT ` + mysqlSellerColumns + ` FROM sellers WHERE username = ?`
	return r.getOne(ctx, "failed to get seller by username", query, username)
}

func (r *MySQLSellerRepository) getOne(
	ctx context.Context,
	errMsg string,
	query string,
	arg any,
) (*domain.Seller, error) {
	var (
		seller    domain.Seller
		uuidBytes []byte
	)
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&uuidBytes,
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

	if err := seller.ID.UnmarshalBinary(uuidBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &seller, nil
}
