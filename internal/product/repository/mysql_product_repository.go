package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/storefront/internal/database"
	apperrors "github.com/allisson/storefront/internal/errors"
	"github.com/allisson/storefront/internal/product/domain"
)

const mysqlProductColumns = `id, name, description, price, seller_id, created_at, updated_at`

// MySQLProductRepository handles product persistence for MySQL. IDs are stored as BINARY(16).
type MySQLProductRepository struct {
	db *sql.DB
}

// NewMySQLProductRepository creates a new MySQLProductRepository.
func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{
		db: db,
	}
}

// Create inserts a new product.
func (r *MySQLProductRepository) Create(ctx context.Context, product *domain.Product) error {
	querier := database.GetTx(ctx, r.db)

	id, err := product.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	sellerID, err := product.SellerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal seller UUID")
	}

	query := `INSERT INTO products (id, name, description, price, seller_id, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query, id, product.Name, product.Description, product.Price, sellerID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create product")
	}
	return nil
}

// GetByID retrieves a product by ID.
func (r *MySQLProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	querier := database.GetTx(ctx, r.db)
	query := `SELECT ` + mysqlProductColumns + ` FROM products WHERE id = ?`

	product, err := scanMySQLProduct(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if apperrors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get product by id")
	}
	return product, nil
}

// List retrieves products ordered by creation time descending.
func (r *MySQLProductRepository) List(ctx context.Context, offset, limit int) ([]*domain.Product, error) {
	query := `SELECT ` + mysqlProductColumns + ` FROM products
			  ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	return r.list(ctx, query, limit, offset)
}

// ListBySeller retrieves the products of one seller ordered by creation time descending.
func (r *MySQLProductRepository) ListBySeller(
	ctx context.Context,
	sellerID uuid.UUID,
	offset, limit int,
) ([]*domain.Product, error) {
	sellerBytes, err := sellerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal seller UUID")
	}

	query := `SELECT ` + mysqlProductColumns + ` FROM products WHERE seller_id = ?
			  ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	return r.list(ctx, query, sellerBytes, limit, offset)
}

func (r *MySQLProductRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list products")
	}
	defer func() {
		_ = rows.Close()
	}()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanMySQLProduct(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan product")
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate products")
	}

	return products, nil
}

// Update overwrites the writable fields of a product. MySQL reports changed rows rather
// than matched rows, so an update that changes nothing affects zero rows; existence is
// left to the caller, which loads the product in the same transaction.
func (r *MySQLProductRepository) Update(ctx context.Context, product *domain.Product) error {
	idBytes, err := product.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	querier := database.GetTx(ctx, r.db)
	query := `UPDATE products SET name = ?, description = ?, price = ?, updated_at = NOW() WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, product.Name, product.Description, product.Price, idBytes); err != nil {
		return apperrors.Wrap(err, "failed to update product")
	}
	return nil
}

// Delete removes a product.
func (r *MySQLProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	querier := database.GetTx(ctx, r.db)
	result, err := querier.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete product")
	}
	return requireAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLProduct(row rowScanner) (*domain.Product, error) {
	var (
		product     domain.Product
		idBytes     []byte
		sellerBytes []byte
	)
	if err := row.Scan(
		&idBytes,
		&product.Name,
		&product.Description,
		&product.Price,
		&sellerBytes,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := product.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := product.SellerID.UnmarshalBinary(sellerBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal seller UUID")
	}
	return &product, nil
}
