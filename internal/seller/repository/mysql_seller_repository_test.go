package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/storefront/internal/seller/domain"
)

func TestNewMySQLSellerRepository(t *testing.T) {
	db, _ := newMockDB(t)

	repo := NewMySQLSellerRepository(db)
	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestMySQLSellerRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_StoresBinaryUUID", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLSellerRepository(db)
		seller := newSeller()
		uuidBytes, err := seller.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectExec("INSERT INTO sellers").
			WithArgs(uuidBytes, "johndoe", "john@example.com", "John Doe", "$argon2id$hash", false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx, seller))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateUsername", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLSellerRepository(db)

		mock.ExpectExec("INSERT INTO sellers").
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'johndoe'"})

		err := repo.Create(ctx, newSeller())
		assert.ErrorIs(t, err, domain.ErrSellerAlreadyExists)
	})
}

func TestMySQLSellerRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	db, mock := newMockDB(t)
	repo := NewMySQLSellerRepository(db)
	expected := newSeller()
	uuidBytes, err := expected.ID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM sellers WHERE id = \\?").
		WithArgs(uuidBytes).
		WillReturnRows(sqlmock.NewRows(sellerColumns).AddRow(
			uuidBytes, "johndoe", "john@example.com", "John Doe", "$argon2id$hash", false, now, now,
		))

	seller, err := repo.GetByID(ctx, expected.ID)
	require.NoError(t, err)
	assert.Equal(t, expected.ID, seller.ID)
	assert.Equal(t, "johndoe", seller.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSellerRepository_GetByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLSellerRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM sellers WHERE username = \\?").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(sellerColumns))

	seller, err := repo.GetByUsername(context.Background(), "missing")
	assert.Nil(t, seller)
	assert.ErrorIs(t, err, domain.ErrSellerNotFound)
}
