package app

import (
	"fmt"
	"sync"

	"github.com/allisson/storefront/internal/database"
	sellerHTTP "github.com/allisson/storefront/internal/seller/http"
	sellerRepository "github.com/allisson/storefront/internal/seller/repository"
	sellerUseCase "github.com/allisson/storefront/internal/seller/usecase"
)

type sellerComponents struct {
	sellerRepo    sellerUseCase.SellerRepository
	sellerUseCase sellerUseCase.SellerUseCase
	sellerHandler *sellerHTTP.SellerHandler

	sellerRepoInit    sync.Once
	sellerUseCaseInit sync.Once
	sellerHandlerInit sync.Once
}

// SellerRepository returns the seller repository for the configured database driver.
func (c *Container) SellerRepository() (sellerUseCase.SellerRepository, error) {
	c.sellerRepoInit.Do(func() {
		var err error
		c.sellerRepo, err = c.initSellerRepository()
		c.setError("sellerRepo", err)
	})
	return c.sellerRepo, c.storedError("sellerRepo")
}

// SellerUseCase returns the seller registration use case.
func (c *Container) SellerUseCase() (sellerUseCase.SellerUseCase, error) {
	c.sellerUseCaseInit.Do(func() {
		var err error
		c.sellerUseCase, err = c.initSellerUseCase()
		c.setError("sellerUseCase", err)
	})
	return c.sellerUseCase, c.storedError("sellerUseCase")
}

// SellerHandler returns the HTTP handler for seller endpoints.
func (c *Container) SellerHandler() (*sellerHTTP.SellerHandler, error) {
	c.sellerHandlerInit.Do(func() {
		var err error
		c.sellerHandler, err = c.initSellerHandler()
		c.setError("sellerHandler", err)
	})
	return c.sellerHandler, c.storedError("sellerHandler")
}

func (c *Container) initSellerRepository() (sellerUseCase.SellerRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for seller repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return sellerRepository.NewMySQLSellerRepository(db), nil
	case database.DriverPostgres:
		return sellerRepository.NewPostgreSQLSellerRepository(db), nil
	default:
		return nil, database.CheckDriver(c.config.DBDriver)
	}
}

func (c *Container) initSellerUseCase() (sellerUseCase.SellerUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for seller use case: %w", err)
	}

	sellerRepo, err := c.SellerRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get seller repository for seller use case: %w", err)
	}

	return sellerUseCase.NewSellerUseCase(txManager, sellerRepo, c.PasswordHasher()), nil
}

func (c *Container) initSellerHandler() (*sellerHTTP.SellerHandler, error) {
	useCase, err := c.SellerUseCase()
	if err != nil {
		return nil, err
	}
	return sellerHTTP.NewSellerHandler(useCase, c.Logger()), nil
}
