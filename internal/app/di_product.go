package app

import (
	"fmt"
	"sync"

	"github.com/allisson/storefront/internal/database"
	productHTTP "github.com/allisson/storefront/internal/product/http"
	productRepository "github.com/allisson/storefront/internal/product/repository"
	productUseCase "github.com/allisson/storefront/internal/product/usecase"
)

type productComponents struct {
	productRepo    productUseCase.ProductRepository
	productUseCase productUseCase.ProductUseCase
	productHandler *productHTTP.ProductHandler

	productRepoInit    sync.Once
	productUseCaseInit sync.Once
	productHandlerInit sync.Once
}

// ProductRepository returns the product repository for the configured database driver.
func (c *Container) ProductRepository() (productUseCase.ProductRepository, error) {
	c.productRepoInit.Do(func() {
		var err error
		c.productRepo, err = c.initProductRepository()
		c.setError("productRepo", err)
	})
	return c.productRepo, c.storedError("productRepo")
}

// ProductUseCase returns the catalog use case, instrumented with business metrics.
func (c *Container) ProductUseCase() (productUseCase.ProductUseCase, error) {
	c.productUseCaseInit.Do(func() {
		var err error
		c.productUseCase, err = c.initProductUseCase()
		c.setError("productUseCase", err)
	})
	return c.productUseCase, c.storedError("productUseCase")
}

// ProductHandler returns the HTTP handler for product endpoints.
func (c *Container) ProductHandler() (*productHTTP.ProductHandler, error) {
	c.productHandlerInit.Do(func() {
		var err error
		c.productHandler, err = c.initProductHandler()
		c.setError("productHandler", err)
	})
	return c.productHandler, c.storedError("productHandler")
}

func (c *Container) initProductRepository() (productUseCase.ProductRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for product repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return productRepository.NewMySQLProductRepository(db), nil
	case database.DriverPostgres:
		return productRepository.NewPostgreSQLProductRepository(db), nil
	default:
		return nil, database.CheckDriver(c.config.DBDriver)
	}
}

func (c *Container) initProductUseCase() (productUseCase.ProductUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for product use case: %w", err)
	}

	productRepo, err := c.ProductRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get product repository for product use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for product use case: %w", err)
	}

	useCase := productUseCase.NewProductUseCase(txManager, productRepo)
	return productUseCase.NewProductUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initProductHandler() (*productHTTP.ProductHandler, error) {
	useCase, err := c.ProductUseCase()
	if err != nil {
		return nil, err
	}
	return productHTTP.NewProductHandler(useCase, c.Logger()), nil
}
