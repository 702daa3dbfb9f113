package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/storefront/internal/metrics"
	"github.com/allisson/storefront/internal/product/domain"
)

// productUseCaseWithMetrics decorates ProductUseCase with metrics instrumentation.
// Only writes are recorded; reads are covered by the HTTP metrics.
type productUseCaseWithMetrics struct {
	next    ProductUseCase
	metrics metrics.BusinessMetrics
}

// NewProductUseCaseWithMetrics wraps a ProductUseCase with metrics recording.
func NewProductUseCaseWithMetrics(useCase ProductUseCase, m metrics.BusinessMetrics) ProductUseCase {
	return &productUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *productUseCaseWithMetrics) Create(
	ctx context.Context,
	sellerID uuid.UUID,
	input ProductInput,
) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.Create(ctx, sellerID, input)
	metrics.Observe(ctx, p.metrics, metrics.DomainProduct, "create", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return p.next.Get(ctx, id)
}

func (p *productUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*domain.Product, error) {
	return p.next.List(ctx, offset, limit)
}

func (p *productUseCaseWithMetrics) ListBySeller(
	ctx context.Context,
	sellerID uuid.UUID,
	offset, limit int,
) ([]*domain.Product, error) {
	return p.next.ListBySeller(ctx, sellerID, offset, limit)
}

func (p *productUseCaseWithMetrics) Update(
	ctx context.Context,
	sellerID, id uuid.UUID,
	input ProductInput,
) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.Update(ctx, sellerID, id, input)
	metrics.Observe(ctx, p.metrics, metrics.DomainProduct, "update", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	start := time.Now()
	err := p.next.Delete(ctx, sellerID, id)
	metrics.Observe(ctx, p.metrics, metrics.DomainProduct, "delete", start, err)
	return err
}
