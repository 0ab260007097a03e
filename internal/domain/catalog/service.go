package catalog

import (
	"context"

	"github.com/rs/zerolog"

	"salesdesk/admin-api/internal/utils/platformerrors"
)

// Repository is the persistence port for category tables.
type Repository interface {
	List(ctx context.Context, category Category) ([]*Product, error)
	Get(ctx context.Context, category Category, id uint) (*Product, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, category Category, id uint) error
	ListTables(ctx context.Context) ([]string, error)
	DescribeTable(ctx context.Context, table string) ([]ColumnInfo, error)
	UpdateStatuses(ctx context.Context, category Category, lowStockThreshold int) (int64, error)
}

// ColumnInfo describes one column of a category table.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// Service owns product lifecycle rules: validation and stock-derived status.
type Service struct {
	repo              Repository
	lowStockThreshold int
	log               zerolog.Logger
}

func NewService(repo Repository, lowStockThreshold int, log zerolog.Logger) *Service {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &Service{
		repo:              repo,
		lowStockThreshold: lowStockThreshold,
		log:               log.With().Str("component", "catalog-service").Logger(),
	}
}

func (s *Service) List(ctx context.Context, category Category) ([]*Product, error) {
	return s.repo.List(ctx, category)
}

func (s *Service) Get(ctx context.Context, category Category, id uint) (*Product, error) {
	return s.repo.Get(ctx, category, id)
}

// Create validates and stores a product. Status is always recomputed from
// stock; a status supplied by the caller is ignored.
func (s *Service) Create(ctx context.Context, product *Product) error {
	if err := product.Validate(ctx); err != nil {
		return err
	}
	product.Status = StatusForStock(product.Stock, s.lowStockThreshold)
	return s.repo.Create(ctx, product)
}

func (s *Service) Update(ctx context.Context, product *Product) error {
	if product.ID == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "product id is required for update", nil)
	}
	if err := product.Validate(ctx); err != nil {
		return err
	}
	product.Status = StatusForStock(product.Stock, s.lowStockThreshold)
	return s.repo.Update(ctx, product)
}

func (s *Service) Delete(ctx context.Context, category Category, id uint) error {
	return s.repo.Delete(ctx, category, id)
}

func (s *Service) ListTables(ctx context.Context) ([]string, error) {
	return s.repo.ListTables(ctx)
}

func (s *Service) DescribeTable(ctx context.Context, table string) ([]ColumnInfo, error) {
	return s.repo.DescribeTable(ctx, table)
}

// ReconcileStatuses recomputes the stored status of every product from its
// stock quantity and reports how many rows changed per category. Rows written
// by older tooling may carry stale statuses.
func (s *Service) ReconcileStatuses(ctx context.Context) (map[Category]int64, error) {
	updatedByCategory := make(map[Category]int64, len(Categories))
	for _, category := range Categories {
		updated, err := s.repo.UpdateStatuses(ctx, category, s.lowStockThreshold)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "reconcile product statuses")
		}
		updatedByCategory[category] = updated
		if updated > 0 {
			s.log.Info().Str("category", string(category)).Int64("updated", updated).Msg("reconciled product statuses")
		}
	}
	return updatedByCategory, nil
}
