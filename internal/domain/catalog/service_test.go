package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"salesdesk/admin-api/internal/infrastructure/logger"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

type mockRepository struct {
	createFn         func(ctx context.Context, product *Product) error
	updateFn         func(ctx context.Context, product *Product) error
	updateStatusesFn func(ctx context.Context, category Category, threshold int) (int64, error)
}

func (m *mockRepository) List(ctx context.Context, category Category) ([]*Product, error) {
	return nil, nil
}

func (m *mockRepository) Get(ctx context.Context, category Category, id uint) (*Product, error) {
	return nil, nil
}

func (m *mockRepository) Create(ctx context.Context, product *Product) error {
	return m.createFn(ctx, product)
}

func (m *mockRepository) Update(ctx context.Context, product *Product) error {
	return m.updateFn(ctx, product)
}

func (m *mockRepository) Delete(ctx context.Context, category Category, id uint) error {
	return nil
}

func (m *mockRepository) ListTables(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockRepository) DescribeTable(ctx context.Context, table string) ([]ColumnInfo, error) {
	return nil, nil
}

func (m *mockRepository) UpdateStatuses(ctx context.Context, category Category, threshold int) (int64, error) {
	return m.updateStatusesFn(ctx, category, threshold)
}

func TestCreateOverridesCallerStatus(t *testing.T) {
	var stored *Product
	repo := &mockRepository{createFn: func(ctx context.Context, p *Product) error {
		stored = p
		return nil
	}}
	svc := NewService(repo, 5, logger.GetLogger())

	p := validLaptop()
	p.Stock = 3
	p.Status = StatusActive // caller-supplied status must be ignored

	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if stored.Status != StatusLowStock {
		t.Fatalf("stored status = %q, want %q", stored.Status, StatusLowStock)
	}
}

func TestCreateRejectsInvalidProduct(t *testing.T) {
	called := false
	repo := &mockRepository{createFn: func(ctx context.Context, p *Product) error {
		called = true
		return nil
	}}
	svc := NewService(repo, 5, logger.GetLogger())

	p := validLaptop()
	p.Name = ""
	if err := svc.Create(context.Background(), p); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
	if called {
		t.Fatal("repository reached with an invalid product")
	}
}

func TestUpdateRequiresID(t *testing.T) {
	repo := &mockRepository{updateFn: func(ctx context.Context, p *Product) error { return nil }}
	svc := NewService(repo, 5, logger.GetLogger())

	p := validLaptop()
	p.ID = 0
	if err := svc.Update(context.Background(), p); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestUpdateRecomputesStatus(t *testing.T) {
	var stored *Product
	repo := &mockRepository{updateFn: func(ctx context.Context, p *Product) error {
		stored = p
		return nil
	}}
	svc := NewService(repo, 5, logger.GetLogger())

	p := validLaptop()
	p.ID = 7
	p.Stock = 0
	p.Price = decimal.NewFromInt(900)
	p.Status = StatusActive

	if err := svc.Update(context.Background(), p); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if stored.Status != StatusOutOfStock {
		t.Fatalf("stored status = %q, want %q", stored.Status, StatusOutOfStock)
	}
}

func TestReconcileStatusesCoversEveryCategory(t *testing.T) {
	var seen []Category
	repo := &mockRepository{updateStatusesFn: func(ctx context.Context, category Category, threshold int) (int64, error) {
		seen = append(seen, category)
		return 2, nil
	}}
	svc := NewService(repo, 5, logger.GetLogger())

	updated, err := svc.ReconcileStatuses(context.Background())
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(seen) != len(Categories) {
		t.Fatalf("reconciled %v, want all of %v", seen, Categories)
	}
	for _, category := range Categories {
		if updated[category] != 2 {
			t.Fatalf("updated[%s] = %d, want 2", category, updated[category])
		}
	}
}

func TestReconcileStatusesStopsOnError(t *testing.T) {
	repo := &mockRepository{updateStatusesFn: func(ctx context.Context, category Category, threshold int) (int64, error) {
		return 0, errors.New("connection reset")
	}}
	svc := NewService(repo, 5, logger.GetLogger())

	if _, err := svc.ReconcileStatuses(context.Background()); err == nil {
		t.Fatal("repository error swallowed")
	}
}

func TestNewServiceDefaultsThreshold(t *testing.T) {
	var captured int
	repo := &mockRepository{updateStatusesFn: func(ctx context.Context, category Category, threshold int) (int64, error) {
		captured = threshold
		return 0, nil
	}}
	svc := NewService(repo, 0, logger.GetLogger())

	if _, err := svc.ReconcileStatuses(context.Background()); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if captured != DefaultLowStockThreshold {
		t.Fatalf("threshold = %d, want %d", captured, DefaultLowStockThreshold)
	}
}
