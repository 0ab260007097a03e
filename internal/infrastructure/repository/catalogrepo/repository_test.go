package catalogrepo

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"salesdesk/admin-api/internal/domain/catalog"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

// newDryRunDB opens a gorm handle that builds SQL without executing it, so
// the generated statements can be asserted on without a database.
func newDryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}

	var captured string
	err = db.Callback().Update().After("gorm:update").Register("capture_update_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	return db, &captured
}

func TestUpdateWritesZeroValuedColumns(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewRepository(db)

	// A sold-out edit: stock drops to 0 and the graphics field is cleared.
	product := &catalog.Product{
		ID:       7,
		Category: catalog.CategoryLaptop,
		Brand:    "Acer",
		Name:     "Swift 3",
		Price:    decimal.NewFromInt(900),
		Stock:    0,
		Status:   catalog.StatusOutOfStock,
		Laptop:   &catalog.LaptopSpecs{Processor: "i5", Graphics: ""},
	}

	// Dry runs never report affected rows, which surfaces as not-found.
	if err := repo.Update(context.Background(), product); err != nil &&
		!platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("update failed: %v", err)
	}

	sql := *captured
	if sql == "" {
		t.Fatal("no update statement generated")
	}
	set := sql
	if idx := strings.Index(sql, "WHERE"); idx >= 0 {
		set = sql[:idx]
	}
	for _, column := range []string{"stock", "graphics", "price_max"} {
		if !strings.Contains(set, column) {
			t.Fatalf("SET clause missing %q: %s", column, sql)
		}
	}
	if strings.Contains(set, "created_at") {
		t.Fatalf("SET clause must not touch created_at: %s", sql)
	}
}

func TestUpdateUnknownCategory(t *testing.T) {
	db, _ := newDryRunDB(t)
	repo := NewRepository(db)

	err := repo.Update(context.Background(), &catalog.Product{ID: 1, Category: "phone"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
}
