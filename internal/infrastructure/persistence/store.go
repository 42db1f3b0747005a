package persistence

import (
	"context"
	"errors"

	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// findByID loads a single row by primary key into a fresh model.
func findByID[M any](ctx context.Context, db *gorm.DB, conds ...any) (*M, error) {
	var model M
	if err := db.WithContext(ctx).First(&model, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &model, nil
}

// lockAndFetch re-reads a row under FOR UPDATE inside the current
// transaction. SQLite has no row locks and serializes writers anyway, so the
// locking clause is skipped on that dialect.
func lockAndFetch[M any](ctx context.Context, tx *gorm.DB, conds ...any) (*M, error) {
	query := tx.WithContext(ctx)
	if tx.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model M
	if err := query.First(&model, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &model, nil
}
