package repository

import (
	"context"

	"gorm.io/gorm"
)

// CounterRepository hands out gapless-enough sequence values for document
// numbers. Next is a single atomic upsert, so two concurrent order
// creations can never observe the same value.
type CounterRepository interface {
	Next(ctx context.Context, scope string) (int64, error)
}

type counterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) CounterRepository {
	return &counterRepository{db: db}
}

func (r *counterRepository) Next(ctx context.Context, scope string) (int64, error) {
	var value int64
	err := GetDB(ctx, r.db).Raw(
		`INSERT INTO sequence_counters (scope, value)
		 VALUES (?, 1)
		 ON CONFLICT (scope) DO UPDATE SET value = sequence_counters.value + 1
		 RETURNING value`,
		scope,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
