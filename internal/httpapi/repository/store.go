package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store is a generic GORM-backed CRUD store shared by the catalog and car
// entities. Mutations run inside a transaction so a partial failure (for
// example a foreign key violation) leaves no partial row behind.
type Store[T any] struct {
	db *gorm.DB
}

func NewStore[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

// GetAll returns every row matching conds (nil conds means all rows), with
// the given associations preloaded.
func (s *Store[T]) GetAll(ctx context.Context, conds map[string]any, preloads ...string) ([]T, error) {
	var list []T
	q := s.db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if len(conds) > 0 {
		q = q.Where(conds)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, MapError(err)
	}
	return list, nil
}

// GetOne fetches a single row by primary key.
func (s *Store[T]) GetOne(ctx context.Context, id int64, preloads ...string) (*T, error) {
	var entity T
	q := s.db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&entity, id).Error; err != nil {
		return nil, MapError(err)
	}
	return &entity, nil
}

// CreateOne inserts the entity, populating its primary key and timestamps.
func (s *Store[T]) CreateOne(ctx context.Context, entity *T) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(entity).Error
	})
	return MapError(err)
}

// UpdateOne applies the given column updates to the entity's row.
func (s *Store[T]) UpdateOne(ctx context.Context, entity *T, updates map[string]any) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(entity).Updates(updates).Error
	})
	return MapError(err)
}

// DeleteOne removes the entity's row. Models carrying gorm.DeletedAt are
// soft-deleted unless force is set, which drops the row for real.
func (s *Store[T]) DeleteOne(ctx context.Context, entity *T, force bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if force {
			tx = tx.Unscoped()
		}
		return tx.Delete(entity).Error
	})
	return MapError(err)
}
