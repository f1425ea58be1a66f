package store

import (
	constants "Tankard/constants/events"
	models "Tankard/models/postgres"
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on top of the PostgreSQL schema. Collection
// names match the gorm table names of the models.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, collection, id string, out any) error {
	err := s.db.WithContext(ctx).Table(collection).Where("id = ?", id).First(out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: error fetching %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *GormStore) Set(ctx context.Context, collection, id string, record Record) error {
	record.SetRecordID(id)
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("store: error saving %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *GormStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	result := s.db.WithContext(ctx).Table(collection).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("store: error updating %s/%s: %w", collection, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Add(ctx context.Context, collection string, record Record) (string, error) {
	// BeforeCreate hooks generate the id with a uniqueness check
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return "", fmt.Errorf("store: error inserting into %s: %w", collection, err)
	}
	return record.RecordID(), nil
}

func (s *GormStore) ArrayUnion(ctx context.Context, collection, id, field, value string) error {
	return s.mutateArray(ctx, collection, id, field, func(arr []string) []string {
		for _, v := range arr {
			if v == value {
				return arr
			}
		}
		return append(arr, value)
	})
}

func (s *GormStore) ArrayRemove(ctx context.Context, collection, id, field, value string) error {
	return s.mutateArray(ctx, collection, id, field, func(arr []string) []string {
		out := arr[:0]
		for _, v := range arr {
			if v != value {
				out = append(out, v)
			}
		}
		return out
	})
}

// mutateArray rewrites one JSONB array column inside a transaction holding
// a row lock, so concurrent array mutations on the same record serialize.
func (s *GormStore) mutateArray(ctx context.Context, collection, id, field string, mutate func([]string) []string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vals []datatypes.JSON
		err := tx.Table(collection).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			Limit(1).
			Pluck(field, &vals).Error
		if err != nil {
			return err
		}
		if len(vals) == 0 {
			return ErrNotFound
		}

		arr, err := models.DecodeStringSlice(vals[0])
		if err != nil {
			return err
		}
		encoded, err := models.EncodeJSON(mutate(arr))
		if err != nil {
			return err
		}

		return tx.Table(collection).Where("id = ?", id).Update(field, encoded).Error
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: error mutating %s on %s/%s: %w", field, collection, id, err)
	}
	return nil
}

func modelFor(collection string) any {
	switch collection {
	case constants.CollectionGamers:
		return &models.Gamer{}
	case constants.CollectionPublicans:
		return &models.Publican{}
	case constants.CollectionEvents:
		return &models.Event{}
	case constants.CollectionGames:
		return &models.Game{}
	default:
		return nil
	}
}

func (s *GormStore) Delete(ctx context.Context, collection, id string) error {
	model := modelFor(collection)
	if model == nil {
		return fmt.Errorf("store: unknown collection %q", collection)
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(model).Error; err != nil {
		return fmt.Errorf("store: error deleting %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *GormStore) Query(ctx context.Context, collection string, filters map[string]any, out any) error {
	q := s.db.WithContext(ctx).Table(collection)
	if len(filters) > 0 {
		q = q.Where(filters)
	}
	if err := q.Find(out).Error; err != nil {
		return fmt.Errorf("store: error querying %s: %w", collection, err)
	}
	return nil
}
