package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CRUD is the single-record surface every curriculum repository offers.
// GetByID and Delete return gorm.ErrRecordNotFound for unknown ids.
type CRUD[T any] interface {
	Create(ctx context.Context, v *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id string) error
}

// Siblings manages the sort_order of records sharing one parent.
type Siblings interface {
	// NextSortOrder returns max(sort_order)+1 within the parent, 1 when empty.
	NextSortOrder(ctx context.Context, parentID string) (int, error)
	// LockSiblingIDs reads the ids of the group and locks the rows until
	// the surrounding transaction ends.
	LockSiblingIDs(ctx context.Context, parentID string) ([]string, error)
	// SetSortOrders writes sort_order = position+1 for each id, restricted
	// to rows of parentID.
	SetSortOrders(ctx context.Context, parentID string, ids []string) error
}

// table is the gorm implementation of CRUD for one model.
type table[T any] struct {
	db       *gorm.DB
	idColumn string
}

func (t table[T]) Create(ctx context.Context, v *T) error {
	return t.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error
}

func (t table[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var v T
	err := t.db.WithContext(ctx).
		Where(t.idColumn+" = ?", id).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (t table[T]) Update(ctx context.Context, v *T) error {
	return t.db.WithContext(ctx).Omit(clause.Associations).Save(v).Error
}

func (t table[T]) Delete(ctx context.Context, id string) error {
	res := t.db.WithContext(ctx).
		Where(t.idColumn+" = ?", id).
		Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (t table[T]) listWhere(ctx context.Context, order string, query string, args ...interface{}) ([]T, error) {
	var rows []T
	err := t.db.WithContext(ctx).
		Where(query, args...).
		Order(order).
		Find(&rows).Error
	return rows, err
}

// siblings is the gorm implementation of Siblings for one table.
type siblings struct {
	db           *gorm.DB
	table        string
	idColumn     string
	parentColumn string
}

func (s siblings) NextSortOrder(ctx context.Context, parentID string) (int, error) {
	var next int
	err := s.db.WithContext(ctx).
		Table(s.table).
		Select("COALESCE(MAX(sort_order), 0) + 1").
		Where(s.parentColumn+" = ?", parentID).
		Scan(&next).Error
	return next, err
}

func (s siblings) LockSiblingIDs(ctx context.Context, parentID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Table(s.table).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(s.parentColumn+" = ?", parentID).
		Order("sort_order ASC, "+s.idColumn+" ASC").
		Pluck(s.idColumn, &ids).Error
	return ids, err
}

func (s siblings) SetSortOrders(ctx context.Context, parentID string, ids []string) error {
	for i, id := range ids {
		res := s.db.WithContext(ctx).
			Table(s.table).
			Where(s.idColumn+" = ? AND "+s.parentColumn+" = ?", id, parentID).
			Updates(map[string]interface{}{
				"sort_order": i + 1,
				"updated_at": gorm.Expr("NOW()"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}
