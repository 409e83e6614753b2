// Package docstore exposes gorm tables as flat document collections: fetch
// all, fetch by equality filter, create with a generated id, overwrite or patch
// by id, delete by id. There are no version checks; concurrent writers race
// under last-write-wins.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no document has the requested id.
var ErrNotFound = errors.New("document not found")

// Filter is a set of column = value conditions combined with AND.
type Filter map[string]any

// Collection is one named collection of documents of type T.
type Collection[T any] struct {
	db    *gorm.DB
	name  string
	order string
}

// New binds a collection to db. order is the default ordering for List, e.g.
// "top asc"; empty means created_at ascending.
func New[T any](db *gorm.DB, name, order string) *Collection[T] {
	if order == "" {
		order = "created_at asc"
	}
	return &Collection[T]{db: db, name: name, order: order}
}

// Name returns the collection name used in error messages and logs.
func (c *Collection[T]) Name() string { return c.name }

// WithTx returns a copy of the collection that runs on tx.
func (c *Collection[T]) WithTx(tx *gorm.DB) *Collection[T] {
	cp := *c
	cp.db = tx
	return &cp
}

func (c *Collection[T]) conn(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx)
}

// List fetches every document matching filter (all documents when filter is
// empty) in the collection's default order.
func (c *Collection[T]) List(ctx context.Context, filter Filter) ([]T, error) {
	items := make([]T, 0)
	q := c.conn(ctx).Model(new(T))
	if len(filter) > 0 {
		q = q.Where(map[string]any(filter))
	}
	// secondary key keeps equal ranks stable
	if err := q.Order(c.order).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	return items, nil
}

// Get fetches one document by id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	err := c.conn(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, ErrNotFound
	}
	if err != nil {
		return item, fmt.Errorf("get %s/%s: %w", c.name, id, err)
	}
	return item, nil
}

// Create appends doc. The id and creation timestamp are assigned by the store.
func (c *Collection[T]) Create(ctx context.Context, doc *T) error {
	if err := c.conn(ctx).Create(doc).Error; err != nil {
		return fmt.Errorf("create %s: %w", c.name, err)
	}
	return nil
}

// Replace overwrites every field of the document with id from doc, except id,
// created_at and any column named in omit. Zero values are written too.
func (c *Collection[T]) Replace(ctx context.Context, id string, doc *T, omit ...string) error {
	omit = append([]string{"id", "created_at"}, omit...)
	res := c.conn(ctx).Model(new(T)).Where("id = ?", id).Select("*").Omit(omit...).Updates(doc)
	if res.Error != nil {
		return fmt.Errorf("replace %s/%s: %w", c.name, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Patch updates only the given columns of the document with id.
func (c *Collection[T]) Patch(ctx context.Context, id string, fields map[string]any) error {
	res := c.conn(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("patch %s/%s: %w", c.name, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the document with id. It never cascades.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	res := c.conn(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("delete %s/%s: %w", c.name, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
