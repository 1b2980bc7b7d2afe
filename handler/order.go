package handler

import (
	"github.com/linkboard/linkboard/db"

	"github.com/google/uuid"
	"github.com/ztrue/tracerr"
	"gorm.io/gorm"
)

// nextSortOrder returns the append position for the sibling set selected by
// query/args: max(sort_order)+1, or 0 for an empty set. Positions are never
// reused, deletion gaps are fine.
func nextSortOrder[T db.DBStruct](tx *gorm.DB, query string, args ...any) (int32, error) {
	var next int32
	stmt := tx.Model(new(T))
	if query != "" {
		stmt = stmt.Where(query, args...)
	}
	err := stmt.Select("COALESCE(MAX(sort_order)+1, 0)").Scan(&next).Error
	return next, tracerr.Wrap(err)
}

// reorder rewrites sort_order of every id to its zero-based position in ids,
// all inside one transaction. Ids outside the sibling set selected by
// query/args fail the whole call with InvalidScopeError. Siblings missing
// from ids follow the listed ones in their current order, so one sibling set
// never holds duplicate positions.
func reorder[T db.DBStruct](tx *gorm.DB, scope string, ids []uuid.UUID, query string, args ...any) error {
	var siblings []uuid.UUID
	stmt := tx.Model(new(T)).Order("sort_order")
	if query != "" {
		stmt = stmt.Where(query, args...)
	}
	if err := stmt.Pluck("id", &siblings).Error; err != nil {
		return tracerr.Wrap(err)
	}
	valid := make(map[uuid.UUID]bool, len(siblings))
	for _, v := range siblings {
		valid[v] = true
	}
	listed := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !valid[id] {
			return tracerr.Wrap(&InvalidScopeError{Scope: scope, ID: id})
		}
		listed[id] = true
	}
	final := make([]uuid.UUID, 0, len(siblings))
	final = append(final, ids...)
	for _, v := range siblings {
		if !listed[v] {
			final = append(final, v)
		}
	}
	return tx.Transaction(func(tx *gorm.DB) error {
		for i, id := range final {
			if err := db.NewORM[T](tx).ID(id).Update("sort_order", int32(i)); err != nil {
				return err
			}
		}
		return nil
	})
}
