package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// buildSelect assembles the accumulated clauses onto a bun SelectQuery
// for the given model destination.
func (q *QueryBuilder[T]) buildSelect(model any) *bun.SelectQuery {
	query := q.db.NewSelect().Model(model)

	if q.tableName != "" {
		query = query.ModelTableExpr(q.tableName)
	}

	if len(q.selectCols) > 0 {
		query = query.Column(q.selectCols...)
	}

	if q.distinct {
		query = query.Distinct()
	}

	for _, join := range q.joins {
		query = query.Join(join.toSQL(), join.args()...)
	}

	query = applyWheres(query, q.wheres, func(sq *bun.SelectQuery, cond string, args ...any) *bun.SelectQuery {
		return sq.Where(cond, args...)
	})

	if len(q.groupBys) > 0 {
		query = query.Group(q.groupBys...)
	}

	for _, order := range q.orders {
		query = query.OrderExpr(order.Column + " " + order.Direction)
	}

	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}

	if q.offsetVal != nil {
		query = query.Offset(*q.offsetVal)
	}

	for _, rel := range q.relations {
		query = query.Relation(rel)
	}

	if q.forUpdate {
		query = query.For("UPDATE")
	}

	return query
}

// applyWheres renders the WHERE clauses onto any bun query type through
// the supplied where function.
func applyWheres[Q any](query Q, wheres []*WhereClause, where func(Q, string, ...any) Q) Q {
	for _, w := range wheres {
		switch {
		case w.IsRaw:
			query = where(query, w.RawSQL, w.RawArgs...)
		case w.Operator == "IS NULL" || w.Operator == "IS NOT NULL":
			query = where(query, w.Column+" "+w.Operator)
		case w.Operator == "IN":
			values, _ := w.Value.([]any)
			query = where(query, w.Column+" IN (?)", bun.In(values))
		default:
			query = where(query, fmt.Sprintf("%s %s ?", w.Column, w.Operator), w.Value)
		}
	}
	return query
}

// All executes the query and returns all matching records with automatic retry
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	var data []T

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		data = nil // Reset on retry
		return q.buildSelect(&data).Scan(ctx)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First executes the query and returns the first matching record with
// automatic retry. No match returns (nil, nil), not an error.
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	var data T

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		return q.buildSelect(&data).Limit(1).Scan(ctx)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// Count executes the query and returns the count of matching records with automatic retry
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var count int

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var model T
		var err error
		count, err = q.buildSelect(&model).Count(ctx)
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists checks if any records match the query
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert inserts a new record and returns it with automatic retry
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		query := q.db.NewInsert().Model(data)

		if q.tableName != "" {
			query = query.ModelTableExpr(q.tableName)
		}

		_, err := query.Exec(ctx)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// InsertMany inserts multiple records with automatic retry
func (q *QueryBuilder[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	start := time.Now()

	if len(data) == 0 {
		return data, nil
	}

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		query := q.db.NewInsert().Model(&data)

		if q.tableName != "" {
			query = query.ModelTableExpr(q.tableName)
		}

		_, err := query.Exec(ctx)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute bulk insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update updates records matching the query with automatic retry.
// data is either a column map or a *T.
func (q *QueryBuilder[T]) Update(ctx context.Context, data any) (int, error) {
	start := time.Now()
	var rowsAffected int64

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		query, err := q.buildUpdate(data)
		if err != nil {
			return err
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// UpdateReturning updates records and returns them with automatic retry
func (q *QueryBuilder[T]) UpdateReturning(ctx context.Context, data any) ([]T, error) {
	start := time.Now()
	var results []T

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		results = nil // Reset on retry
		query, err := q.buildUpdate(data)
		if err != nil {
			return err
		}

		_, err = query.Returning("*").Exec(ctx, &results)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return results, nil
}

func (q *QueryBuilder[T]) buildUpdate(data any) (*bun.UpdateQuery, error) {
	var model T
	query := q.db.NewUpdate().Model(&model)

	if q.tableName != "" {
		query = query.ModelTableExpr(q.tableName)
	}

	query = applyWheres(query, q.wheres, func(uq *bun.UpdateQuery, cond string, args ...any) *bun.UpdateQuery {
		return uq.Where(cond, args...)
	})

	switch v := data.(type) {
	case map[string]any:
		for key, value := range v {
			query = query.Set("? = ?", bun.Ident(key), value)
		}
	case *T:
		query = query.Model(v)
	default:
		return nil, fmt.Errorf("unsupported data type for update: %T", data)
	}

	return query, nil
}

// Delete deletes records matching the query with automatic retry
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()
	var rowsAffected int64

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		res, err := q.buildDelete().Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// DeleteReturning deletes records and returns them with automatic retry
func (q *QueryBuilder[T]) DeleteReturning(ctx context.Context) ([]T, error) {
	start := time.Now()
	var results []T

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		results = nil // Reset on retry
		_, err := q.buildDelete().Returning("*").Exec(ctx, &results)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return results, nil
}

func (q *QueryBuilder[T]) buildDelete() *bun.DeleteQuery {
	var model T
	query := q.db.NewDelete().Model(&model)

	if q.tableName != "" {
		query = query.ModelTableExpr(q.tableName)
	}

	return applyWheres(query, q.wheres, func(dq *bun.DeleteQuery, cond string, args ...any) *bun.DeleteQuery {
		return dq.Where(cond, args...)
	})
}
