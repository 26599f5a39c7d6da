package database

import (
	"context"
	"strings"
	"time"
)

// JoinType represents the type of SQL JOIN operation
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
)

// String returns the SQL representation of the join type
func (jt JoinType) String() string {
	switch jt {
	case LeftJoin:
		return "LEFT JOIN"
	default:
		return "INNER JOIN"
	}
}

// QueryBuilder provides a fluent, type-safe API for building database queries
type QueryBuilder[T any] struct {
	db        *DB
	tableName string

	// Query clauses
	selectCols []string
	joins      []*JoinClause
	wheres     []*WhereClause
	orders     []*OrderClause
	groupBys   []string
	limitVal   *int
	offsetVal  *int

	// Relations to preload
	relations []string

	// Options
	distinct  bool
	forUpdate bool

	// Timeout
	timeout time.Duration
}

// JoinClause represents a SQL JOIN operation
type JoinClause struct {
	Type       JoinType
	Table      string
	Alias      string
	Conditions []*JoinCondition
}

// JoinCondition represents a condition in a JOIN clause
type JoinCondition struct {
	Left     string
	Operator string
	Right    string
	Value    any
	IsValue  bool // If true, Value is bound as a placeholder; otherwise Right is a column
}

// WhereClause represents a WHERE condition
type WhereClause struct {
	Column   string
	Operator string
	Value    any
	IsRaw    bool
	RawSQL   string
	RawArgs  []any
}

// OrderClause represents an ORDER BY clause
type OrderClause struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

// JoinBuilder provides a fluent API for building JOIN clauses
type JoinBuilder[T any] struct {
	parent *QueryBuilder[T]
	clause *JoinClause
}

// Query creates a new QueryBuilder instance
func Query[T any](db *DB) *QueryBuilder[T] {
	return &QueryBuilder[T]{
		db:         db,
		selectCols: []string{},
		joins:      []*JoinClause{},
		wheres:     []*WhereClause{},
		orders:     []*OrderClause{},
		groupBys:   []string{},
		relations:  []string{},
	}
}

// Table sets the table name explicitly
func (q *QueryBuilder[T]) Table(name string) *QueryBuilder[T] {
	q.tableName = name
	return q
}

// Select specifies the columns to select
func (q *QueryBuilder[T]) Select(columns ...string) *QueryBuilder[T] {
	q.selectCols = append(q.selectCols, columns...)
	return q
}

// Distinct adds DISTINCT to the query
func (q *QueryBuilder[T]) Distinct() *QueryBuilder[T] {
	q.distinct = true
	return q
}

// Join starts building an INNER JOIN clause
func (q *QueryBuilder[T]) Join(table, alias string) *JoinBuilder[T] {
	return &JoinBuilder[T]{
		parent: q,
		clause: &JoinClause{Type: InnerJoin, Table: table, Alias: alias},
	}
}

// LeftJoin starts building a LEFT JOIN clause
func (q *QueryBuilder[T]) LeftJoin(table, alias string) *JoinBuilder[T] {
	return &JoinBuilder[T]{
		parent: q,
		clause: &JoinClause{Type: LeftJoin, Table: table, Alias: alias},
	}
}

// Where adds a simple WHERE condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "=",
		Value:    value,
	})
	return q
}

// WhereOp adds a WHERE condition with a custom operator
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: operator,
		Value:    value,
	})
	return q
}

// WhereIn adds a WHERE IN condition
func (q *QueryBuilder[T]) WhereIn(column string, values []any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IN",
		Value:    values,
	})
	return q
}

// WhereNull adds a WHERE IS NULL condition
func (q *QueryBuilder[T]) WhereNull(column string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IS NULL",
	})
	return q
}

// WhereNotNull adds a WHERE IS NOT NULL condition
func (q *QueryBuilder[T]) WhereNotNull(column string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IS NOT NULL",
	})
	return q
}

// WhereLike adds a WHERE ILIKE condition
func (q *QueryBuilder[T]) WhereLike(column, pattern string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "ILIKE",
		Value:    pattern,
	})
	return q
}

// WhereRaw adds a raw WHERE condition
func (q *QueryBuilder[T]) WhereRaw(sql string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		IsRaw:   true,
		RawSQL:  sql,
		RawArgs: args,
	})
	return q
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, &OrderClause{
		Column:    column,
		Direction: string(direction),
	})
	return q
}

// GroupBy adds a GROUP BY clause
func (q *QueryBuilder[T]) GroupBy(columns ...string) *QueryBuilder[T] {
	q.groupBys = append(q.groupBys, columns...)
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = &limit
	return q
}

// Offset sets the OFFSET clause
func (q *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	q.offsetVal = &offset
	return q
}

// Relation specifies a relation to preload (bun style)
func (q *QueryBuilder[T]) Relation(relation string) *QueryBuilder[T] {
	q.relations = append(q.relations, relation)
	return q
}

// ForUpdate adds FOR UPDATE clause (for row locking)
func (q *QueryBuilder[T]) ForUpdate() *QueryBuilder[T] {
	q.forUpdate = true
	return q
}

// Timeout sets a timeout for the query
func (q *QueryBuilder[T]) Timeout(duration time.Duration) *QueryBuilder[T] {
	q.timeout = duration
	return q
}

// withTimeout derives the query context, applying the builder timeout if set.
func (q *QueryBuilder[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}

// JoinBuilder methods

// On adds a JOIN condition between two columns
func (j *JoinBuilder[T]) On(left, operator, right string) *JoinBuilder[T] {
	j.clause.Conditions = append(j.clause.Conditions, &JoinCondition{
		Left:     left,
		Operator: operator,
		Right:    right,
	})
	return j
}

// OnValue adds a JOIN condition with a bound value instead of a column
func (j *JoinBuilder[T]) OnValue(left, operator string, value any) *JoinBuilder[T] {
	j.clause.Conditions = append(j.clause.Conditions, &JoinCondition{
		Left:     left,
		Operator: operator,
		Value:    value,
		IsValue:  true,
	})
	return j
}

// End completes the join builder and returns to the query builder
func (j *JoinBuilder[T]) End() *QueryBuilder[T] {
	j.parent.joins = append(j.parent.joins, j.clause)
	return j.parent
}

// toSQL renders the JOIN clause with "?" placeholders for bound values;
// args returns the values in placeholder order.
func (j *JoinClause) toSQL() string {
	var sb strings.Builder

	sb.WriteString(j.Type.String())
	sb.WriteString(" ")
	sb.WriteString(j.Table)

	if j.Alias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(j.Alias)
	}

	if len(j.Conditions) > 0 {
		sb.WriteString(" ON ")
		for i, cond := range j.Conditions {
			if i > 0 {
				sb.WriteString(" AND ")
			}
			sb.WriteString(cond.Left)
			sb.WriteString(" ")
			sb.WriteString(cond.Operator)
			sb.WriteString(" ")
			if cond.IsValue {
				sb.WriteString("?")
			} else {
				sb.WriteString(cond.Right)
			}
		}
	}

	return sb.String()
}

func (j *JoinClause) args() []any {
	var args []any
	for _, cond := range j.Conditions {
		if cond.IsValue {
			args = append(args, cond.Value)
		}
	}
	return args
}
