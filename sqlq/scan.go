package sqlq

import (
	"database/sql"
	"errors"
)

var (
	// ErrNilDB is returned when the provided database handle is nil.
	ErrNilDB = errors.New("db is nil")
	// ErrNoProjection is returned when executing a query which selects nothing.
	ErrNoProjection = errors.New("no columns selected")
)

// QueryAble is the interface for query-able *sql.DB, *sql.Tx, etc.
type QueryAble interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// scan scans query rows with scanner
func scan[T any](db QueryAble, query string, args []any, fn func() (T, []any)) ([]T, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []T
	for rows.Next() {
		dest, fields := fn()
		err = scanRow(rows, fields...)
		if err != nil {
			return nil, err
		}
		results = append(results, dest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// scanRow scans a single row to dest, unlike rows.Scan(), it drops the extra columns.
func scanRow(rows *sql.Rows, dest ...any) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	nBlackholes := len(cols) - len(dest)
	bh := &blackhole{}
	for i := 0; i < nBlackholes; i++ {
		dest = append(dest, bh)
	}
	return rows.Scan(dest...)
}

type blackhole struct{}

func (b *blackhole) Scan(_ any) error { return nil }

// Iterator iterates the rows of a query, scanning one row at a time.
//
//	it, err := sqlq.Iterate(ctx, db, q, newUser)
//	if err != nil {
//		return err
//	}
//	defer it.Close()
//	for it.Next() {
//		u := it.Value()
//	}
//	return it.Err()
type Iterator[T any] struct {
	rows  *sql.Rows
	fn    func() (T, []any)
	value T
	err   error
}

// Next prepares the next value, it returns false when no more rows
// or an error occurs.
func (it *Iterator[T]) Next() bool {
	if it.err != nil || !it.rows.Next() {
		return false
	}
	dest, fields := it.fn()
	if err := scanRow(it.rows, fields...); err != nil {
		it.err = err
		return false
	}
	it.value = dest
	return true
}

// Value returns the current value.
func (it *Iterator[T]) Value() T { return it.value }

// Err returns the error encountered during the iteration.
func (it *Iterator[T]) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.rows.Err()
}

// Close closes the underlying rows.
func (it *Iterator[T]) Close() error {
	return it.rows.Close()
}
