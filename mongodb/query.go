package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ikonglong/querydsl"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrNilCollection is returned when a query has no collection to run on.
var ErrNilCollection = errors.New("mongodb: nil collection")

var errNoResult = fmt.Errorf("%w: %w", querydsl.ErrNoResult, mongo.ErrNoDocuments)

// Query queries a collection, decoding the documents into T:
//
//	u := testdomain.NewQUser("user")
//	users, err := mongodb.NewQuery[testdomain.User](coll).
//		Where(u.LastName.Eq("Doe"), u.Age.Gt(18)).
//		OrderBy(u.FirstName.Asc()).
//		Limit(10).
//		Fetch(ctx)
type Query[T any] struct {
	mixin      *querydsl.QueryMixin[*Query[T]]
	coll       *mongo.Collection
	serializer *Serializer
	readPref   *readpref.ReadPref
	opts       *Options
}

// NewQuery returns a new Query on coll.
func NewQuery[T any](coll *mongo.Collection, opt ...Option) *Query[T] {
	opts := mergeOptions(opt...)
	q := &Query[T]{
		coll:       coll,
		serializer: NewSerializer(opts.converter),
		opts:       opts,
	}
	q.mixin = querydsl.NewQueryMixin(q, nil)
	return q
}

// Metadata returns the query metadata.
func (q *Query[T]) Metadata() *querydsl.QueryMetadata { return q.mixin.Metadata() }

// Where adds filter conditions. Nil predicates are ignored.
func (q *Query[T]) Where(predicates ...querydsl.Predicate) *Query[T] {
	return q.mixin.Where(predicates...)
}

// OrderBy adds orderings.
func (q *Query[T]) OrderBy(orders ...*querydsl.OrderSpecifier) *Query[T] {
	return q.mixin.OrderBy(orders...)
}

// Limit sets the limit.
func (q *Query[T]) Limit(limit int64) *Query[T] { return q.mixin.Limit(limit) }

// Offset sets the number of documents to skip.
func (q *Query[T]) Offset(offset int64) *Query[T] { return q.mixin.Offset(offset) }

// Restrict sets limit and offset.
func (q *Query[T]) Restrict(mod querydsl.QueryModifiers) *Query[T] { return q.mixin.Restrict(mod) }

// SetReadPreference sets the read preference of the query.
func (q *Query[T]) SetReadPreference(rp *readpref.ReadPref) *Query[T] {
	q.readPref = rp
	return q
}

// AnyEmbedded matches documents where any element of the embedded
// collection satisfies the conditions given to On, which are relative
// to alias:
//
//	a := testdomain.NewQAddress(querydsl.NewVariable("a"))
//	q.AnyEmbedded(u.Addresses, a).On(a.Street.Eq("Aakatu"), a.PostCode.Eq("00100"))
//	// {"addresses": {"$elemMatch": {"street": "Aakatu", "postCode": "00100"}}}
func (q *Query[T]) AnyEmbedded(collection querydsl.Expression, alias querydsl.EntityPath) *AnyEmbeddedBuilder[T] {
	q.mixin.JoinAlias(querydsl.JoinPlain, collection, alias.Path())
	return &AnyEmbeddedBuilder[T]{query: q}
}

// AnyEmbeddedBuilder sets the conditions of an AnyEmbedded match.
type AnyEmbeddedBuilder[T any] struct {
	query *Query[T]
}

// On sets the conditions of the element match.
func (b *AnyEmbeddedBuilder[T]) On(conditions ...querydsl.Predicate) *Query[T] {
	return b.query.mixin.On(conditions...)
}

// Filter returns the filter document of the query.
func (q *Query[T]) Filter() (bson.D, error) {
	md := q.mixin.Metadata()
	if err := md.Err(); err != nil {
		return nil, err
	}
	docs := make([]bson.D, 0, len(md.Joins())+1)
	where, err := q.serializer.Filter(md.Where())
	if err != nil {
		return nil, err
	}
	docs = append(docs, where)
	for _, j := range md.Joins() {
		collection, _, ok := querydsl.Alias(j.Target)
		if !ok {
			return nil, fmt.Errorf("unsupported source: %s", j)
		}
		if querydsl.IsNil(j.Condition) {
			return nil, fmt.Errorf("no condition for %s", j)
		}
		d, err := q.serializer.ElemMatch(collection, j.Condition)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return merge(docs), nil
}

// String returns the filter in relaxed extended JSON.
func (q *Query[T]) String() string {
	filter, err := q.Filter()
	if err != nil {
		return "invalid query: " + err.Error()
	}
	b, err := bson.MarshalExtJSON(filter, false, false)
	if err != nil {
		return fmt.Sprint(filter)
	}
	return string(b)
}

// Fetch returns the matching documents. If keys are given, only these
// properties are fetched.
func (q *Query[T]) Fetch(ctx context.Context, keys ...querydsl.Expression) ([]T, error) {
	return q.fetch(ctx, "Fetch", q.mixin.Metadata().Modifiers(), keys)
}

// FetchFirst returns the first matching document. The returned error matches
// both querydsl.ErrNoResult and mongo.ErrNoDocuments if there is none.
func (q *Query[T]) FetchFirst(ctx context.Context, keys ...querydsl.Expression) (T, error) {
	var zero T
	mod := q.mixin.Metadata().Modifiers()
	mod.Limit = 1
	r, err := q.fetch(ctx, "FetchFirst", mod, keys)
	if err != nil {
		return zero, err
	}
	if len(r) == 0 {
		return zero, errNoResult
	}
	return r[0], nil
}

// FetchOne returns the only matching document. It returns
// querydsl.ErrNonUniqueResult if there are more, see FetchFirst for the
// error returned when there is none.
func (q *Query[T]) FetchOne(ctx context.Context, keys ...querydsl.Expression) (T, error) {
	var zero T
	mod := q.mixin.Metadata().Modifiers()
	mod.Limit = 2
	r, err := q.fetch(ctx, "FetchOne", mod, keys)
	if err != nil {
		return zero, err
	}
	switch len(r) {
	case 0:
		return zero, errNoResult
	case 1:
		return r[0], nil
	}
	return zero, querydsl.ErrNonUniqueResult
}

// FetchCount counts the matching documents. Limit and offset are ignored.
func (q *Query[T]) FetchCount(ctx context.Context) (int64, error) {
	n, err := q.count(ctx, "FetchCount")
	if err != nil {
		return 0, err
	}
	return n, nil
}

// FetchResults returns a page of the matching documents with their total count.
// The page is not fetched if the count is zero.
func (q *Query[T]) FetchResults(ctx context.Context) (*querydsl.QueryResults[T], error) {
	mod := q.mixin.Metadata().Modifiers()
	total, err := q.count(ctx, "FetchResults")
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return querydsl.NewQueryResults([]T{}, 0, mod), nil
	}
	r, err := q.fetch(ctx, "FetchResults", mod, nil)
	if err != nil {
		return nil, err
	}
	return querydsl.NewQueryResults(r, total, mod), nil
}

// Iterate returns an iterator over the matching documents.
// The iterator must be closed after use.
func (q *Query[T]) Iterate(ctx context.Context, keys ...querydsl.Expression) (*Iterator[T], error) {
	start := time.Now()
	filter, err := q.Filter()
	if err != nil {
		return nil, q.wrapErr("Iterate", err)
	}
	cursor, err := q.find(ctx, filter, q.mixin.Metadata().Modifiers(), keys)
	q.trace("Iterate", filter, start, err)
	if err != nil {
		return nil, q.wrapErr("Iterate", err)
	}
	return &Iterator[T]{ctx: ctx, cursor: cursor}, nil
}

func (q *Query[T]) fetch(ctx context.Context, name string, mod querydsl.QueryModifiers, keys []querydsl.Expression) ([]T, error) {
	start := time.Now()
	filter, err := q.Filter()
	if err != nil {
		return nil, q.wrapErr(name, err)
	}
	results := make([]T, 0)
	cursor, err := q.find(ctx, filter, mod, keys)
	if err == nil {
		err = cursor.All(ctx, &results)
	}
	q.trace(name, filter, start, err)
	if err != nil {
		return nil, q.wrapErr(name, err)
	}
	return results, nil
}

func (q *Query[T]) count(ctx context.Context, name string) (int64, error) {
	start := time.Now()
	filter, err := q.Filter()
	if err != nil {
		return 0, q.wrapErr(name, err)
	}
	coll, err := q.collection()
	if err != nil {
		return 0, q.wrapErr(name, err)
	}
	n, err := coll.CountDocuments(ctx, filter)
	q.trace(name, filter, start, err)
	if err != nil {
		return 0, q.wrapErr(name, err)
	}
	return n, nil
}

func (q *Query[T]) find(ctx context.Context, filter bson.D, mod querydsl.QueryModifiers, keys []querydsl.Expression) (*mongo.Cursor, error) {
	coll, err := q.collection()
	if err != nil {
		return nil, err
	}
	opts := options.Find()
	sort, err := q.serializer.Sort(q.mixin.Metadata().OrderBy())
	if err != nil {
		return nil, err
	}
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	if mod.Limit > 0 {
		opts.SetLimit(mod.Limit)
	}
	if mod.Offset > 0 {
		opts.SetSkip(mod.Offset)
	}
	if len(keys) > 0 {
		proj, err := q.serializer.Projection(keys)
		if err != nil {
			return nil, err
		}
		opts.SetProjection(proj)
	}
	return coll.Find(ctx, filter, opts)
}

func (q *Query[T]) collection() (*mongo.Collection, error) {
	if q.coll == nil {
		return nil, ErrNilCollection
	}
	if q.readPref == nil {
		return q.coll, nil
	}
	return q.coll.Clone(options.Collection().SetReadPreference(q.readPref))
}

func (q *Query[T]) trace(name string, filter bson.D, start time.Time, err error) {
	if !q.opts.debug {
		return
	}
	var zero T
	attrs := []any{
		"name", fmt.Sprintf("%s(%T)", name, zero),
		"collection", q.coll.Name(),
		"filter", filter,
	}
	if q.opts.measureTime {
		attrs = append(attrs, "exec", time.Since(start))
	}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	q.opts.logger.Info("query executed", attrs...)
}

func (q *Query[T]) wrapErr(name string, err error) error {
	var zero T
	return fmt.Errorf("%s(%T): %w", name, zero, err)
}

// Iterator iterates over the documents of a query.
type Iterator[T any] struct {
	ctx    context.Context
	cursor *mongo.Cursor
	value  T
	err    error
}

// Next advances to the next document, reporting whether there is one.
func (it *Iterator[T]) Next() bool {
	if it.err != nil || !it.cursor.Next(it.ctx) {
		return false
	}
	var v T
	if err := it.cursor.Decode(&v); err != nil {
		it.err = err
		return false
	}
	it.value = v
	return true
}

// Value returns the current document.
func (it *Iterator[T]) Value() T { return it.value }

// Err returns the error met during iteration, if any.
func (it *Iterator[T]) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.cursor.Err()
}

// Close closes the underlying cursor.
func (it *Iterator[T]) Close() error {
	return it.cursor.Close(it.ctx)
}
