package mongodb_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ikonglong/querydsl"
	"github.com/ikonglong/querydsl/internal/testdomain"
	"github.com/ikonglong/querydsl/mongodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func userDoc(id primitive.ObjectID, first, last string, age int32) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "firstName", Value: first},
		{Key: "lastName", Value: last},
		{Key: "age", Value: age},
	}
}

func ns(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestQueryFilter(t *testing.T) {
	u := testdomain.NewQUser("user")
	a := testdomain.NewQAddress(querydsl.NewVariable("a"))

	q := mongodb.NewQuery[testdomain.User](nil).
		Where(u.FirstName.Eq("Jaakko")).
		AnyEmbedded(u.Addresses, a).On(a.Street.Eq("Aakatu"), a.PostCode.Eq("00100"))
	got, err := q.Filter()
	require.NoError(t, err)
	want := bson.D{
		{Key: "firstName", Value: "Jaakko"},
		{Key: "addresses", Value: bson.D{{Key: "$elemMatch", Value: bson.D{
			{Key: "street", Value: "Aakatu"},
			{Key: "postCode", Value: "00100"},
		}}}},
	}
	assert.Equal(t, want, got)

	// documents without common keys are merged
	q = mongodb.NewQuery[testdomain.User](nil).
		Where(u.Addresses.IsNotEmpty()).
		AnyEmbedded(u.Addresses, a).On(a.Street.Eq("Aakatu"))
	got, err = q.Filter()
	require.NoError(t, err)
	assert.Equal(t, "$nor", got[0].Key)
	assert.Equal(t, "addresses", got[1].Key)

	q = mongodb.NewQuery[testdomain.User](nil).
		Where(u.Age.Gt(18)).
		AnyEmbedded(u.Addresses, a).On(a.Street.Eq("Aakatu")).
		AnyEmbedded(u.Addresses, a).On(a.PostCode.Eq("00100"))
	got, err = q.Filter()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "$and", got[0].Key)
	assert.Len(t, got[0].Value, 3)
}

func TestQueryFilterErrors(t *testing.T) {
	u := testdomain.NewQUser("user")
	a := testdomain.NewQAddress(querydsl.NewVariable("a"))

	_, err := mongodb.NewQuery[testdomain.User](nil).AnyEmbedded(u.Addresses, a).On().Filter()
	assert.Error(t, err)

	_, err = mongodb.NewQuery[testdomain.User](nil).Where(u.FirstName.EqExpr(u.LastName)).Filter()
	assert.Error(t, err)
}

func TestQueryString(t *testing.T) {
	u := testdomain.NewQUser("user")
	q := mongodb.NewQuery[testdomain.User](nil).Where(u.FirstName.Eq("Jaakko"), u.Age.Gt(18))
	assert.Equal(t, `{"firstName":"Jaakko","age":{"$gt":18}}`, q.String())
	assert.Equal(t, `{}`, mongodb.NewQuery[testdomain.User](nil).String())
}

func TestQueryNilCollection(t *testing.T) {
	_, err := mongodb.NewQuery[testdomain.User](nil).Fetch(context.Background())
	assert.ErrorIs(t, err, mongodb.ErrNilCollection)
}

func TestQueryExecution(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	u := testdomain.NewQUser("user")
	id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()

	mt.Run("fetch", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			userDoc(id1, "Jaakko", "Jantunen", 20),
			userDoc(id2, "Jaana", "Aakkonen", 30),
		))
		got, err := mongodb.NewQuery[testdomain.User](mt.Coll).
			Where(u.LastName.EndsWith("nen")).
			OrderBy(u.Age.Asc()).
			Fetch(context.Background())
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, id1, got[0].ID)
		assert.Equal(mt, "Jaana", got[1].FirstName)
		assert.Equal(mt, 30, got[1].Age)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
		sort := evt.Command.Lookup("sort").Document()
		assert.Equal(mt, int32(1), sort.Lookup("age").Int32())
	})

	mt.Run("fetch keys", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: id1}, {Key: "firstName", Value: "Jaakko"}},
		))
		got, err := mongodb.NewQuery[testdomain.User](mt.Coll).
			Limit(5).
			Offset(10).
			Fetch(context.Background(), u.FirstName)
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Empty(mt, got[0].LastName)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		proj := evt.Command.Lookup("projection").Document()
		assert.Equal(mt, int32(1), proj.Lookup("firstName").Int32())
		assert.Equal(mt, int64(5), evt.Command.Lookup("limit").AsInt64())
		assert.Equal(mt, int64(10), evt.Command.Lookup("skip").AsInt64())
	})

	mt.Run("fetch first", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			userDoc(id1, "Jaakko", "Jantunen", 20),
		))
		q := mongodb.NewQuery[testdomain.User](mt.Coll).Where(u.FirstName.StartsWith("Jaa"))
		got, err := q.FetchFirst(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, "Jaakko", got.FirstName)
		assert.Zero(mt, q.Metadata().Modifiers().Limit)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))
		_, err = q.FetchFirst(context.Background())
		assert.True(mt, errors.Is(err, querydsl.ErrNoResult))
		assert.True(mt, errors.Is(err, mongo.ErrNoDocuments))
	})

	mt.Run("fetch one", func(mt *mtest.T) {
		q := mongodb.NewQuery[testdomain.User](mt.Coll).Where(u.LastName.Eq("Jantunen"))

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			userDoc(id1, "Jaakko", "Jantunen", 20),
		))
		got, err := q.FetchOne(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, id1, got.ID)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			userDoc(id1, "Jaakko", "Jantunen", 20),
			userDoc(id2, "Jaana", "Jantunen", 30),
		))
		_, err = q.FetchOne(context.Background())
		assert.ErrorIs(mt, err, querydsl.ErrNonUniqueResult)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))
		_, err = q.FetchOne(context.Background())
		assert.ErrorIs(mt, err, querydsl.ErrNoResult)
	})

	mt.Run("fetch count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(4)}},
		))
		n, err := mongodb.NewQuery[testdomain.User](mt.Coll).
			Where(u.Age.Goe(18)).
			Limit(1).
			FetchCount(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), n)
	})

	mt.Run("fetch results", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, userDoc(id2, "Jaana", "Aakkonen", 30)),
		)
		r, err := mongodb.NewQuery[testdomain.User](mt.Coll).
			Restrict(querydsl.QueryModifiers{Limit: 2, Offset: 2}).
			FetchResults(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), r.Total)
		assert.Equal(mt, int64(2), r.Limit)
		assert.Equal(mt, int64(2), r.Offset)
		require.Len(mt, r.Results, 1)
		assert.Equal(mt, "Jaana", r.Results[0].FirstName)
	})

	mt.Run("fetch results empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))
		r, err := mongodb.NewQuery[testdomain.User](mt.Coll).FetchResults(context.Background())
		require.NoError(mt, err)
		assert.Zero(mt, r.Total)
		assert.True(mt, r.IsEmpty())
	})

	mt.Run("iterate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			userDoc(id1, "Jaakko", "Jantunen", 20),
			userDoc(id2, "Jaana", "Aakkonen", 30),
		))
		it, err := mongodb.NewQuery[testdomain.User](mt.Coll).Iterate(context.Background())
		require.NoError(mt, err)
		var names []string
		for it.Next() {
			names = append(names, it.Value().FirstName)
		}
		require.NoError(mt, it.Err())
		require.NoError(mt, it.Close())
		assert.Equal(mt, []string{"Jaakko", "Jaana"}, names)
	})

	mt.Run("read preference", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			userDoc(id1, "Jaakko", "Jantunen", 20),
		))
		got, err := mongodb.NewQuery[testdomain.User](mt.Coll).
			SetReadPreference(readpref.PrimaryPreferred()).
			Fetch(context.Background())
		require.NoError(mt, err)
		assert.Len(mt, got, 1)
	})

	mt.Run("server error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad query",
			Name:    "BadValue",
		}))
		_, err := mongodb.NewQuery[testdomain.User](mt.Coll).Fetch(context.Background())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "Fetch(testdomain.User)")
	})

	mt.Run("debug", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))
		buf := new(bytes.Buffer)
		logger := slog.New(slog.NewTextHandler(buf, nil))
		_, err := mongodb.NewQuery[testdomain.User](mt.Coll,
			mongodb.WithDebug(), mongodb.WithMeasureTime(), mongodb.WithLogger(logger),
		).Where(u.FirstName.Eq("Jaakko")).Fetch(context.Background())
		require.NoError(mt, err)
		assert.Contains(mt, buf.String(), "query executed")
		assert.Contains(mt, buf.String(), "Fetch(testdomain.User)")
		assert.Contains(mt, buf.String(), "exec=")
	})
}
