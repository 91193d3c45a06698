package mongo

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

func ptr[T any](v T) *T { return &v }

func TestBuildFilter(t *testing.T) {
	t.Run("关键字转义并忽略大小写", func(t *testing.T) {
		filter := buildFilter([]book.Condition{
			{Field: book.FieldTitle, Op: book.OpContains, Text: "C++ (2nd)"},
		})

		re, ok := filter["title"].(primitive.Regex)
		require.True(t, ok)
		assert.Equal(t, `C\+\+ \(2nd\)`, re.Pattern)
		assert.Equal(t, "i", re.Options)
	})

	t.Run("同一字段的上下界合并", func(t *testing.T) {
		q, err := book.BuildQuery(book.Filter{
			Price: book.Range{Min: ptr(10.0), Max: ptr(20.0)},
		}, book.DefaultPagination())
		require.NoError(t, err)

		filter := buildFilter(q.Conditions)
		assert.Equal(t, bson.M{"price": bson.M{"$gte": 10.0, "$lte": 20.0}}, filter)
	})

	t.Run("无条件时返回空文档", func(t *testing.T) {
		assert.Equal(t, bson.M{}, buildFilter(nil))
	})

	t.Run("多维度组合", func(t *testing.T) {
		q, err := book.BuildQuery(book.Filter{
			Author: "herbert",
			Rating: book.Range{Min: ptr(4.0)},
		}, book.DefaultPagination())
		require.NoError(t, err)

		filter := buildFilter(q.Conditions)
		assert.Len(t, filter, 2)
		assert.Equal(t, bson.M{"$gte": 4.0}, filter["rating"])
		assert.IsType(t, primitive.Regex{}, filter["author"])
	})
}

func TestBuildSort(t *testing.T) {
	q, err := book.BuildNewestQuery(5)
	require.NoError(t, err)

	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, buildSort(q.Sort))

	q, err = book.BuildQuery(book.Filter{}, book.DefaultPagination())
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}, buildSort(q.Sort))
}

func TestIsDuplicateError(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}

	assert.True(t, isDuplicateError(dup))
	assert.False(t, isDuplicateError(errors.New("connection refused")))
	assert.False(t, isDuplicateError(nil))
}

func TestSetFields(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := book.CategoryFantasy

	set := setFields(book.Fields{Title: ptr("Dune"), Category: &cat}, ts)

	assert.Equal(t, bson.M{"title": "Dune", "category": "Fantasy", "updatedAt": ts}, set)
	assert.NotContains(t, set, "owner")
}
