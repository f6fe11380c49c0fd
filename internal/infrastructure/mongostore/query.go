package mongostore

import (
	"fmt"
	"time"

	"github.com/injapanfood/pos-api/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// createdBetween adds start <= created_at < end to filter. Nil bounds are open.
func createdBetween(filter bson.M, start, end *time.Time) {
	if start == nil && end == nil {
		return
	}
	rng := bson.M{}
	if start != nil {
		rng["$gte"] = start.UTC()
	}
	if end != nil {
		rng["$lt"] = end.UTC()
	}
	filter["created_at"] = rng
}

// objectID parses a hex id; ok is false for ids this store cannot have issued
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// pageOptions applies offset pagination in newest-first order
func pageOptions(params *pagination.PaginationParams) *options.FindOptions {
	params.Validate()
	return options.Find().
		SetSort(newestFirst).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.PerPage))
}

// keyset narrows filter to the rows after cursor in the requested direction and
// returns the matching find options. One extra row is fetched.
func keyset(filter bson.M, params *pagination.CursorParams, cursor *pagination.Cursor) (bson.M, *options.FindOptions, error) {
	opts := options.Find().SetLimit(int64(params.Limit + 1)).SetSort(newestFirst)
	if cursor == nil {
		return filter, opts, nil
	}

	oid, ok := objectID(cursor.ID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown id %q", pagination.ErrInvalidCursor, cursor.ID)
	}

	op := "$lt"
	if params.Direction == pagination.CursorDirectionPrev {
		op = "$gt"
		opts.SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	}
	at := cursor.CreatedAt.UTC()

	after := bson.M{"$or": bson.A{
		bson.M{"created_at": bson.M{op: at}},
		bson.M{"created_at": at, "_id": bson.M{op: oid}},
	}}
	if len(filter) == 0 {
		return after, opts, nil
	}
	return bson.M{"$and": bson.A{filter, after}}, opts, nil
}
