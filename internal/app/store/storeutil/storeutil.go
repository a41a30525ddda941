// internal/app/store/storeutil/storeutil.go

// Package storeutil holds small query helpers shared by the Mongo stores.
package storeutil

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Page size bounds for queue and ledger listings. A caller-supplied limit
// outside these falls back to the default or the cap.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Paginate builds find options for a 1-based page of results, clamping the
// page size so no endpoint can request an unbounded scan.
func Paginate(limit, page int64) *options.FindOptions {
	switch {
	case limit <= 0:
		limit = defaultPageSize
	case limit > maxPageSize:
		limit = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return options.Find().SetLimit(limit).SetSkip((page - 1) * limit)
}

// Newest sorts descending on field, for newest-first listings.
func Newest(field string) bson.D {
	return bson.D{{Key: field, Value: -1}}
}
