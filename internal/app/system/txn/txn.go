// Package txn runs multi-document Mongo operations atomically where the
// server supports transactions, and falls back to plain execution where it
// does not (standalone mongod, DocumentDB without a replica set).
//
// Moderation decisions use this so a submission status flip and its listing
// upsert (or retraction) commit together.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Func receives the context to use for all database operations inside the
// unit of work. It is a mongo.SessionContext when a transaction is active.
type Func func(ctx context.Context) error

// Run executes fn inside a transaction when possible. If the server rejects
// transactions, fn is re-run without one; callers keep best-effort atomicity
// on deployments that cannot provide the real thing.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn Func) error {
	session, err := db.Client().StartSession()
	if err != nil {
		if log != nil {
			log.Warn("failed to start session, running without transaction", zap.Error(err))
		}
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil {
		if IsNotSupported(err) {
			if log != nil {
				log.Warn("transactions not supported, running without transaction", zap.Error(err))
			}
			return fn(ctx)
		}
		return err
	}
	return nil
}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions.
//
// Known command error codes:
//   - 20: transaction numbers require a replica set member or mongos
//   - 51: IllegalOperation
//   - 263: operation not allowed in a multi-document transaction
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		switch cmdErr.Code {
		case 20, 51, 263:
			return true
		}
	}

	errStr := strings.ToLower(err.Error())
	keywords := []string{
		"transaction",
		"replica set",
		"session",
		"not supported",
		"illegal operation",
	}

	matches := 0
	for _, kw := range keywords {
		if strings.Contains(errStr, kw) {
			matches++
		}
	}
	// Two matches keeps unrelated errors from tripping the fallback.
	return matches >= 2
}
