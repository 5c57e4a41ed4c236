package query

/*
	Package query provides the interface for querying mongo db. It is a thin
	wrap over https://github.com/mongodb/mongo-go-driver; see
	https://godoc.org/go.mongodb.org/mongo-driver/mongo for details of each
	underlying call.
*/

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")
)

// Mongo abstracts the mongo layer.
type Mongo interface {
	// Insert inserts a new document to the table
	Insert(c ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne gets data from the table
	FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count returns counting for matched entry in the table
	Count(c ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Upsert updates an entry if the selector already exists, inserts it
	// otherwise.
	Upsert(c ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Search sorts order by `sort` argument (ex "startTime" ascending, or
	// "-startTime" descending). If `sort` is "", the sort action is skipped
	// and mongo does not guarantee the order of query results.
	Search(c ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// Remove removes an entry from the table.
	// Returns ErrNotFound if selector does not match any documents.
	Remove(c ctx.Ctx, table domain.Table, selector interface{}) error

	// Patch patches an entry, returns ErrNotFound if the selector does not
	// match any documents.
	Patch(c ctx.Ctx, table domain.Table, selector, update interface{}) error

	// CustomPatch patches an entry with a customized mongo update document.
	// Returns ErrNotFound if upsert is false and selector does not match any
	// documents.
	CustomPatch(c ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error

	// Increment increases a field number. If the entry does not exist, it is
	// inserted.
	Increment(c ctx.Ctx, table domain.Table, selector, result interface{}, field string, inc interface{}) error

	// RunWithTransaction executes `run` inside one mongo transaction; every
	// operation issued through the passed ctx is committed atomically or not
	// at all.
	RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error
}
