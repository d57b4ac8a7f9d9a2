package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound  = errors.New("db: key not found")
	ErrNotConnected = errors.New("db: not connected")
	ErrUnsupported  = errors.New("db: unsupported query")
)

// Op names the failing store operation for error context. Document ops follow
// the Mongo command names, cache ops the Redis ones.
const (
	OpPing      = "ping"
	OpFind      = "find"
	OpCount     = "count"
	OpAggregate = "aggregate"
	OpInsert    = "insert"
	OpDecode    = "decode"
	OpGet       = "GET"
	OpSet       = "SET"
	OpScan      = "SCAN"
	OpUnlink    = "UNLINK"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
