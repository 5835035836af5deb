package db

import "errors"

// ErrKeyNotFound is returned by KVStore.Get for a missing key.
var ErrKeyNotFound = errors.New("db: key not found")

// Op names an operation for error context. Redis ops use command names.
const (
	OpPing    = "PING"
	OpGet     = "GET"
	OpSet     = "SET"
	OpConnect = "CONNECT"
	OpQuery   = "QUERY"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
