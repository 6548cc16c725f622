package dbpkg

import "github.com/lib/pq"

// SQLSTATE codes that abort the surrounding transaction but are safe to
// restart from scratch.
const (
	serializationFailureCode = "40001"
	deadlockDetectedCode     = "40P01"
)

// IsSerializationFailure reports whether the error is a serialization failure
// or a detected deadlock, both of which warrant retrying the whole transaction.
func IsSerializationFailure(pqErr *pq.Error) bool {
	return pqErr.Code == serializationFailureCode || pqErr.Code == deadlockDetectedCode
}
