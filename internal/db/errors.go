package db

import "errors"

// ErrNotFound is returned when a document does not exist in Firestore.
// Repositories wrap it so callers can test with errors.Is.
var ErrNotFound = errors.New("document not found")

// ErrCapacityExhausted is returned by the transactional slot reservations when
// the organization's counter has already reached its plan limit.
var ErrCapacityExhausted = errors.New("capacity exhausted for plan limit")
