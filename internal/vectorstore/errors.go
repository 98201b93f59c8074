package vectorstore

import "errors"

// ErrDimensionMismatch is returned whenever two vectors being compared (or
// a query vector and a database's established dimension) have different
// lengths.
var ErrDimensionMismatch = errors.New("vectorstore: dimension mismatch")

// ErrInvalidOperation is returned for operations that are mathematically
// undefined, such as cosine similarity or cosine distance against a
// zero-norm vector.
var ErrInvalidOperation = errors.New("vectorstore: invalid operation")

// ErrIndexError is reserved for LSH index failures other than a dimension
// mismatch. No operation in this package currently returns it; in
// particular, LSHIndex.Remove of an id that was never inserted is a no-op
// that returns nil.
var ErrIndexError = errors.New("vectorstore: index error")
