package graph

import "errors"

// ErrInvalidReference is returned when an operation names a vertex handle that
// is not live in the graph, either because it never existed or because the
// vertex has been removed.
var ErrInvalidReference = errors.New("invalid vertex reference")
