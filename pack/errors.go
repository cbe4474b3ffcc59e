package pack

import "errors"

var (
	// ErrInvalidContainer indicates the container's usable footprint
	// (length/width after margins) is not strictly positive, or its corner
	// radius exceeds min(length, width)/2.
	ErrInvalidContainer = errors.New("pack: container usable footprint must be positive and corner radius must fit")
	// ErrDuplicateBoxID indicates two or more input boxes share an identifier.
	ErrDuplicateBoxID = errors.New("pack: box identifiers must be unique within a request")
	// ErrNonPositiveDimension indicates a box or container dimension is not
	// strictly positive.
	ErrNonPositiveDimension = errors.New("pack: dimensions must be strictly positive")
)
