package csvio

import "errors"

var (
	// ErrMissingColumn indicates the header lacks one of the required
	// id/lower/upper/size columns (under any accepted alias).
	ErrMissingColumn = errors.New("csvio: missing required column")

	// ErrDuplicateColumn indicates two header columns map to the same
	// logical field (e.g. two spellings of "upper" in one header).
	ErrDuplicateColumn = errors.New("csvio: duplicate column")

	// ErrRowFieldCount indicates a data row has a different number of
	// fields than the header.
	ErrRowFieldCount = errors.New("csvio: row has wrong number of fields")

	// ErrUnparsableField indicates a cell could not be parsed as the
	// numeric or token format its column requires.
	ErrUnparsableField = errors.New("csvio: unparsable field")
)
