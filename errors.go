// errors.go - sentinel errors exposed by the rainbow package
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package rainbow

import (
	"errors"
)

var (
	// ErrTooSmall is returned when there isn't enough data to unmarshal
	// a structure.
	ErrTooSmall = errors.New("rainbow: not enough data to unmarshal")

	// ErrEmptyTable is returned when attempting to save a table with no rows.
	ErrEmptyTable = errors.New("rainbow: refusing to save an empty table")

	// ErrBadMagic is returned when a table file does not start with a
	// recognized magic number.
	ErrBadMagic = errors.New("rainbow: unrecognized file magic")

	// ErrSizeMismatch is returned when a table file's declared row count
	// disagrees with the amount of data actually present.
	ErrSizeMismatch = errors.New("rainbow: declared size does not match file contents")

	// ErrLengthMismatch is returned when a declared password length
	// disagrees with a stored seed's actual length.
	ErrLengthMismatch = errors.New("rainbow: declared password length does not match stored seed")

	// ErrUnknownHash is returned when a table declares a hash function
	// id or name this engine does not support.
	ErrUnknownHash = errors.New("rainbow: unknown hash function")

	// ErrBadParams is returned for invalid build parameters (L=0, C<0, etc).
	ErrBadParams = errors.New("rainbow: invalid table parameters")

	// ErrClosed names the condition of using a Table after Close. Table
	// methods do not check for it, and no function in this package
	// returns it.
	ErrClosed = errors.New("rainbow: table is closed")
)
