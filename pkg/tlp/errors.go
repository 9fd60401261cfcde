package tlp

import "errors"

// ErrInvalidArgument indicates a lookup or apply was attempted with None
// or a value outside the defined levels.
var ErrInvalidArgument = errors.New("invalid classification")
