package activities

import "errors"

// ErrLengthMismatch is returned when SetAttribute resolves keys and values of different lengths.
var ErrLengthMismatch = errors.New("keys and values differ in length")
