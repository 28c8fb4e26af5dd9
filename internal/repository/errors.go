// Package repository defines error types that are reused across multiple
// repositories. These sentinel values let handlers distinguish failure
// scenarios without parsing driver error text. Not-found conditions on
// single-row lookups are reported as sql.ErrNoRows by convention; the
// sentinels below cover the cases where that is ambiguous.
package repository

import "errors"

// ErrHotelNotFound is returned when a hotel id does not resolve while
// pricing a stay. Handlers translate this into a 400 response because
// the id came from the request body.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrEmailExists is returned when registering a user whose email is
// already taken.
var ErrEmailExists = errors.New("email already exists")
