// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver error strings themselves. Not-found conditions are
// reported as sql.ErrNoRows throughout.
package repository

import "errors"

// ErrEmailExists is returned when an insert collides with the unique key
// on users.email. Handlers translate this into an HTTP 400 response.
var ErrEmailExists = errors.New("email already exists")

// ErrPhoneExists is returned when an insert collides with the unique key
// on users.phone. Handlers translate this into an HTTP 400 response.
var ErrPhoneExists = errors.New("phone number already exists")
