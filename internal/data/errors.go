package data

import "errors"

// ErrNotFound is returned by mutations that matched no row. Lookups
// return (nil, nil) for missing rows instead; callers that need a 404
// on mutation check for this sentinel with errors.Is.
var ErrNotFound = errors.New("not found")
