package service

import "errors"

// ErrUnknownProject indicates a prior-project id with no stored
// description.
var ErrUnknownProject = errors.New("unknown project id")
