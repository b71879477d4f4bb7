package mcp

import "errors"

// ErrMissingQueryService is returned when the query service port is not set.
var ErrMissingQueryService = errors.New("query service is required")
