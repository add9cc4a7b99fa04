package introspect

import "errors"

var (
	ErrUnsupportedProvider = errors.New("unsupported database provider")
	ErrTableNotFound       = errors.New("table not found")
	ErrIntrospectionFailed = errors.New("database introspection failed")
)
