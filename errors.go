// errors.go
package simpleprefs

import "errors"

var (
	ErrNullContext        = errors.New("store context is nil")
	ErrInvalidKey         = errors.New("invalid preference key")
	ErrInvalidStoreName   = errors.New("invalid store name")
	ErrInvalidType        = errors.New("invalid value type")
	ErrInvalidValue       = errors.New("invalid preference value")
	ErrTypeMismatch       = errors.New("stored value has a different type")
	ErrNotFound           = errors.New("preference not found")
	ErrStorageUnavailable = errors.New("storage backend unavailable")
	ErrCacheUnavailable   = errors.New("cache backend unavailable")
)
