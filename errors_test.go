package simpleprefs

import (
	"testing"
)

func TestErrorVariables(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"ErrNullContext", ErrNullContext, "store context is nil"},
		{"ErrInvalidKey", ErrInvalidKey, "invalid preference key"},
		{"ErrInvalidStoreName", ErrInvalidStoreName, "invalid store name"},
		{"ErrInvalidType", ErrInvalidType, "invalid value type"},
		{"ErrInvalidValue", ErrInvalidValue, "invalid preference value"},
		{"ErrTypeMismatch", ErrTypeMismatch, "stored value has a different type"},
		{"ErrNotFound", ErrNotFound, "preference not found"},
		{"ErrStorageUnavailable", ErrStorageUnavailable, "storage backend unavailable"},
		{"ErrCacheUnavailable", ErrCacheUnavailable, "cache backend unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected error message '%s', got '%s'", tt.expected, tt.err.Error())
			}
		})
	}
}
