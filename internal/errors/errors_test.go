package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "error without cause",
			err:      NewNotFoundError("cleaned sales CSV"),
			expected: "[NOT_FOUND] cleaned sales CSV not found",
		},
		{
			name:     "error with cause",
			err:      NewParsingError("bad date column", fmt.Errorf("cannot parse %q", "13/45/2020")),
			expected: `[PARSING] bad date column: cannot parse "13/45/2020"`,
		},
		{
			name:     "storage error",
			err:      NewStorageError("failed to create output file", errors.New("permission denied")),
			expected: "[STORAGE] failed to create output file: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewStorageError("write failed", cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppErrorWithContext(t *testing.T) {
	err := NewFeatureError("decomposition", "series too short", nil).
		WithContext("observations", 8)

	assert.Equal(t, "decomposition", err.Context["step"])
	assert.Equal(t, 8, err.Context["observations"])
	assert.Equal(t, ErrTypeFeature, err.Type)
}
