package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create post: %w", Invalid("text", "this field may not be blank"))

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "text", ve.Field)
	assert.Equal(t, "text: this field may not be blank", ve.Error())
	assert.Equal(t, "cannot follow yourself", Invalid("", "cannot follow yourself").Error())
}

func TestNotFound(t *testing.T) {
	err := NotFound("group")
	assert.Equal(t, "group not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}
