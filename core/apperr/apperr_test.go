package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"catalog-service/core/apperr"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"NotFound", apperr.NotFound("store %d not found", 7), 404},
		{"Validation", apperr.Validation("store_id is required"), 422},
		{"ScopeConflict", apperr.ScopeConflict("product belongs to another store"), 409},
		{"Unauthorized", apperr.Unauthorized("token expired"), 401},
		{"Persistence", apperr.Persistence(nil, "update failed"), 500},
		{"Plain", errors.New("boom"), 500},
		{"Wrapped", fmt.Errorf("outer: %w", apperr.NotFound("gone")), 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.HTTPStatus(tt.err))
		})
	}
}

func TestIsClient(t *testing.T) {
	assert.True(t, apperr.IsClient(apperr.NotFound("x")))
	assert.True(t, apperr.IsClient(apperr.ScopeConflict("x")))
	assert.False(t, apperr.IsClient(apperr.Persistence(errors.New("dsn leak"), "x")))
	assert.False(t, apperr.IsClient(errors.New("plain")))
}

func TestPersistenceWrapsCause(t *testing.T) {
	cause := errors.New("deadlock")
	err := apperr.Persistence(cause, "soft delete product %d", 3)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "soft delete product 3", err.Message())
	assert.Contains(t, err.Error(), "deadlock")
}
