package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/employee-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.Kind
	}{
		{"sentinel not found", domain.ErrEmployeeNotFound, domain.KindNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", domain.NotFound(errors.New("boom"))), domain.KindNotFound},
		{"validation", domain.Validation("bad id", nil), domain.KindValidation},
		{"unauthorized", domain.ErrInvalidAPIKey, domain.KindUnauthorized},
		{"plain error", errors.New("connection reset"), domain.KindUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.KindOf(tt.err))
		})
	}
}

func TestNotFoundMatchesSentinel(t *testing.T) {
	cause := errors.New("update target missing")
	err := domain.NotFound(cause)

	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, domain.Validation("x", nil), domain.ErrEmployeeNotFound)
}

func TestEmployeeIsDraft(t *testing.T) {
	assert.True(t, (&domain.Employee{Name: "Peter Kwan"}).IsDraft())
	assert.False(t, (&domain.Employee{ID: 7}).IsDraft())
}
