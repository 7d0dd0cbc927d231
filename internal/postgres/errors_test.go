package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		code pq.ErrorCode
		want error
	}{
		{name: "unique violation", code: "23505", want: ErrConflict},
		{name: "serialization failure", code: "40001", want: ErrConflict},
		{name: "deadlock", code: "40P01", want: ErrConflict},
		{name: "foreign key violation", code: "23503", want: ErrForeignKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapError(&pq.Error{Code: tt.code})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMapErrorPassesThroughUnknownErrors(t *testing.T) {
	plain := errors.New("connection refused")
	assert.Equal(t, plain, MapError(plain))

	wrapped := fmt.Errorf("query loans: %w", &pq.Error{Code: "23505"})
	assert.ErrorIs(t, MapError(wrapped), ErrConflict)

	assert.NoError(t, MapError(nil))
}
