package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name   string `validate:"required"`
	Amount int    `validate:"gt=0"`
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	t.Run("should accept valid struct", func(t *testing.T) {
		assert.NoError(t, v.Validate(sampleRequest{Name: "ticket", Amount: 1}))
	})

	t.Run("should describe every failed field", func(t *testing.T) {
		// when
		err := v.Validate(sampleRequest{})

		// then
		require.Error(t, err)
		assert.Equal(t, "Name: required; Amount: gt=0", ValidationDetails(err))
	})
}
