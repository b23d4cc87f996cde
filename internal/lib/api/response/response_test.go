package response

import (
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

type sample struct {
	Title    string `validate:"required"`
	Username string `validate:"min=3"`
	Location string `validate:"max=5"`
	Capacity int    `validate:"gt=0"`
	Seats    int    `validate:"lte=10"`
	Email    string `validate:"omitempty,email"`
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := validator.New().Struct(sample{
		Username: "ab",
		Location: "too long",
		Email:    "not-an-email",
		Seats:    11,
	})
	require.Error(t, err)

	var validateErr validator.ValidationErrors
	require.True(t, errors.As(err, &validateErr))

	resp := ValidationError(validateErr)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t,
		"field Title is a required field, "+
			"field Username must be at least 3, "+
			"field Location must be at most 5, "+
			"field Capacity must be greater than 0, "+
			"field Seats must be at most 10, "+
			"field Email is not valid",
		resp.Error,
	)
}

func TestEnvelopes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Response{Status: "OK"}, OK())
	assert.Equal(t, Response{Status: "Error", Error: "event not found"}, Error("event not found"))
}
