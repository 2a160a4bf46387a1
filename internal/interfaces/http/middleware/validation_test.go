package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type roleRequest struct {
		Role string `json:"role" binding:"omitempty,role"`
	}

	assert.NoError(t, v.Struct(roleRequest{Role: "admin"}))
	assert.NoError(t, v.Struct(roleRequest{Role: "client"}))
	assert.NoError(t, v.Struct(roleRequest{Role: ""}))
	assert.Error(t, v.Struct(roleRequest{Role: "superuser"}))
}

func TestValidatorUsesJSONFieldNames(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type namedRequest struct {
		FirstName string `json:"first_name" binding:"required"`
	}

	err := v.Struct(namedRequest{})
	require.Error(t, err)

	verrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	require.Len(t, verrs, 1)
	assert.Equal(t, "first_name", verrs[0].Field())
}
