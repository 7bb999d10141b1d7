package apierror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Alia5/overdrive/apitypes"
	apierror "github.com/Alia5/overdrive/internal/server/api/error"
	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apitypes.ApiError
	}{
		{"value", apierror.ErrNotFound("x"), apitypes.ApiError{Status: 404, Title: "Not Found", Detail: "x"}},
		{"pointer", &apitypes.ApiError{Status: 401, Title: "Unauthorized"}, apitypes.ApiError{Status: 401, Title: "Unauthorized"}},
		{"wrapped", fmt.Errorf("layer: %w", apierror.ErrBadRequest("bad op")), apitypes.ApiError{Status: 400, Title: "Bad Request", Detail: "bad op"}},
		{"plain", errors.New("boom"), apitypes.ApiError{Status: 500, Title: "Internal Server Error", Detail: "boom"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apierror.WrapError(tt.err))
		})
	}
}

func TestApiErrorString(t *testing.T) {
	assert.Equal(t, "400 Bad Request: bad op", apierror.ErrBadRequest("bad op").Error())
	assert.Equal(t, "unknown error", apitypes.ApiError{}.Error())
}
