// Package apierror builds the problem+json errors returned by the control API.
package apierror

import (
	"errors"

	"github.com/Alia5/overdrive/apitypes"
)

func ErrBadRequest(detail string) apitypes.ApiError {
	return apitypes.ApiError{Status: 400, Title: "Bad Request", Detail: detail}
}
func ErrNotFound(detail string) apitypes.ApiError {
	return apitypes.ApiError{Status: 404, Title: "Not Found", Detail: detail}
}
func ErrInternal(detail string) apitypes.ApiError {
	return apitypes.ApiError{Status: 500, Title: "Internal Server Error", Detail: detail}
}
func ErrUnauthorized(detail string) apitypes.ApiError {
	return apitypes.ApiError{Status: 401, Title: "Unauthorized", Detail: detail}
}

// WrapError normalizes any error into apitypes.ApiError. Wrapped API errors
// keep their status.
func WrapError(err error) apitypes.ApiError {
	var pae *apitypes.ApiError
	if errors.As(err, &pae) {
		return *pae
	}
	var ae apitypes.ApiError
	if errors.As(err, &ae) {
		return ae
	}
	return ErrInternal(err.Error())
}
