package errors

import "fmt"

func InvalidParamsErr(err error) error {
	return E(Invalid, "invalid params", err)
}

func ValidationFailedErr(err error) error {
	return E(Invalid, "validation failed", err)
}

func EmptyParamErr(field string) error {
	ve := ValidationErrs()
	ve.Add(field, "cannot be empty")
	return E(Invalid, "validation failed", ve.Err())
}

// PermissionDeniedErr rejects an operation that needs the admin capability
func PermissionDeniedErr(op string) error {
	return E(PermissionDenied, fmt.Sprintf("%s requires admin capability", op), nil)
}

// RemoteErr wraps a failure talking to the remote transaction store
func RemoteErr(op string, err error) error {
	return E(Unavailable, fmt.Sprintf("remote store %s failed", op), err)
}

// CacheErr wraps a failure talking to the local cache store
func CacheErr(op string, err error) error {
	return E(Unavailable, fmt.Sprintf("cache store %s failed", op), err)
}
