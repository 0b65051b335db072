package management

import "errors"

var (
	// ErrMalformedObjectName is returned when a name does not follow the
	// domain:key=value[,key=value] syntax or is a pattern.
	ErrMalformedObjectName = errors.New("management: malformed object name")

	// ErrInstanceAlreadyExists is returned when registering a name that is
	// already registered.
	ErrInstanceAlreadyExists = errors.New("management: instance already exists")

	// ErrInstanceNotFound is returned when a name is not registered.
	ErrInstanceNotFound = errors.New("management: instance not found")

	// ErrPropertyNotFound is returned by Client.Property when the remote
	// environment has no such key.
	ErrPropertyNotFound = errors.New("management: property not found")

	// ErrInvalidPropertyKey is returned by Client.Property when the remote
	// endpoint rejects the key.
	ErrInvalidPropertyKey = errors.New("management: invalid property key")
)
