package core

import (
	"errors"
)

var (
	// ErrProviderFault indicates the spatial provider failed or panicked
	// while extracting a snapshot.
	ErrProviderFault = errors.New("spatial provider fault")
	// ErrInvalidGeometry indicates the provider returned empty or
	// inconsistent vertex/index buffers.
	ErrInvalidGeometry = errors.New("invalid geometry buffers")
	ErrUnknown         = errors.New("unknown")
)
