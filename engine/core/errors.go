package core

import (
	"errors"
)

var (
	ErrBackendUnsupported = errors.New("graphics backend not supported")
	ErrNoWindow           = errors.New("no window to create a graphics context on")
	ErrDriverLoad         = errors.New("failed to load graphics driver functions")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrNotInitialized     = errors.New("not initialized")
	ErrAssetNotFound      = errors.New("asset not found")
	ErrUnknown            = errors.New("unknown")
)
