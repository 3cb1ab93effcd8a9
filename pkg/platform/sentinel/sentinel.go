package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Settings backends and stores return
// these (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: record does not exist in the store
//   - ErrInvalidState: record is in the wrong lifecycle state for the operation
//   - ErrUnavailable: backend temporarily unavailable
//   - ErrClosed: backend was closed by its owner
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
	ErrClosed       = errors.New("closed")
)
