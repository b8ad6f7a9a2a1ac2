package core

// Error codes
const (
	ErrRoundNotFound     = "ROUND_NOT_FOUND"
	ErrShootNotFound     = "SHOOT_NOT_FOUND"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInvalidGeometry   = "INVALID_GEOMETRY"
	ErrInsufficientData  = "INSUFFICIENT_DATA"
	ErrInvalidArrow      = "INVALID_ARROW"
	ErrMatchInconsistent = "MATCH_INCONSISTENT"
	ErrStorage           = "STORAGE_ERROR"
	ErrInternalError     = "INTERNAL_ERROR"
)
