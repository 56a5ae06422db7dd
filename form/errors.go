package form

import "errors"

var (
	ErrUnknownActivity   = errors.New("unknown activity")
	ErrDuplicateActivity = errors.New("duplicate activity id")
	ErrActivityDisabled  = errors.New("activity conflicts with a checked activity")
	ErrUnknownOption     = errors.New("unknown option")
	ErrFieldDisabled     = errors.New("field is disabled")
)
