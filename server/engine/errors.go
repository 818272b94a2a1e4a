package engine

import "errors"

var (
	ErrMalformedCard        = errors.New("engine: malformed card token")
	ErrInvalidBoardLength   = errors.New("engine: invalid board length")
	ErrDuplicateCard        = errors.New("engine: duplicate card")
	ErrCardsAlreadyDealt    = errors.New("engine: hole cards already dealt")
	ErrIllegalAmount        = errors.New("engine: illegal amount")
	ErrInvalidAction        = errors.New("engine: action not available in current state")
	ErrUnknownPlayer        = errors.New("engine: unknown or folded player")
	ErrInvalidSeatCount     = errors.New("engine: seat count must be between 2 and 6")
	ErrHandAlreadyCompleted = errors.New("engine: hand already completed")
	ErrHandNotFound         = errors.New("engine: hand not found")
)
