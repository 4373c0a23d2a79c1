package apperror

import "errors"

var (
	ErrRoomFull     = errors.New("room is full")
	ErrRoomNotFound = errors.New("room not found")
	ErrUnknownRoom  = errors.New("unknown room")
	ErrIllegalMove  = errors.New("illegal move")
)
