package status

import "errors"

var (
	ErrStatusNotFound = errors.New("status not found")
	ErrNotOwner       = errors.New("only the owner may delete a status")
	ErrEmptyStatus    = errors.New("status needs a caption or media")
	ErrEmptyEmoji     = errors.New("reaction emoji cannot be empty")
)
