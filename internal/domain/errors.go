package domain

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrPlaceNotFound     = errors.New("place not found")
	ErrInvalidEvent      = errors.New("invalid interaction event")
	ErrInvalidPagination = errors.New("invalid pagination")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
