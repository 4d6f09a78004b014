package models

import "errors"

var (
	// ErrInvalidStatus возвращается при некорректном статусе заявки
	ErrInvalidStatus = errors.New("invalid entry status")
)
