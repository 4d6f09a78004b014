package memberservice

import "errors"

var (
	// ErrMemberNotFound возвращается, когда член клуба не найден
	ErrMemberNotFound = errors.New("memberservice: member not found")

	// ErrInvalidResponse возвращается при некорректном ответе MemberService
	ErrInvalidResponse = errors.New("memberservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("memberservice: internal error")
)
