package services

import (
	"errors"
)

var (
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrGenerationFailed    = errors.New("generation failed")
	ErrNotFoundOrForbidden = errors.New("summary not found")

	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrAccountExists      = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("authentication required")
)

// PersistenceError 는 요약 저장 실패를 나타낸다. 원인 메시지가 응답에 포함된다.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "save failed: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
