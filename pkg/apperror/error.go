package apperror

import (
	"fmt"

	"github.com/pkg/errors"
)

type Error struct {
	Raw       error
	ErrorCode string
	Message   string
}

func NewError(err error, code string, msg string) Error {
	return Error{
		Raw:       err,
		ErrorCode: code,
		Message:   msg,
	}
}

func (e Error) Error() string {
	if e.Raw == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %v", e.Message, e.Raw)
}

func (e Error) Unwrap() error {
	return e.Raw
}

func hasCode(err error, code string) bool {
	var appErr Error
	if !errors.As(err, &appErr) {
		return false
	}

	return appErr.ErrorCode == code
}
