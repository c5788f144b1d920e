package apperror

import "fmt"

const (
	CallbackFailedCode = "500004"
)

// 500 Callback failure
func ErrCallbackFailed(event, callback string, err error) Error {
	return NewError(err, CallbackFailedCode, fmt.Sprintf("Callback %s failed on event %s", callback, event))
}

func IsCallbackFailed(err error) bool {
	return hasCode(err, CallbackFailedCode)
}
