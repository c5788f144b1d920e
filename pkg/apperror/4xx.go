package apperror

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	InvalidOptionCode   = "400001"
	InvalidScenarioCode = "400002"
	EventNotAllowedCode = "403003"
)

// 400 Bad input
func ErrInvalidOption(err error) Error {
	return NewError(err, InvalidOptionCode, "Invalid option")
}

func ErrInvalidScenario(err error) Error {
	return NewError(err, InvalidScenarioCode, "Invalid scenario")
}

// 403 Not allowed
func ErrEventNotAllowed(event string, allowed []string) Error {
	return NewError(
		errors.Errorf("allowed events are: [%s]", strings.Join(allowed, ", ")),
		EventNotAllowedCode,
		fmt.Sprintf("Event %s is not allowed, register it before linking callbacks", event),
	)
}

func IsEventNotAllowed(err error) bool {
	return hasCode(err, EventNotAllowedCode)
}
