package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password so
// callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError carries every violated field, not just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
