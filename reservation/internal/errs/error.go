package errs

import (
	"errors"
	"fmt"
)

var (
	ErrBlacklisted  = errors.New("customer is blacklisted")
	ErrQuoteMissing = errors.New("quote not found")
)

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
