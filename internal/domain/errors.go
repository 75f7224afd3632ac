package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation     = errors.New("required field missing")
	ErrDuplicateEmail = errors.New("email already registered")

	ErrAuthentication = errors.New("authentication failed")
	ErrUserNotFound   = fmt.Errorf("%w: user does not exist", ErrAuthentication)
	ErrWrongPassword  = fmt.Errorf("%w: password not correct", ErrAuthentication)

	ErrAuthRequired = errors.New("must be logged in")
	ErrEmptyList    = errors.New("list is empty")
	ErrOutOfRange   = errors.New("index out of range")
	ErrForbidden    = errors.New("not the owner of this item")
)

// MissingFields 指明缺了哪些必填项（小写字段名，与表单字段一致）
type MissingFields []string

func (m MissingFields) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(m, ", ")
}

func (m MissingFields) Unwrap() error { return ErrValidation }

// Require 收集空白字段；全部非空时返回 nil
func Require(fields ...[2]string) error {
	var missing MissingFields
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			missing = append(missing, f[0])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return missing
}
