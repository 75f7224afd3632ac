package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-gin-gorm-todo/internal/domain"
)

const (
	msgRequired = "This field is required."
	msgInternal = "Something went wrong, please try again."
)

// flashText 领域错误 -> 用户可见提示
func flashText(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "You've already signed up with that email, log in instead!"
	case errors.Is(err, domain.ErrUserNotFound):
		return "That user does not exist, please try again."
	case errors.Is(err, domain.ErrWrongPassword):
		return "Password not correct, please try again."
	case errors.Is(err, domain.ErrAuthRequired):
		return "You must be logged in to save your list."
	case errors.Is(err, domain.ErrEmptyList):
		return "Your list is empty, add a reminder first."
	case errors.Is(err, domain.ErrOutOfRange):
		return "That reminder is no longer in the list."
	case errors.Is(err, domain.ErrForbidden):
		return "You can only delete your own reminders."
	case errors.Is(err, domain.ErrValidation):
		return "Please fill in all required fields."
	default:
		return msgInternal
	}
}

func isDomainErr(err error) bool {
	for _, e := range []error{
		domain.ErrValidation, domain.ErrDuplicateEmail, domain.ErrAuthentication,
		domain.ErrAuthRequired, domain.ErrEmptyList, domain.ErrOutOfRange, domain.ErrForbidden,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// fieldErrors 表单字段 -> 提示；校验器没给出字段时落到 fallback 字段
func fieldErrors(err error, fallback ...string) map[string]string {
	out := map[string]string{}
	if !errors.Is(err, domain.ErrValidation) {
		return out
	}
	var missing domain.MissingFields
	if errors.As(err, &missing) {
		for _, f := range missing {
			out[f] = msgRequired
		}
		return out
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		for _, fe := range ves {
			out[strings.ToLower(fe.Field())] = msgRequired
		}
		return out
	}
	for _, f := range fallback {
		out[f] = msgRequired
	}
	return out
}
