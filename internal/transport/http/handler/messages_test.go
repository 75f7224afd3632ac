package handler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-gin-gorm-todo/internal/domain"
)

func TestFieldErrors(t *testing.T) {
	required := func(fields ...string) map[string]string {
		out := map[string]string{}
		for _, f := range fields {
			out[f] = msgRequired
		}
		return out
	}

	assert.Equal(t, required("name"),
		fieldErrors(domain.MissingFields{"name"}, "name", "email", "password"))
	assert.Equal(t, required("email", "password"),
		fieldErrors(fmt.Errorf("login: %w", domain.MissingFields{"email", "password"}), "email"))
	assert.Equal(t, required("name", "email"),
		fieldErrors(domain.ErrValidation, "name", "email"))
	assert.Empty(t, fieldErrors(domain.ErrDuplicateEmail, "email"))
}
