package response

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	r := Error(CodeNotFound, "")
	assert.Equal(t, CodeNotFound, r.Code)
	assert.Equal(t, "Not Found", r.Msg)
	assert.Equal(t, struct{}{}, r.Data)

	r = Error(CodeBadRequest, "missing text")
	assert.Equal(t, "missing text", r.Msg)
}

func TestOK(t *testing.T) {
	r := OK(nil)
	assert.Equal(t, CodeOK, r.Code)
	assert.Equal(t, struct{}{}, r.Data)

	r = OK([]string{"a"})
	assert.Equal(t, []string{"a"}, r.Data)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, Status(CodeOK))
	assert.Equal(t, http.StatusTooManyRequests, Status(CodeTooManyRequests))
	assert.Equal(t, http.StatusInternalServerError, Status(999))
}
