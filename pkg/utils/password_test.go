package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndVerify(t *testing.T) {
	h := Bcrypt{Cost: bcrypt.MinCost}

	digest, err := h.Hash("pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", digest)

	assert.True(t, h.Verify(digest, "pw"))
	assert.False(t, h.Verify(digest, "PW"))
	assert.False(t, h.Verify("not-a-digest", "pw"))
}

func TestNewOrderedID_Sorted(t *testing.T) {
	prev := NewOrderedID()
	for i := 0; i < 50; i++ {
		next := NewOrderedID()
		assert.Less(t, prev, next)
		prev = next
	}
}
