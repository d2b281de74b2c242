package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKindAcceptsCaseVariants(t *testing.T) {
	for _, s := range []string{"R", "r", "READ", "read", "Read"} {
		k, ok := ParseKind(s)
		assert.True(t, ok, s)
		assert.Equal(t, Read, k, s)
	}
	for _, s := range []string{"W", "w", "WRITE", "write", "Write"} {
		k, ok := ParseKind(s)
		assert.True(t, ok, s)
		assert.Equal(t, Write, k, s)
	}
}

func TestParseKindRejectsUnknown(t *testing.T) {
	_, ok := ParseKind("X")
	assert.False(t, ok)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "R", Read.String())
	assert.Equal(t, "W", Write.String())
}
