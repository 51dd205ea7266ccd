package accesskey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	first := New()
	second := New()

	assert.Len(t, first, 64)
	assert.NotContains(t, first, "-")
	assert.NotEqual(t, first, second)
}
