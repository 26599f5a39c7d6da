package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  ", false, false))
	assert.Equal(t, "", SanitizeString("   ", true, true))
	assert.Equal(t, "a b c", SanitizeString("a   b\t\tc", false, true))
	assert.Equal(t, "ab", SanitizeString("a\x00\x1fb", true, false))
	assert.Equal(t, "Ivan Petrov", SanitizeString(" Ivan \n Petrov ", true, true))
}
