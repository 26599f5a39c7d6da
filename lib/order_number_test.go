package lib

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^SM-\d{6}-[A-Z0-9]{4}$`)

	for i := 0; i < 10; i++ {
		number := GenerateOrderNumber()
		assert.Regexp(t, pattern, number)
	}
}

func TestGenerateOrderNumberCarriesDate(t *testing.T) {
	number := GenerateOrderNumber()
	assert.Contains(t, number, time.Now().Format("060102"))
}
