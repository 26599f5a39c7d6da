package config

import (
	"testing"
	"time"

	"solemate_server/structs"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsString(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	assert.Equal(t, "value", getEnvAsString("TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", getEnvAsString("TEST_STRING_MISSING", "fallback"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "not-a-number")

	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 7))
	assert.Equal(t, 7, getEnvAsInt("TEST_INT_BAD", 7))
	assert.Equal(t, 7, getEnvAsInt("TEST_INT_MISSING", 7))
}

func TestGetEnvAsTimeDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "150ms")
	t.Setenv("TEST_DURATION_BAD", "soon")

	assert.Equal(t, 150*time.Millisecond, getEnvAsTimeDuration("TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, getEnvAsTimeDuration("TEST_DURATION_BAD", time.Second))
	assert.Equal(t, time.Second, getEnvAsTimeDuration("TEST_DURATION_MISSING", time.Second))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BOOL_BAD", "yep")

	assert.True(t, getEnvAsBool("TEST_BOOL", false))
	assert.False(t, getEnvAsBool("TEST_BOOL_BAD", false))
	assert.True(t, getEnvAsBool("TEST_BOOL_MISSING", true))
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("TEST_SLICE", "a, b ,,c")

	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsSlice("TEST_SLICE", nil))
	assert.Equal(t, []string{"x"}, getEnvAsSlice("TEST_SLICE_MISSING", []string{"x"}))
}

func TestParseStockPolicy(t *testing.T) {
	assert.Equal(t, structs.StockPolicyLatest, parseStockPolicy("latest"))
	assert.Equal(t, structs.StockPolicySum, parseStockPolicy("sum"))
	assert.Equal(t, structs.StockPolicySum, parseStockPolicy(""))
	assert.Equal(t, structs.StockPolicySum, parseStockPolicy("garbage"))
}
