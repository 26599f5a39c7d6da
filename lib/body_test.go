package lib

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required,max=10"`
	Count int    `json:"count" validate:"gte=0"`
}

func TestExtractAndValidateBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"shoe","count":2}`))

	body, err := ExtractAndValidateBody[samplePayload](r)
	require.NoError(t, err)
	assert.Equal(t, "shoe", body.Name)
	assert.Equal(t, 2, body.Count)
}

func TestExtractAndValidateBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"shoe","bogus":true}`))

	_, err := ExtractAndValidateBody[samplePayload](r)
	assert.Error(t, err)
}

func TestExtractAndValidateBodyValidation(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"count":-1}`))

	_, err := ExtractAndValidateBody[samplePayload](r)
	require.Error(t, err)

	ve, ok := err.(*ValidationError)
	require.True(t, ok)

	fields := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "count"}, fields)
}

func TestExtractAndValidateBodyMalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))

	_, err := ExtractAndValidateBody[samplePayload](r)
	assert.Error(t, err)
}
