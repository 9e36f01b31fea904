package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies the envelope of a failed request: the
// expected status, a populated errors field and no data field
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors string          `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope), "failed to unmarshal response: %s", string(body))

	assert.NotEmpty(t, envelope.Errors, "errors field must be populated")
	assert.Empty(t, envelope.Data, "data field must be absent on errors")
	if expectedMessage != "" {
		assert.Equal(t, expectedMessage, envelope.Errors, "error message mismatch")
	}
}

// AssertNoPasswordLeak verifies a response body never carries a raw or
// hashed password
func AssertNoPasswordLeak(t *testing.T, body []byte, rawPassword string) {
	t.Helper()
	assert.NotContains(t, string(body), rawPassword, "raw password leaked in response")
	assert.NotContains(t, string(body), "passwordHash", "password hash field leaked in response")
	assert.NotContains(t, string(body), "$2a$", "bcrypt hash leaked in response")
}
