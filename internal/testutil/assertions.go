package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dom/taskchat-backend/internal/domain"
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

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	// Error responses are plain text in this API
	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertTaskFields compares the user-editable fields of two tasks
func AssertTaskFields(t *testing.T, expected, actual *domain.Task) {
	t.Helper()
	require.NotNil(t, actual, "task is nil")
	assert.Equal(t, expected.Title, actual.Title, "title mismatch")
	assert.Equal(t, expected.Description, actual.Description, "description mismatch")
	assert.Equal(t, expected.Completed, actual.Completed, "completed mismatch")
	assert.Equal(t, expected.Category, actual.Category, "category mismatch")
	assert.Equal(t, expected.UserID, actual.UserID, "owner mismatch")
}

// AssertMessageRoles verifies the role sequence of a message log
func AssertMessageRoles(t *testing.T, messages []*domain.Message, roles ...domain.MessageRole) {
	t.Helper()
	require.Len(t, messages, len(roles), "unexpected message count")
	for i, role := range roles {
		assert.Equal(t, role, messages[i].Role, "message %d role mismatch", i)
	}
}
