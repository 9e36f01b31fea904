package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/Agungajipradana/contact-management-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(buf)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestUserHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "empty fields are rejected",
			request: map[string]string{
				"username": "",
				"password": "",
				"name":     "",
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp *http.Response) {
				testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Validation error")
			},
		},
		{
			name: "successful registration",
			request: map[string]string{
				"username": "test",
				"password": "test",
				"name":     "test",
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var envelope testutil.UserEnvelope
				testutil.AssertJSONResponse(t, resp, &envelope)
				require.NotNil(t, envelope.Data)
				assert.Equal(t, "test", envelope.Data.Username)
				assert.Equal(t, "test", envelope.Data.Name)
				assert.Empty(t, envelope.Data.Token)
			},
		},
		{
			name: "duplicate username",
			request: map[string]string{
				"username": "test",
				"password": "test",
				"name":     "test",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("test").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp *http.Response) {
				testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Username already exists")
			},
		},
		{
			name:           "malformed body",
			request:        nil,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			var resp *http.Response
			if tt.request == nil {
				r, err := http.Post(ts.APIURL("/users"), "application/json", bytes.NewBufferString("{not json"))
				require.NoError(t, err)
				resp = r
			} else {
				resp = doJSON(t, http.MethodPost, ts.APIURL("/users"), "", tt.request)
			}
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestUserHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	doJSON(t, http.MethodPost, ts.APIURL("/users"), "", map[string]string{
		"username": "test",
		"password": "test",
		"name":     "test",
	}).Body.Close()

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful login returns a token",
			request: map[string]string{
				"username": "test",
				"password": "test",
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var envelope testutil.UserEnvelope
				testutil.AssertJSONResponse(t, resp, &envelope)
				require.NotNil(t, envelope.Data)
				assert.Equal(t, "test", envelope.Data.Username)
				assert.NotEmpty(t, envelope.Data.Token)
			},
		},
		{
			name: "wrong password",
			request: map[string]string{
				"username": "test",
				"password": "wrong",
			},
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, resp *http.Response) {
				testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Username or password is invalid")
			},
		},
		{
			name: "unknown username uses the same message",
			request: map[string]string{
				"username": "nobody",
				"password": "test",
			},
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, resp *http.Response) {
				testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Username or password is invalid")
			},
		},
		{
			name:           "missing fields",
			request:        map[string]string{},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp *http.Response) {
				testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Validation error")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.APIURL("/users/login"), "", tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestUserHandler_Current(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().
		WithUsername("current").
		WithName("Current User").
		BuildAndLogin(t, ts)

	t.Run("wrong token is unauthorized", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/users/current"), "wrong", nil)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthorized")
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/users/current"), "", nil)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthorized")
	})

	t.Run("valid token returns the profile", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/users/current"), token, nil)
		defer resp.Body.Close()

		var envelope testutil.UserEnvelope
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertJSONResponse(t, resp, &envelope)
		require.NotNil(t, envelope.Data)
		assert.Equal(t, "current", envelope.Data.Username)
		assert.Equal(t, "Current User", envelope.Data.Name)
		assert.Empty(t, envelope.Data.Token)
	})
}

func TestUserHandler_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("update name", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().
			WithUsername("updater").
			WithName("Before").
			BuildAndLogin(t, ts)

		resp := doJSON(t, http.MethodPatch, ts.APIURL("/users/current"), token, map[string]string{
			"name": "After",
		})
		defer resp.Body.Close()

		var envelope testutil.UserEnvelope
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertJSONResponse(t, resp, &envelope)
		require.NotNil(t, envelope.Data)
		assert.Equal(t, "After", envelope.Data.Name)
	})

	t.Run("invalid payload", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().
			WithUsername("invalidupd").
			BuildAndLogin(t, ts)

		resp := doJSON(t, http.MethodPatch, ts.APIURL("/users/current"), token, map[string]string{
			"name": "",
		})
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Validation error")
	})

	t.Run("no token", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, ts.APIURL("/users/current"), "", map[string]string{
			"name": "After",
		})
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthorized")
	})
}

func TestUserHandler_Logout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().
		WithUsername("logoutuser").
		BuildAndLogin(t, ts)

	resp := doJSON(t, http.MethodDelete, ts.APIURL("/users/current"), token, nil)
	defer resp.Body.Close()

	var envelope testutil.BoolEnvelope
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &envelope)
	assert.True(t, envelope.Data)

	// The stored token is gone and the old one resolves to anonymous.
	stored, err := ts.Repos.User.FindByUsername(context.Background(), user.Username)
	require.NoError(t, err)
	assert.Nil(t, stored.Token)

	again := doJSON(t, http.MethodGet, ts.APIURL("/users/current"), token, nil)
	defer again.Body.Close()
	testutil.AssertErrorResponse(t, again, http.StatusUnauthorized, "Unauthorized")
}

func TestUserHandler_TokenRotation(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, rawPassword := testutil.NewUserBuilder().
		WithUsername("rotator").
		Build(t, ts.DB.DB)

	login := func() string {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/users/login"), "", map[string]string{
			"username": "rotator",
			"password": rawPassword,
		})
		defer resp.Body.Close()

		var envelope testutil.UserEnvelope
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertJSONResponse(t, resp, &envelope)
		require.NotNil(t, envelope.Data)
		return envelope.Data.Token
	}

	first := login()
	second := login()
	assert.NotEqual(t, first, second)

	// The first token was implicitly invalidated by the second login.
	resp := doJSON(t, http.MethodGet, ts.APIURL("/users/current"), first, nil)
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthorized")

	ok := doJSON(t, http.MethodGet, ts.APIURL("/users/current"), second, nil)
	defer ok.Body.Close()
	testutil.AssertStatusCode(t, ok, http.StatusOK)
}

func TestUserHandler_NeverLeaksPasswords(t *testing.T) {
	ts := testutil.NewTestServer(t)

	rawPassword := "super-secret-password"
	resp := doJSON(t, http.MethodPost, ts.APIURL("/users"), "", map[string]string{
		"username": "opaque",
		"password": rawPassword,
		"name":     "Opaque",
	})
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	testutil.AssertNoPasswordLeak(t, body, rawPassword)

	login := doJSON(t, http.MethodPost, ts.APIURL("/users/login"), "", map[string]string{
		"username": "opaque",
		"password": rawPassword,
	})
	defer login.Body.Close()

	body, err = io.ReadAll(login.Body)
	require.NoError(t, err)
	testutil.AssertNoPasswordLeak(t, body, rawPassword)
}
