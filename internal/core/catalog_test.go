package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointsFor(t *testing.T) {
	tests := []struct {
		method Method
		want   []EndpointOption
	}{
		{MethodGet, []EndpointOption{
			{"Health Check", "/api/health"},
			{"API Info", "/api/info"},
			{"All Users", "/api/users"},
			{"User by ID (ID: 1)", "/api/users/1"},
			{"User by ID (ID: 2)", "/api/users/2"},
		}},
		{MethodPost, []EndpointOption{
			{"Create User", "/api/users"},
		}},
		{MethodPut, []EndpointOption{
			{"Update User (ID: 1)", "/api/users/1"},
			{"Update User (ID: 2)", "/api/users/2"},
		}},
		{MethodDelete, []EndpointOption{
			{"Delete User (ID: 1)", "/api/users/1"},
			{"Delete User (ID: 2)", "/api/users/2"},
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.want, EndpointsFor(tt.method))
		})
	}

	t.Run("unknown method has no endpoints", func(t *testing.T) {
		assert.Empty(t, EndpointsFor(Method("PATCH")))
	})

	t.Run("returns a copy", func(t *testing.T) {
		first := EndpointsFor(MethodGet)
		first[0].Path = "/changed"
		assert.Equal(t, "/api/health", EndpointsFor(MethodGet)[0].Path)
	})
}

func TestDefaultBody(t *testing.T) {
	t.Run("POST creates a user", func(t *testing.T) {
		var body map[string]string
		require.NoError(t, json.Unmarshal([]byte(DefaultBody(MethodPost)), &body))
		assert.Equal(t, map[string]string{"name": "New User", "email": "newuser@example.com"}, body)
	})

	t.Run("PUT updates a user", func(t *testing.T) {
		var body map[string]string
		require.NoError(t, json.Unmarshal([]byte(DefaultBody(MethodPut)), &body))
		assert.Equal(t, map[string]string{"name": "Updated Name", "email": "updated@example.com"}, body)
	})

	t.Run("is indented with two spaces", func(t *testing.T) {
		assert.Equal(t, "{\n  \"name\": \"New User\",\n  \"email\": \"newuser@example.com\"\n}", DefaultBody(MethodPost))
	})

	t.Run("GET and DELETE have none", func(t *testing.T) {
		assert.Empty(t, DefaultBody(MethodGet))
		assert.Empty(t, DefaultBody(MethodDelete))
	})
}

func TestIndexOfPath(t *testing.T) {
	options := EndpointsFor(MethodGet)
	assert.Equal(t, 0, IndexOfPath(options, "/api/health"))
	assert.Equal(t, 3, IndexOfPath(options, "/api/users/1"))
	assert.Equal(t, -1, IndexOfPath(options, "/api/gaming-news"))
}
