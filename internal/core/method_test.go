package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	t.Run("accepts any casing", func(t *testing.T) {
		for _, in := range []string{"get", "GET", " Get "} {
			m, err := ParseMethod(in)
			require.NoError(t, err)
			assert.Equal(t, MethodGet, m)
		}
	})

	t.Run("rejects methods outside the set", func(t *testing.T) {
		for _, in := range []string{"PATCH", "HEAD", "OPTIONS", ""} {
			_, err := ParseMethod(in)
			assert.ErrorIs(t, err, ErrUnknownMethod, "input %q", in)
		}
	})
}

func TestMethod_HasBody(t *testing.T) {
	expected := map[Method]bool{
		MethodGet:    false,
		MethodPost:   true,
		MethodPut:    true,
		MethodDelete: false,
	}
	for _, m := range Methods() {
		assert.Equal(t, expected[m], m.HasBody(), "method %s", m)
	}
}

func TestMethods(t *testing.T) {
	assert.Equal(t, []Method{MethodGet, MethodPost, MethodPut, MethodDelete}, Methods())
}
