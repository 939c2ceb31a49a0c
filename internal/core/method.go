package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownMethod is returned for anything outside GET, POST, PUT and DELETE.
	ErrUnknownMethod = errors.New("unknown method")

	// ErrUnknownEndpoint is returned when a path is not offered for the current method.
	ErrUnknownEndpoint = errors.New("endpoint not offered for method")

	// ErrInvalidJSON is returned when a request body fails to parse.
	ErrInvalidJSON = errors.New("Invalid JSON in request body")
)

// Method is an HTTP verb the tester can send.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Methods returns every selectable method in display order.
func Methods() []Method {
	return []Method{MethodGet, MethodPost, MethodPut, MethodDelete}
}

// ParseMethod converts user input to a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
	return m, nil
}

// Valid reports whether m is one of the selectable methods.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return true
	}
	return false
}

// HasBody reports whether requests with this method carry an editable body.
func (m Method) HasBody() bool {
	return m == MethodPost || m == MethodPut
}

func (m Method) String() string {
	return string(m)
}
