package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrEmptyBaseURL is returned when no backend address has been configured.
var ErrEmptyBaseURL = errors.New("base URL is empty")

// Draft is the user-editable description of the next request.
type Draft struct {
	Method Method
	Path   string
	Body   string
}

// SendsBody reports whether the draft's body text goes on the wire.
// Blank bodies are never sent.
func (d Draft) SendsBody() bool {
	return d.Method.HasBody() && strings.TrimSpace(d.Body) != ""
}

// Validate checks the draft before anything is sent.
func (d Draft) Validate() error {
	if !d.Method.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, string(d.Method))
	}
	if d.Path == "" {
		return errors.New("endpoint cannot be empty")
	}
	if d.SendsBody() && !json.Valid([]byte(d.Body)) {
		return ErrInvalidJSON
	}
	return nil
}

// ToRequest validates the draft and builds the request against baseURL.
func (d Draft) ToRequest(baseURL string) (*Request, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	target, err := JoinURL(baseURL, d.Path)
	if err != nil {
		return nil, err
	}

	req, err := NewRequest(d.Method, target)
	if err != nil {
		return nil, err
	}
	req.SetHeader("Content-Type", "application/json")
	if d.SendsBody() {
		req.SetBody(NewRawBody([]byte(d.Body), "application/json"))
	}
	return req, nil
}

// JoinURL appends an absolute endpoint path to baseURL, keeping any path
// prefix the base already has.
func JoinURL(baseURL, path string) (string, error) {
	if strings.TrimSpace(baseURL) == "" {
		return "", ErrEmptyBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base URL must start with http:// or https://: %q", baseURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base URL has no host: %q", baseURL)
	}

	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/"), nil
}
