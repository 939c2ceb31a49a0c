package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Request is a single outbound HTTP call built from a Draft.
type Request struct {
	id      string
	method  Method
	url     string
	headers *Headers
	body    Body
}

// NewRequest creates a new request with the given parameters.
func NewRequest(method Method, url string) (*Request, error) {
	if !method.Valid() {
		return nil, ErrUnknownMethod
	}
	if url == "" {
		return nil, errors.New("url cannot be empty")
	}

	return &Request{
		id:      uuid.New().String(),
		method:  method,
		url:     url,
		headers: NewHeaders(),
		body:    NewEmptyBody(),
	}, nil
}

func (r *Request) ID() string {
	return r.id
}

func (r *Request) Method() Method {
	return r.method
}

func (r *Request) URL() string {
	return r.url
}

func (r *Request) Headers() *Headers {
	return r.headers
}

func (r *Request) Body() Body {
	return r.body
}

func (r *Request) SetHeader(key, value string) {
	r.headers.Set(key, value)
}

func (r *Request) SetBody(body Body) {
	r.body = body
}

// Headers implements a case-insensitive HTTP header store.
type Headers struct {
	data     map[string][]string
	keyOrder []string // original casing, insertion order
}

// NewHeaders creates an empty headers collection.
func NewHeaders() *Headers {
	return &Headers{
		data:     make(map[string][]string),
		keyOrder: make([]string, 0),
	}
}

func (h *Headers) normalize(key string) string {
	return strings.ToLower(key)
}

func (h *Headers) Set(key, value string) {
	normalized := h.normalize(key)
	if _, exists := h.data[normalized]; !exists {
		h.keyOrder = append(h.keyOrder, key)
	}
	h.data[normalized] = []string{value}
}

func (h *Headers) Add(key, value string) {
	normalized := h.normalize(key)
	if _, exists := h.data[normalized]; !exists {
		h.keyOrder = append(h.keyOrder, key)
	}
	h.data[normalized] = append(h.data[normalized], value)
}

func (h *Headers) Get(key string) string {
	values := h.data[h.normalize(key)]
	if len(values) > 0 {
		return values[0]
	}
	return ""
}

// Lookup reports whether the header is present, even with an empty value.
func (h *Headers) Lookup(key string) (string, bool) {
	values, ok := h.data[h.normalize(key)]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (h *Headers) GetAll(key string) []string {
	values := h.data[h.normalize(key)]
	result := make([]string, len(values))
	copy(result, values)
	return result
}

func (h *Headers) Keys() []string {
	result := make([]string, len(h.keyOrder))
	copy(result, h.keyOrder)
	return result
}

// Body represents a request or response payload.
type Body interface {
	IsEmpty() bool
	Size() int64
	Bytes() []byte
	String() string
	Reader() io.Reader
	ContentType() string
}

type emptyBody struct{}

// NewEmptyBody creates an empty body.
func NewEmptyBody() Body {
	return emptyBody{}
}

func (emptyBody) IsEmpty() bool       { return true }
func (emptyBody) Size() int64         { return 0 }
func (emptyBody) Bytes() []byte       { return nil }
func (emptyBody) String() string      { return "" }
func (emptyBody) Reader() io.Reader   { return bytes.NewReader(nil) }
func (emptyBody) ContentType() string { return "" }

type rawBody struct {
	content     []byte
	contentType string
}

// NewRawBody creates a body with the given content and content type.
func NewRawBody(content []byte, contentType string) Body {
	return &rawBody{
		content:     content,
		contentType: contentType,
	}
}

func (b *rawBody) IsEmpty() bool       { return len(b.content) == 0 }
func (b *rawBody) Size() int64         { return int64(len(b.content)) }
func (b *rawBody) Bytes() []byte       { return b.content }
func (b *rawBody) String() string      { return string(b.content) }
func (b *rawBody) Reader() io.Reader   { return bytes.NewReader(b.content) }
func (b *rawBody) ContentType() string { return b.contentType }

// DecodeJSON parses a body as a single JSON document. An empty body is an
// error, the same as any other malformed document.
func DecodeJSON(b Body) (json.RawMessage, error) {
	data := bytes.TrimSpace(b.Bytes())
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// Status represents an HTTP status code and text.
type Status struct {
	code int
	text string
}

// NewStatus creates a new status.
func NewStatus(code int, text string) *Status {
	return &Status{
		code: code,
		text: text,
	}
}

func (s *Status) Code() int    { return s.code }
func (s *Status) Text() string { return s.text }

func (s *Status) IsSuccess() bool {
	return s.code >= 200 && s.code < 300
}
