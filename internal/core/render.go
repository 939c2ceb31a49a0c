package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RequestFailed is the error kind shown for validation, transport and
// parse failures.
const RequestFailed = "Request Failed"

// TimestampLayout renders error timestamps in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// SelectedHeaders are the response headers surfaced to the user. A missing
// header renders as null.
type SelectedHeaders struct {
	ContentType *string `json:"Content-Type"`
	Date        *string `json:"Date"`
}

// FormattedResponse is the rendering of any HTTP response that carried a
// JSON body, whatever its status.
type FormattedResponse struct {
	Status     int             `json:"status"`
	StatusText string          `json:"statusText"`
	Headers    SelectedHeaders `json:"headers"`
	Body       json.RawMessage `json:"body"`
}

// OK reports whether the status is 2xx.
func (f *FormattedResponse) OK() bool {
	return f.Status >= 200 && f.Status < 300
}

// ErrorRecord is the rendering of a send that never produced a usable response.
type ErrorRecord struct {
	Kind      string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// FormatResponse parses the response body and selects the displayed headers.
func FormatResponse(resp *Response) (*FormattedResponse, error) {
	body, err := DecodeJSON(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("parse response body: %w", err)
	}

	return &FormattedResponse{
		Status:     resp.Status().Code(),
		StatusText: resp.Status().Text(),
		Headers: SelectedHeaders{
			ContentType: lookupHeader(resp.Headers(), "Content-Type"),
			Date:        lookupHeader(resp.Headers(), "Date"),
		},
		Body: body,
	}, nil
}

// NewErrorRecord describes err as a failed request observed at the given time.
func NewErrorRecord(err error, at time.Time) *ErrorRecord {
	return &ErrorRecord{
		Kind:      RequestFailed,
		Message:   err.Error(),
		Timestamp: at.UTC().Format(TimestampLayout),
	}
}

// Render encodes v as two-space indented JSON without HTML escaping.
func Render(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return strings.TrimRight(buf.String(), "\n")
}

func lookupHeader(h *Headers, key string) *string {
	v, ok := h.Lookup(key)
	if !ok {
		return nil
	}
	return &v
}
