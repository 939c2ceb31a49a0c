package widget

import (
	"github.com/artpar/apitester/internal/core"
)

// Style is the visual treatment of the response view and the badge.
type Style int

const (
	StyleNone Style = iota
	StyleSuccess
	StyleError
)

func (s Style) String() string {
	switch s {
	case StyleSuccess:
		return "success"
	case StyleError:
		return "error"
	default:
		return "none"
	}
}

// Outcome is the result of one Send: exactly one of Response or Failure is set.
type Outcome struct {
	ID       string
	Draft    core.Draft
	Sent     bool // a network call was issued
	Response *core.FormattedResponse
	Failure  *core.ErrorRecord
}

// Style returns success only for a 2xx response.
func (o Outcome) Style() Style {
	if o.Response != nil && o.Response.OK() {
		return StyleSuccess
	}
	return StyleError
}

// Text renders the outcome as indented JSON.
func (o Outcome) Text() string {
	if o.Response != nil {
		return core.Render(o.Response)
	}
	return core.Render(o.Failure)
}
