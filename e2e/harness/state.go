package harness

import (
	"github.com/artpar/apitester/internal/tui/views"
)

// State represents a snapshot of the entire TUI state for verification.
type State struct {
	MainView *MainViewState
	Request  *RequestPanelState
	Response *ResponsePanelState
}

// MainViewState captures the main view state.
type MainViewState struct {
	FocusedPane  string // "request", "response"
	Mode         string // "NORMAL", "INSERT"
	ShowingHelp  bool
	Notification string
	Badge        string
}

// RequestPanelState captures the request panel state.
type RequestPanelState struct {
	Method       string
	SelectedPath string
	BodyVisible  bool
	Body         string
	IsEditing    bool
	SendEnabled  bool
	SendLabel    string
}

// ResponsePanelState captures the response panel state.
type ResponsePanelState struct {
	HasResponse  bool
	IsLoading    bool
	StatusCode   int
	StatusText   string
	Error        string // the failure kind, when the send failed
	Message      string
	Style        string
	ScrollOffset int
}

// CaptureState captures the current state of the TUI session.
func (s *TUISession) CaptureState() *State {
	return &State{
		MainView: s.captureMainViewState(),
		Request:  s.captureRequestPanelState(),
		Response: s.captureResponsePanelState(),
	}
}

func (s *TUISession) captureMainViewState() *MainViewState {
	mv := s.model

	mode := "NORMAL"
	if mv.RequestPanel().IsEditing() {
		mode = "INSERT"
	}

	focusedPane := "request"
	if mv.FocusedPane() == views.PaneResponse {
		focusedPane = "response"
	}

	return &MainViewState{
		FocusedPane:  focusedPane,
		Mode:         mode,
		ShowingHelp:  mv.ShowingHelp(),
		Notification: mv.Notification(),
		Badge:        s.app.Badge().Text(),
	}
}

func (s *TUISession) captureRequestPanelState() *RequestPanelState {
	st := s.app.Widget().State()

	return &RequestPanelState{
		Method:       st.Method.String(),
		SelectedPath: st.SelectedPath(),
		BodyVisible:  st.BodyVisible,
		Body:         st.Body,
		IsEditing:    s.model.RequestPanel().IsEditing(),
		SendEnabled:  st.SendEnabled,
		SendLabel:    st.SendLabel,
	}
}

func (s *TUISession) captureResponsePanelState() *ResponsePanelState {
	resp := s.model.ResponsePanel()

	state := &ResponsePanelState{
		IsLoading:    resp.IsLoading(),
		Style:        resp.Style().String(),
		ScrollOffset: resp.ScrollOffset(),
	}

	out := resp.Outcome()
	if out == nil {
		return state
	}
	state.HasResponse = true
	if out.Response != nil {
		state.StatusCode = out.Response.Status
		state.StatusText = out.Response.StatusText
	}
	if out.Failure != nil {
		state.Error = out.Failure.Kind
		state.Message = out.Failure.Message
	}

	return state
}

// State is shorthand for CaptureState.
func (s *TUISession) State() *State {
	return s.CaptureState()
}
