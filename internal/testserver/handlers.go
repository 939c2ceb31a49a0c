package testserver

import (
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// Handlers provides reusable response handlers.
type Handlers struct{}

// JSON returns a handler that responds with JSON.
func (Handlers) JSON(code int, data any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(data)
	}
}

// Text returns a handler that responds with plain text.
func (Handlers) Text(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(code)
		w.Write([]byte(body))
	}
}

// Delayed wraps h with simulated latency.
func (Handlers) Delayed(delay time.Duration, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		h(w, r)
	}
}

// Status returns a handler that responds with just a status code.
func (Handlers) Status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}
}

// Echo returns a handler that reflects the request method and body.
func (Handlers) Echo(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var parsed any
		if len(body) > 0 {
			json.Unmarshal(body, &parsed)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]any{
			"method": r.Method,
			"path":   r.URL.Path,
			"body":   parsed,
		})
	}
}

// ErrorBody mirrors the backend's JSON error responses.
func (Handlers) ErrorBody(code int, kind, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]any{
			"error":       kind,
			"message":     message,
			"status_code": code,
		})
	}
}

// DemoAPI returns routes shaped like the demo backend the tester targets.
func DemoAPI() map[string]http.HandlerFunc {
	h := Handlers{}
	users := []map[string]any{
		{"id": 1, "name": "Alice", "email": "alice@example.com"},
		{"id": 2, "name": "Bob", "email": "bob@example.com"},
	}
	return map[string]http.HandlerFunc{
		"GET /api/health": h.JSON(http.StatusOK, map[string]string{
			"status":    "healthy",
			"message":   "API is running successfully",
			"timestamp": "2025-09-01T00:00:00Z",
		}),
		"GET /api/info": h.JSON(http.StatusOK, map[string]any{
			"name":    "Demo API",
			"version": "1.0.0",
		}),
		"GET /api/users":      h.JSON(http.StatusOK, users),
		"GET /api/users/1":    h.JSON(http.StatusOK, users[0]),
		"GET /api/users/2":    h.JSON(http.StatusOK, users[1]),
		"POST /api/users":     h.Echo(http.StatusCreated),
		"PUT /api/users/{id}": h.Echo(http.StatusOK),
		"DELETE /api/users/1": h.JSON(http.StatusOK, map[string]string{"message": "User deleted"}),
		"DELETE /api/users/2": h.ErrorBody(http.StatusNotFound, "Not Found", "The requested resource was not found"),
		"/":                   h.ErrorBody(http.StatusNotFound, "Not Found", "The requested resource was not found"),
	}
}
