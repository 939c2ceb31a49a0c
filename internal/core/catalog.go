package core

// EndpointOption is a sample path offered for a method, with its display label.
type EndpointOption struct {
	Label string
	Path  string
}

var endpointCatalog = map[Method][]EndpointOption{
	MethodGet: {
		{Label: "Health Check", Path: "/api/health"},
		{Label: "API Info", Path: "/api/info"},
		{Label: "All Users", Path: "/api/users"},
		{Label: "User by ID (ID: 1)", Path: "/api/users/1"},
		{Label: "User by ID (ID: 2)", Path: "/api/users/2"},
	},
	MethodPost: {
		{Label: "Create User", Path: "/api/users"},
	},
	MethodPut: {
		{Label: "Update User (ID: 1)", Path: "/api/users/1"},
		{Label: "Update User (ID: 2)", Path: "/api/users/2"},
	},
	MethodDelete: {
		{Label: "Delete User (ID: 1)", Path: "/api/users/1"},
		{Label: "Delete User (ID: 2)", Path: "/api/users/2"},
	},
}

const (
	createUserBody = `{
  "name": "New User",
  "email": "newuser@example.com"
}`
	updateUserBody = `{
  "name": "Updated Name",
  "email": "updated@example.com"
}`
)

// EndpointsFor returns the endpoint options offered for m. The slice is a
// fresh copy; callers may keep or modify it.
func EndpointsFor(m Method) []EndpointOption {
	options := endpointCatalog[m]
	result := make([]EndpointOption, len(options))
	copy(result, options)
	return result
}

// DefaultBody returns the example body pre-filled for m, or "" when m
// carries no body.
func DefaultBody(m Method) string {
	switch m {
	case MethodPost:
		return createUserBody
	case MethodPut:
		return updateUserBody
	}
	return ""
}

// IndexOfPath returns the position of path within options, or -1.
func IndexOfPath(options []EndpointOption, path string) int {
	for i, opt := range options {
		if opt.Path == path {
			return i
		}
	}
	return -1
}
