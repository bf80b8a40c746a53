package normalize

// Result is the stable shape every domain-service method returns.
// Success implies Data is non-nil for list and detail operations
// (an empty list is still success); failure implies a non-empty Errors
// map or a non-empty Message, never both absent.
type Result[T any] struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    *T                  `json:"data"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Failed builds a failure Result from an outcome, dropping any payload.
func Failed[T any](o Outcome) Result[T] {
	return Result[T]{
		Success: false,
		Message: o.Message,
		Errors:  o.Errors,
	}
}

// Succeeded builds a success Result carrying the decoded payload.
func Succeeded[T any](o Outcome, data *T) Result[T] {
	return Result[T]{
		Success: true,
		Message: o.Message,
		Data:    data,
	}
}

// Ack is the payload for boolean/status-only operations (logout, role
// assignment) where the upstream returns no meaningful data.
type Ack struct {
	Done bool `json:"done"`
}
