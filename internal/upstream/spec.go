package upstream

import "sort"

// RequestSpec is a pure description of one remote API call. Builders
// construct a fresh spec per call and never mutate it afterwards.
type RequestSpec struct {
	Method  string
	Path    string
	Headers map[string]string
	Query   map[string]string
	Body    map[string]any
	// Form carries multipart parts; when non-nil the request is sent as
	// multipart/form-data and Body is ignored.
	Form []FormPart
}

// FormPart is one field of a multipart request body.
type FormPart struct {
	Name     string
	Value    string
	Filename string
	Content  []byte
}

// JSONHeaders returns the standard header set for JSON requests.
// Authorization is attached only when a token is supplied; anonymous
// operations (registration, login) pass an empty token.
func JSONHeaders(token string) map[string]string {
	h := map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}
	if token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}

// MultipartHeaders returns the header set for multipart requests.
// Content-Type is omitted so the transport can set the boundary.
func MultipartHeaders(token string) map[string]string {
	h := map[string]string{
		"Accept": "application/json",
	}
	if token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}

// QueryKeys returns the spec's query keys in sorted order; used by tests
// to assert filter-omission behavior.
func (s RequestSpec) QueryKeys() []string {
	keys := make([]string, 0, len(s.Query))
	for k := range s.Query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
