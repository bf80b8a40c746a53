// Package normalize maps raw upstream API responses into a stable
// internal shape. The remote API is inconsistent about envelopes
// (sometimes data, sometimes data.data, sometimes a named key), about
// success signalling (HTTP 200 with a failure payload has been
// observed), and about error reporting. Every one of those
// inconsistencies is absorbed here and nowhere else.
package normalize

import (
	"github.com/tidwall/gjson"

	"github.com/TelconGH/admin_portal/internal/upstream"
)

// Mode selects how success is judged for an operation.
type Mode int

const (
	// ModeStrict requires a 2xx status AND a payload marker in the body.
	ModeStrict Mode = iota
	// ModePermissive requires a 2xx status and only fails when the body
	// explicitly reports failure. Used by SIM serial verification; the
	// asymmetry with ModeStrict is a known upstream inconsistency that
	// must not be "fixed" here, since doing so would silently change
	// which verifications are accepted.
	ModePermissive
)

// Rules declares how one operation's responses are interpreted: the
// ordered payload lookup, the fallback error key and message, and the
// success mode. Expressing the fallback order as data keeps it
// documented and testable.
type Rules struct {
	// Key names the operation's domain; failures with no upstream error
	// map synthesize {Key: [FailMessage]}.
	Key string
	// FailMessage is the fixed human message used when the upstream
	// response carries none that can be trusted.
	FailMessage string
	// DataPaths is the ordered payload lookup. Empty means the default
	// order: data.data, then data.
	DataPaths []string
	Mode      Mode
}

var defaultDataPaths = []string{"data.data", "data"}

func (r Rules) dataPaths() []string {
	if len(r.DataPaths) == 0 {
		return defaultDataPaths
	}
	return r.DataPaths
}

// Outcome is the envelope-level interpretation of one raw response.
// Typed decoding of Payload happens in the per-operation normalizers.
type Outcome struct {
	Success bool
	Message string
	// Payload is the resolved payload node. Valid only when HasPayload.
	Payload gjson.Result
	// Body is the full parsed body, for operations that read fields
	// outside the payload envelope (registration's dual envelope).
	Body       gjson.Result
	HasPayload bool
	Errors     map[string][]string
}

// Evaluate applies the normalization contract to a raw response.
// It never panics and never returns an error: a malformed body is a
// normal outcome of an abnormal upstream response.
func Evaluate(raw upstream.RawResponse, r Rules) Outcome {
	if !gjson.ValidBytes(raw.Body) {
		return Outcome{
			Success: false,
			Message: "Invalid JSON response from API",
			Errors:  map[string][]string{"json": {"response body is not valid JSON"}},
		}
	}
	body := gjson.ParseBytes(raw.Body)

	if !raw.OK() {
		return failureOutcome(body, r)
	}

	switch r.Mode {
	case ModePermissive:
		if explicitFailure(body) {
			return failureOutcome(body, r)
		}
	default:
		if !markerPresent(body, r) {
			// The body shape cannot be trusted past this point, so the
			// fixed fallback message is used even when a message field
			// is present.
			return Outcome{
				Success: false,
				Message: r.FailMessage,
				Body:    body,
				Errors:  map[string][]string{r.Key: {r.FailMessage}},
			}
		}
	}

	out := Outcome{
		Success: true,
		Message: body.Get("message").String(),
		Body:    body,
	}
	for _, path := range r.dataPaths() {
		if node := body.Get(path); node.Exists() {
			out.Payload = node
			out.HasPayload = true
			break
		}
	}
	return out
}

// TransportFailure converts an error from the HTTP layer into the same
// failure shape application-level failures use. Callers never see a raw
// error.
func TransportFailure(r Rules, err error) Outcome {
	msg := "Unable to reach the TelconGH API"
	detail := msg
	if err != nil {
		detail = err.Error()
	}
	return Outcome{
		Success: false,
		Message: msg,
		Errors:  map[string][]string{r.Key: {detail}},
	}
}

// PreconditionFailure reports missing session state (token, selected
// business). No network call was made.
func PreconditionFailure(msg string) Outcome {
	return Outcome{
		Success: false,
		Message: msg,
		Errors:  map[string][]string{"auth": {msg}},
	}
}

// ValidationFailure reports locally-detected field errors, merged into
// the same shape upstream errors use.
func ValidationFailure(msg string, fields map[string][]string) Outcome {
	return Outcome{
		Success: false,
		Message: msg,
		Errors:  fields,
	}
}

// markerPresent reports whether the body carries an expected payload
// marker: any configured data path, or a truthy status/success field.
func markerPresent(body gjson.Result, r Rules) bool {
	for _, path := range r.dataPaths() {
		if body.Get(path).Exists() {
			return true
		}
	}
	if status := body.Get("status"); status.Exists() {
		if status.String() == "success" || Truthy(status) {
			return true
		}
	}
	if success := body.Get("success"); success.Exists() && Truthy(success) {
		return true
	}
	return false
}

// explicitFailure reports whether the body explicitly declares failure:
// a status field that is not "success", or a falsy success flag. Absent
// fields count as success (the permissive rule).
func explicitFailure(body gjson.Result) bool {
	if status := body.Get("status"); status.Exists() {
		if status.Type == gjson.String && status.String() != "success" {
			return true
		}
	}
	if success := body.Get("success"); success.Exists() && !Truthy(success) {
		return true
	}
	return false
}

func failureOutcome(body gjson.Result, r Rules) Outcome {
	msg := body.Get("message").String()
	if msg == "" {
		msg = r.FailMessage
	}
	errs := ErrorMap(body.Get("errors"))
	if len(errs) == 0 {
		errs = map[string][]string{r.Key: {r.FailMessage}}
	}
	return Outcome{
		Success: false,
		Message: msg,
		Body:    body,
		Errors:  errs,
	}
}

// ErrorMap converts an upstream errors node into field-name -> messages.
// Values may be a single string or an array of strings; anything else
// degrades to its string form.
func ErrorMap(node gjson.Result) map[string][]string {
	if !node.Exists() || !node.IsObject() {
		return nil
	}
	errs := make(map[string][]string)
	node.ForEach(func(key, value gjson.Result) bool {
		if value.IsArray() {
			for _, v := range value.Array() {
				errs[key.String()] = append(errs[key.String()], v.String())
			}
		} else {
			errs[key.String()] = append(errs[key.String()], value.String())
		}
		return true
	})
	return errs
}
