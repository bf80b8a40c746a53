package normalize

import (
	"errors"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/TelconGH/admin_portal/internal/upstream"
)

func rules() Rules {
	return Rules{Key: "widget", FailMessage: "Unable to load widgets"}
}

func raw(status int, body string) upstream.RawResponse {
	return upstream.RawResponse{Status: status, Body: []byte(body)}
}

func TestEvaluateNestedEnvelope(t *testing.T) {
	out := Evaluate(raw(200, `{"message":"ok","data":{"data":[{"id":1}],"current_page":2}}`), rules())
	if !out.Success {
		t.Fatalf("expected success, got errors %v", out.Errors)
	}
	if out.Message != "ok" {
		t.Fatalf("message = %q", out.Message)
	}
	if !out.HasPayload || !out.Payload.IsArray() {
		t.Fatalf("expected data.data array payload, got %v", out.Payload)
	}
}

func TestEvaluateFlatEnvelope(t *testing.T) {
	out := Evaluate(raw(200, `{"data":{"id":7,"name":"MTN"}}`), rules())
	if !out.Success || !out.HasPayload {
		t.Fatalf("expected success with payload")
	}
	if got := out.Payload.Get("name").String(); got != "MTN" {
		t.Fatalf("payload name = %q", got)
	}
}

func TestEvaluateNamedAlternateKey(t *testing.T) {
	r := rules()
	r.DataPaths = []string{"data.data", "data", "networks"}
	out := Evaluate(raw(200, `{"networks":[{"id":1},{"id":2}]}`), r)
	if !out.Success || !out.HasPayload {
		t.Fatalf("expected success with networks payload")
	}
	if n := len(out.Payload.Array()); n != 2 {
		t.Fatalf("payload length = %d", n)
	}
}

func TestEvaluateMarkerMissingOn200(t *testing.T) {
	// A 2xx body with no recognizable marker cannot be trusted: the fixed
	// fallback message wins even over a present message field.
	out := Evaluate(raw(200, `{"message":"everything is fine"}`), rules())
	if out.Success {
		t.Fatal("expected failure on marker-less 200")
	}
	if out.Message != "Unable to load widgets" {
		t.Fatalf("message = %q, want fixed fallback", out.Message)
	}
	if got := out.Errors["widget"]; len(got) != 1 || got[0] != "Unable to load widgets" {
		t.Fatalf("errors = %v", out.Errors)
	}
}

func TestEvaluateStatusMarker(t *testing.T) {
	out := Evaluate(raw(200, `{"status":"success","message":"saved"}`), rules())
	if !out.Success {
		t.Fatalf("status=success should satisfy the marker, got %v", out.Errors)
	}
	if out.HasPayload {
		t.Fatal("no payload expected")
	}
}

func TestEvaluateTruthySuccessMarker(t *testing.T) {
	for _, body := range []string{
		`{"success":true}`,
		`{"success":1}`,
		`{"success":"1"}`,
		`{"status":1}`,
	} {
		out := Evaluate(raw(200, body), rules())
		if !out.Success {
			t.Fatalf("body %s: expected success", body)
		}
	}
}

func TestEvaluateNon2xxUsesBodyMessage(t *testing.T) {
	out := Evaluate(raw(422, `{"message":"The phone field is required.","errors":{"phone":["The phone field is required."]}}`), rules())
	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Message != "The phone field is required." {
		t.Fatalf("message = %q", out.Message)
	}
	if got := out.Errors["phone"]; len(got) != 1 {
		t.Fatalf("errors = %v", out.Errors)
	}
}

func TestEvaluateNon2xxNoBodyMessage(t *testing.T) {
	out := Evaluate(raw(500, `{}`), rules())
	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Message != "Unable to load widgets" {
		t.Fatalf("message = %q", out.Message)
	}
	if got := out.Errors["widget"]; len(got) != 1 || got[0] != "Unable to load widgets" {
		t.Fatalf("errors = %v", out.Errors)
	}
}

func TestEvaluateMalformedJSON(t *testing.T) {
	for _, body := range []string{"", "<html>502 Bad Gateway</html>", `{"data":`} {
		out := Evaluate(raw(200, body), rules())
		if out.Success {
			t.Fatalf("body %q: expected failure", body)
		}
		if out.Message != "Invalid JSON response from API" {
			t.Fatalf("body %q: message = %q", body, out.Message)
		}
		if _, ok := out.Errors["json"]; !ok {
			t.Fatalf("body %q: errors = %v", body, out.Errors)
		}
	}
}

func TestEvaluatePermissiveMode(t *testing.T) {
	r := rules()
	r.Mode = ModePermissive

	// A bare 200 with no marker at all is accepted in permissive mode.
	out := Evaluate(raw(200, `{"valid":true}`), r)
	if !out.Success {
		t.Fatalf("expected permissive success, got %v", out.Errors)
	}

	// An explicit failure flag still fails.
	out = Evaluate(raw(200, `{"success":false,"message":"serial not found"}`), r)
	if out.Success {
		t.Fatal("explicit failure flag must fail")
	}
	if out.Message != "serial not found" {
		t.Fatalf("message = %q", out.Message)
	}

	// A non-success status string fails, but a numeric status does not.
	out = Evaluate(raw(200, `{"status":"error"}`), r)
	if out.Success {
		t.Fatal("status=error must fail")
	}
	out = Evaluate(raw(200, `{"status":200}`), r)
	if !out.Success {
		t.Fatal("numeric status must not count as explicit failure")
	}
}

func TestTransportFailure(t *testing.T) {
	out := TransportFailure(rules(), errors.New("dial tcp: connection refused"))
	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Message != "Unable to reach the TelconGH API" {
		t.Fatalf("message = %q", out.Message)
	}
	if got := out.Errors["widget"]; len(got) != 1 || got[0] != "dial tcp: connection refused" {
		t.Fatalf("errors = %v", out.Errors)
	}
}

func TestPreconditionFailure(t *testing.T) {
	out := PreconditionFailure("authentication token not found")
	if out.Success {
		t.Fatal("expected failure")
	}
	if got := out.Errors["auth"]; len(got) != 1 || got[0] != "authentication token not found" {
		t.Fatalf("errors = %v", out.Errors)
	}
}

func TestErrorMap(t *testing.T) {
	node := gjson.Parse(`{"email":["taken","invalid"],"phone":"required","count":3}`)
	errs := ErrorMap(node)
	if len(errs["email"]) != 2 {
		t.Fatalf("email errors = %v", errs["email"])
	}
	if got := errs["phone"]; len(got) != 1 || got[0] != "required" {
		t.Fatalf("phone errors = %v", got)
	}
	if got := errs["count"]; len(got) != 1 || got[0] != "3" {
		t.Fatalf("count errors = %v", got)
	}

	if got := ErrorMap(gjson.Parse(`["not","an","object"]`)); got != nil {
		t.Fatalf("array errors node should yield nil, got %v", got)
	}
}
