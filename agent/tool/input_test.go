package tool

import (
	"errors"
	"testing"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

func TestParseOrderID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1234567", want: "1234567"},
		{in: ` "1234567" `, want: "1234567"},
		{in: "order_id: 1234567", want: "1234567"},
		{in: "ABC123", want: "ABC123"},
		{in: "", wantErr: true},
		{in: "my order please", wantErr: true},
	}
	for _, tc := range tests {
		got, err := parseOrderID(tc.in)
		if tc.wantErr {
			if !errors.Is(err, contractx.ErrMalformedInput) {
				t.Fatalf("parseOrderID(%q) expected ErrMalformedInput, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("parseOrderID(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestParseComposite(t *testing.T) {
	t.Parallel()

	fields := []Field{{Name: "order_id", Required: true}, {Name: "user_id"}}

	got, err := parseComposite("1234567 | u1", fields)
	if err != nil || got[0] != "1234567" || got[1] != "u1" {
		t.Fatalf("unexpected result: %v, %v", got, err)
	}
	got, err = parseComposite("1234567", fields)
	if err != nil || got[1] != "" {
		t.Fatalf("optional trailing field should be allowed: %v, %v", got, err)
	}
	if _, err := parseComposite("|u1", fields); !errors.Is(err, contractx.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput for missing order id, got %v", err)
	}
}

func TestDecodeRecordDefaultsUserID(t *testing.T) {
	t.Parallel()

	fields := []Field{{Name: "user_id"}, {Name: "issue", Required: true}}
	got, err := decodeRecord[loginSignupInput](`{"issue": "otp not received"}`, fields, "caller")
	if err != nil {
		t.Fatalf("decodeRecord returned error: %v", err)
	}
	if got.UserID != "caller" || got.Issue != "otp not received" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestDecodeRecordAcceptsQuotedObject(t *testing.T) {
	t.Parallel()

	fields := []Field{{Name: "order_id", Required: true}, {Name: "issue", Required: true}}
	for _, raw := range []string{
		`'{"order_id":"1234567","issue":"late"}'`,
		"`{\"order_id\":\"1234567\",\"issue\":\"late\"}`",
		` '{"order_id":"1234567","issue":"late"}' `,
	} {
		got, err := decodeRecord[wrongItemsInput](raw, fields, "caller")
		if err != nil {
			t.Fatalf("decodeRecord(%s) returned error: %v", raw, err)
		}
		if got.OrderID != "1234567" || got.Issue != "late" {
			t.Fatalf("unexpected record for %s: %+v", raw, got)
		}
	}

	if _, err := decodeRecord[wrongItemsInput](`'{"order_id":"1234567"}`, fields, "caller"); err == nil {
		t.Fatal("unbalanced quote must stay malformed")
	}
}

func TestInputFromArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec Spec
		args string
		want string
	}{
		{spec: Spec{Input: InputOrderID}, args: `{"order_id": "1234567"}`, want: "1234567"},
		{spec: Spec{Input: InputOrderID}, args: `{"order_id": 1234567}`, want: "1234567"},
		{spec: Spec{Input: InputOrderID}, args: `1234567`, want: "1234567"},
		{spec: Spec{Input: InputComposite, Fields: []Field{{Name: "order_id"}, {Name: "user_id"}}}, args: `{"input": "1234567|u1"}`, want: "1234567|u1"},
		{spec: Spec{Input: InputComposite, Fields: []Field{{Name: "order_id"}, {Name: "user_id"}}}, args: `{"order_id": "1234567"}`, want: "1234567"},
		{spec: Spec{Input: InputRecord}, args: ` {"issue": "x"} `, want: `{"issue": "x"}`},
		{spec: Spec{Input: InputText, Fields: []Field{{Name: "query"}}}, args: `{"query": "paneer"}`, want: "paneer"},
		{spec: Spec{Input: InputNone}, args: `{}`, want: ""},
	}
	for _, tc := range tests {
		if got := InputFromArguments(tc.spec, tc.args); got != tc.want {
			t.Fatalf("InputFromArguments(%q) = %q, want %q", tc.args, got, tc.want)
		}
	}
}
