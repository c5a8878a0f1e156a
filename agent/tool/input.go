package tool

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/orderid"
)

const compositeSeparator = "|"

type notReceivedInput struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
}

type wrongItemsInput struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
	Issue   string `json:"issue"`
}

type paymentIssueInput struct {
	TransactionID string `json:"transaction_id"`
	UserID        string `json:"user_id"`
	IssueType     string `json:"issue_type"`
}

type addressChangeInput struct {
	OrderID    string `json:"order_id"`
	UserID     string `json:"user_id"`
	NewAddress string `json:"new_address"`
}

type loginSignupInput struct {
	UserID string `json:"user_id"`
	Issue  string `json:"issue"`
}

type deliveryIssueInput struct {
	OrderID string `json:"order_id"`
	Issue   string `json:"issue"`
}

type itemNamesInput struct {
	ItemNames string `json:"item_names"`
	UserID    string `json:"user_id"`
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", contractx.ErrMalformedInput, fmt.Sprintf(format, args...))
}

func trimValue(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"'`")
}

// unquoteOnce removes one matching pair of outer quotes, as models often wrap
// a JSON Action Input in them.
func unquoteOnce(s string) string {
	if len(s) >= 2 && s[0] == s[len(s)-1] && strings.ContainsRune("\"'`", rune(s[0])) {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// parseOrderID accepts a bare id and tolerates wrappers such as
// "order_id: 1234567" by picking the first 7-10 digit run.
func parseOrderID(raw string) (string, error) {
	value := trimValue(raw)
	if id, ok := orderid.Find(value); ok {
		return id, nil
	}
	if value == "" {
		return "", malformed("an order id is required")
	}
	if strings.ContainsAny(value, " \t\n") {
		return "", malformed("expected a single order id, got %q", value)
	}
	return value, nil
}

// parseComposite splits raw on '|' into one value per field. Trailing
// optional fields may be omitted.
func parseComposite(raw string, fields []Field) ([]string, error) {
	parts := strings.Split(trimValue(raw), compositeSeparator)
	if len(parts) > len(fields) {
		return nil, malformed("expected at most %d '|' separated values, got %d", len(fields), len(parts))
	}

	values := make([]string, len(fields))
	for i, f := range fields {
		if i < len(parts) {
			values[i] = trimValue(parts[i])
		}
		if f.Required && values[i] == "" {
			return nil, malformed("%s is required", f.Name)
		}
	}
	return values, nil
}

// decodeRecord parses a JSON object into T after checking required fields.
// Non-string scalars are accepted and converted to their text form.
func decodeRecord[T any](raw string, fields []Field, userID string) (T, error) {
	var out T

	body := unquoteOnce(stripCodeFence(strings.TrimSpace(raw)))
	if body == "" {
		return out, malformed("expected a JSON object")
	}

	var generic map[string]any
	if err := json.Unmarshal([]byte(body), &generic); err != nil {
		return out, malformed("expected a JSON object: %v", err)
	}

	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Name] = scalarString(generic[f.Name])
		if f.Name == "user_id" && values[f.Name] == "" {
			values[f.Name] = userID
		}
		if f.Required && values[f.Name] == "" {
			return out, malformed("%s is required", f.Name)
		}
	}

	encoded, err := json.Marshal(values)
	if err != nil {
		return out, malformed("re-encode record: %v", err)
	}
	if err := json.Unmarshal(encoded, &out); err != nil {
		return out, malformed("decode record: %v", err)
	}
	return out, nil
}

func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			if s := scalarString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// InputFromArguments converts native tool-call JSON arguments into the
// single input string the handler for name expects.
func InputFromArguments(spec Spec, arguments string) string {
	arguments = strings.TrimSpace(arguments)
	if spec.Input == InputRecord {
		return arguments
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return arguments
	}

	switch spec.Input {
	case InputOrderID:
		return scalarString(args["order_id"])
	case InputComposite:
		if v := scalarString(args["input"]); v != "" {
			return v
		}
		values := make([]string, 0, len(spec.Fields))
		for _, f := range spec.Fields {
			values = append(values, scalarString(args[f.Name]))
		}
		return strings.TrimRight(strings.Join(values, compositeSeparator), compositeSeparator)
	case InputText:
		for _, f := range spec.Fields {
			if v := scalarString(args[f.Name]); v != "" {
				return v
			}
		}
		return ""
	default:
		return ""
	}
}
